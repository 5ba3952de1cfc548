// Package view holds the shared state machine behind both front ends.
// Raw keyboard/mouse input is translated into Events by the GUI and the
// TUI; Apply is a pure transition function, so the whole control
// surface is testable without a display.
package view

import "github.com/arthur-stammet/Pisano-Visualizer/internal/pisano"

// MinModulus is the lower clamp for every modulus-changing event.
const MinModulus = 1

// EventKind enumerates the recognized input events.
type EventKind int

const (
	StepDown EventKind = iota // left arrow: modulus -1
	StepUp                    // right arrow: modulus +1
	JumpDown                  // down arrow / wheel down: modulus -10
	JumpUp                    // up arrow / wheel up: modulus +10
	SetTens                   // digit d: modulus = d*10
	SaveImage
	SaveScore
	SaveText
	SaveAll // left click: all three exports
	Quit
)

// Event is one user input. Digit is only meaningful for SetTens.
type Event struct {
	Kind  EventKind
	Digit int
}

// Action is a side effect requested by a transition. The caller
// performs it; the state machine itself never touches the filesystem.
type Action int

const (
	ActionSaveImage Action = iota
	ActionSaveScore
	ActionSaveText
	ActionQuit
)

// State is the single piece of mutable state in the program: the
// current modulus and the period derived from it. It is recomputed
// wholesale on every modulus change.
type State struct {
	Modulus int
	Info    pisano.Info
}

// New returns a State at the given modulus, clamped to MinModulus.
func New(modulus int) State {
	if modulus < MinModulus {
		modulus = MinModulus
	}
	info, _ := pisano.Summary(modulus)
	return State{Modulus: modulus, Info: info}
}

// Apply advances the state machine by one event. Modulus changes
// recompute the sequence; export and quit events leave the state
// untouched and emit the actions the caller should perform.
func Apply(s State, ev Event) (State, []Action) {
	switch ev.Kind {
	case StepDown:
		return s.withModulus(s.Modulus - 1), nil
	case StepUp:
		return s.withModulus(s.Modulus + 1), nil
	case JumpDown:
		return s.withModulus(s.Modulus - 10), nil
	case JumpUp:
		return s.withModulus(s.Modulus + 10), nil
	case SetTens:
		if ev.Digit < 1 || ev.Digit > 9 {
			return s, nil
		}
		return s.withModulus(ev.Digit * 10), nil
	case SaveImage:
		return s, []Action{ActionSaveImage}
	case SaveScore:
		return s, []Action{ActionSaveScore}
	case SaveText:
		return s, []Action{ActionSaveText}
	case SaveAll:
		return s, []Action{ActionSaveImage, ActionSaveScore, ActionSaveText}
	case Quit:
		return s, []Action{ActionQuit}
	}
	return s, nil
}

func (s State) withModulus(m int) State {
	if m < MinModulus {
		m = MinModulus
	}
	if m == s.Modulus {
		return s
	}
	return New(m)
}
