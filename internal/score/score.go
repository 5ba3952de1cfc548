// Package score turns one Pisano period into a LilyPond melody. Each
// value maps to a pitch (value + an octave transposition chosen from
// the modulus range), so the score is a deterministic function of the
// sequence.
package score

import (
	"fmt"
	"strings"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/pisano"
)

// MaxNoteIndex is the top of the pitch table; index 0 is C0.
const MaxNoteIndex = 108

// notes holds LilyPond pitch names for indices 0..108, spanning nine
// octaves in semitone steps.
var notes = buildNoteTable()

var pitchClasses = [12]string{"c", "cis", "d", "dis", "e", "f", "fis", "g", "gis", "a", "ais", "b"}

// buildNoteTable generates the pitch names with LilyPond octave marks:
// index 0 is "c,,," and index 108 is c with six upticks.
func buildNoteTable() []string {
	table := make([]string, MaxNoteIndex+1)
	for i := range table {
		octave := i/12 - 3 // index 36..47 is the unmarked octave
		mark := ""
		if octave < 0 {
			mark = strings.Repeat(",", -octave)
		} else if octave > 0 {
			mark = strings.Repeat("'", octave)
		}
		table[i] = pitchClasses[i%12] + mark
	}
	return table
}

// TimeSignature returns the number of notes per measure: the largest
// divisor of length no bigger than 7, falling back to 1 when the
// period length is prime and larger than 7.
func TimeSignature(length int) int {
	if length < 1 {
		return 1
	}
	for c := 7; c >= 2; c-- {
		if c <= length && length%c == 0 {
			return c
		}
	}
	return 1
}

// Transposition returns the octave offset applied to every value so
// that small moduli sit around middle C and large moduli do not run
// off the top of the note table.
func Transposition(m int) int {
	switch {
	case m < 25:
		return 48
	case m < 49:
		return 36
	case m < 61:
		return 24
	default:
		return 12
	}
}

// Clef picks the clef for a note index so the melody stays readable.
func Clef(note int) string {
	switch {
	case note > 73:
		return "treble^8"
	case note > 47:
		return "treble"
	case note > 23:
		return "bass"
	case note > 11:
		return "bass_8"
	default:
		return "bass_15"
	}
}

// noteIndex maps a sequence value to a position in the note table,
// clamped so every modulus stays exportable.
func noteIndex(v, transposition int) int {
	idx := v + transposition
	if idx < 0 {
		return 0
	}
	if idx >= len(notes) {
		return len(notes) - 1
	}
	return idx
}

// Generate renders the full LilyPond source for one period. With
// annotate set, each note carries its position and section markers are
// written above the staff; exports use the plain form.
func Generate(info pisano.Info, annotate bool) string {
	var b strings.Builder

	b.WriteString("\\paper {\n")
	b.WriteString("  top-margin = 15\n")
	b.WriteString("  left-margin = 15\n")
	b.WriteString("  right-margin = 15\n")
	b.WriteString("  indent = 0\n")
	b.WriteString("  }\n")
	b.WriteString("\\version \"2.18.2\"\n")

	b.WriteString("\\header{\n")
	fmt.Fprintf(&b, "   title = \"Pisano Melody %d\"\n", info.Modulus)
	fmt.Fprintf(&b, "   subtitle = \"%s\"\n", info.Subtitle())
	b.WriteString("   composer = \"Arthur Stammet\"\n")
	b.WriteString("   opus = \"2019\"\n")
	b.WriteString("   }\n")

	sig := TimeSignature(info.Period)
	transposition := Transposition(info.Modulus)

	b.WriteString("{\n")
	fmt.Fprintf(&b, "\\time %d/4\n", sig)
	b.WriteString("\\bar \".|:\"\n")

	oldClef := ""
	section := 0
	for i, v := range info.Seq {
		idx := noteIndex(v, transposition)
		if clef := Clef(idx); clef != oldClef {
			fmt.Fprintf(&b, "\\clef \"%s\" ", clef)
			oldClef = clef
		}

		b.WriteString(notes[idx])
		if annotate {
			fmt.Fprintf(&b, "-%d", i+1)
		}
		b.WriteString("\n")

		if annotate && v == 0 {
			section++
			fmt.Fprintf(&b, "^\"Section %d\"\n", section)
			if info.Mirrored && i == info.Period/2 {
				b.WriteString("^\"Begin of mirror\"\n")
			}
		}

		if (i+1)%sig == 0 {
			b.WriteString("|\n")
		}
	}

	b.WriteString("\\bar \":|.\"\n")
	b.WriteString("}")

	return b.String()
}
