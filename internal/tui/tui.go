// Package tui is the terminal front end. It mirrors the GUI's control
// surface over the same state machine, rendering the period with block
// characters and exporting an SVG where the GUI would write a PNG.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/config"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/export"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/view"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/viz"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type model struct {
	state view.State
	exp   *export.Exporter

	status string
	failed bool

	width  int
	height int
}

func newModel(cfg *config.Config) model {
	return model{
		state:  view.New(cfg.Modulus),
		exp:    export.New(cfg.Dirs),
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleEvent(keyEvent(msg))
	case tea.MouseMsg:
		return m.handleEvent(mouseEvent(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

// keyEvent translates a key press into a state machine event. The
// bindings are the same as the GUI's; keys with no binding return a
// nil event and are ignored.
func keyEvent(msg tea.KeyMsg) *view.Event {
	s := msg.String()
	switch s {
	case "left", "h":
		return &view.Event{Kind: view.StepDown}
	case "right":
		return &view.Event{Kind: view.StepUp}
	case "down", "j":
		return &view.Event{Kind: view.JumpDown}
	case "up", "k":
		return &view.Event{Kind: view.JumpUp}
	case "s", "S":
		return &view.Event{Kind: view.SaveImage}
	case "l", "L":
		return &view.Event{Kind: view.SaveScore}
	case "t", "T":
		return &view.Event{Kind: view.SaveText}
	case "a", "A":
		return &view.Event{Kind: view.SaveAll}
	case "q", "esc", "ctrl+c":
		return &view.Event{Kind: view.Quit}
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return &view.Event{Kind: view.SetTens, Digit: int(s[0] - '0')}
	}
	return nil
}

func mouseEvent(msg tea.MouseMsg) *view.Event {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return &view.Event{Kind: view.JumpUp}
	case tea.MouseButtonWheelDown:
		return &view.Event{Kind: view.JumpDown}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			return &view.Event{Kind: view.SaveAll}
		}
	}
	return nil
}

func (m model) handleEvent(ev *view.Event) (tea.Model, tea.Cmd) {
	if ev == nil {
		return m, nil
	}
	next, actions := view.Apply(m.state, *ev)
	m.state = next

	for _, act := range actions {
		switch act {
		case view.ActionSaveImage:
			m.report(m.exp.SaveSVG(m.state.Info))
		case view.ActionSaveScore:
			m.report(m.exp.SaveScore(m.state.Info))
		case view.ActionSaveText:
			m.report(m.exp.SaveText(m.state.Info))
		case view.ActionQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *model) report(path string, err error) {
	if err != nil {
		m.status = err.Error()
		m.failed = true
		return
	}
	m.status = "saved " + path
	m.failed = false
}

func (m model) View() string {
	info := m.state.Info
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render(info.Title()) + "\n")
	b.WriteString("  " + subStyle.Render(info.Subtitle()) + "\n\n")

	chartW := m.width - 4
	if chartW < 10 {
		chartW = 10
	}
	chartH := m.height - 9
	if chartH < 3 {
		chartH = 3
	}
	if chartH > 12 {
		chartH = 12
	}

	chart := viz.Bars(info.Seq, chartW, chartH)
	for _, line := range strings.Split(chart, "\n") {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n  " + subStyle.Render(fmt.Sprintf("period %d   sections %d   max %d",
		info.Period, info.Sections, info.Max())) + "\n")

	if m.status != "" {
		style := statusStyle
		if m.failed {
			style = errStyle
		}
		b.WriteString("  " + style.Render(m.status) + "\n")
	}

	b.WriteString("\n  " + hintStyle.Render("←/→ ±1   ↑/↓/wheel ±10   1-9 tens   s svg  l score  t text  a all   q quit") + "\n")
	return b.String()
}

// Run starts the terminal front end and blocks until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
