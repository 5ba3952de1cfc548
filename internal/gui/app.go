// Package gui is the raylib front end: a resizable window showing the
// current period as a bar chart, with keyboard and mouse control over
// the modulus and snapshot/score/text export.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/audio"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/config"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/export"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/view"
)

var (
	colBg       = rl.NewColor(255, 255, 255, 255)
	colTitle    = rl.NewColor(0, 0, 0, 255)
	colSubtitle = rl.NewColor(120, 120, 120, 255)
	colBarEven  = rl.NewColor(100, 100, 100, 255)
	colBarOdd   = rl.NewColor(150, 150, 150, 255)
	colMirEven  = rl.NewColor(100, 100, 200, 255)
	colMirOdd   = rl.NewColor(150, 150, 230, 255)
	colZero     = rl.NewColor(0, 0, 0, 255)
	colHint     = rl.NewColor(170, 170, 170, 255)
)

// digitKeys maps raylib's top row digit keys 1..9 to their value.
var digitKeys = [9]int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

type App struct {
	State view.State
	Exp   *export.Exporter
	Audio *audio.Player
	Log   zerolog.Logger

	audioEnabled bool
	quit         bool
}

func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "Pisano Visualizer")
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	player := audio.NewPlayer(cfg.Audio.Tempo)
	app := &App{
		State:        view.New(cfg.Modulus),
		Exp:          export.New(cfg.Dirs),
		Audio:        player,
		Log:          log,
		audioEnabled: cfg.Audio.Enabled,
	}
	player.SetSequence(app.State.Info.Seq, app.State.Modulus)
	return app
}

// Run opens the window and blocks until the user quits.
func Run(cfg *config.Config, log zerolog.Logger) {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(cfg, log)
	defer app.Audio.Stop()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update polls raw input, translates it into events and performs the
// actions the transitions request.
func (a *App) Update() {
	for _, ev := range a.pollEvents() {
		next, actions := view.Apply(a.State, ev)
		if next.Modulus != a.State.Modulus {
			a.State = next
			a.Audio.SetSequence(a.State.Info.Seq, a.State.Modulus)
			a.Log.Debug().Int("modulus", a.State.Modulus).
				Int("period", a.State.Info.Period).Msg("modulus changed")
		}
		for _, act := range actions {
			a.perform(act)
		}
	}

	if rl.IsKeyPressed(rl.KeyP) && a.audioEnabled {
		if err := a.Audio.Toggle(); err != nil {
			a.Log.Error().Err(err).Msg("audio toggle failed")
		}
	}
}

func (a *App) pollEvents() []view.Event {
	var evs []view.Event

	if rl.IsKeyPressed(rl.KeyLeft) {
		evs = append(evs, view.Event{Kind: view.StepDown})
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		evs = append(evs, view.Event{Kind: view.StepUp})
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		evs = append(evs, view.Event{Kind: view.JumpDown})
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		evs = append(evs, view.Event{Kind: view.JumpUp})
	}
	for i, key := range digitKeys {
		if rl.IsKeyPressed(key) {
			evs = append(evs, view.Event{Kind: view.SetTens, Digit: i + 1})
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		evs = append(evs, view.Event{Kind: view.JumpUp})
	} else if wheel < 0 {
		evs = append(evs, view.Event{Kind: view.JumpDown})
	}

	if rl.IsKeyPressed(rl.KeyS) {
		evs = append(evs, view.Event{Kind: view.SaveImage})
	}
	if rl.IsKeyPressed(rl.KeyL) {
		evs = append(evs, view.Event{Kind: view.SaveScore})
	}
	if rl.IsKeyPressed(rl.KeyT) {
		evs = append(evs, view.Event{Kind: view.SaveText})
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		evs = append(evs, view.Event{Kind: view.SaveAll})
	}

	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		evs = append(evs, view.Event{Kind: view.Quit})
	}
	return evs
}

func (a *App) perform(act view.Action) {
	switch act {
	case view.ActionSaveImage:
		path, err := a.snapshot()
		a.logSave("image", path, err)
	case view.ActionSaveScore:
		path, err := a.Exp.SaveScore(a.State.Info)
		a.logSave("score", path, err)
	case view.ActionSaveText:
		path, err := a.Exp.SaveText(a.State.Info)
		a.logSave("text", path, err)
	case view.ActionQuit:
		a.quit = true
	}
}

func (a *App) logSave(kind, path string, err error) {
	if err != nil {
		a.Log.Error().Err(err).Str("kind", kind).Msg("export failed")
		return
	}
	a.Log.Info().Str("kind", kind).Str("path", path).Msg("saved")
}

func (a *App) Draw() {
	// The window tracks the chart: long periods of one-pixel bars
	// need a wider canvas or they would be clipped on the right.
	width, _, _ := export.ChartLayout(a.State.Info.Period)
	if rl.GetScreenWidth() != width {
		rl.SetWindowSize(width, export.ChartHeight)
	}

	rl.BeginDrawing()
	rl.ClearBackground(colBg)
	a.drawChart(1)
	a.drawHUD(width)
	rl.EndDrawing()
}

// drawChart renders title, subtitle and bars at the given integer
// scale. Scale 1 is the live window; the snapshot renders at 3.
func (a *App) drawChart(scale int32) {
	info := a.State.Info
	width, _, startX := export.ChartLayout(info.Period)

	title := info.Title()
	tw := rl.MeasureText(title, 36*scale)
	rl.DrawText(title, int32(width)*scale/2-tw/2, 22*scale, 36*scale, colTitle)

	sub := info.Subtitle()
	sw := rl.MeasureText(sub, 16*scale)
	rl.DrawText(sub, int32(width)*scale/2-sw/2, 66*scale, 16*scale, colSubtitle)

	barW, spacing := export.BarLayout(info.Period)
	max := info.Max()
	section := 0

	for i, v := range info.Seq {
		if v == 0 {
			section++
		}
		x := int32(startX+i*(barW+spacing)) * scale
		h := int32(v*export.GraphHeight/max) * scale
		col := barColor(v, section, info.Mirrored && i >= info.Period/2)
		if v == 0 {
			h = export.ZeroStubH * scale
		}
		rl.DrawRectangle(x, int32(export.BaselineY)*scale-h, int32(barW)*scale, h, col)
	}
}

func barColor(v, section int, mirrored bool) rl.Color {
	if v == 0 {
		return colZero
	}
	if mirrored {
		if section%2 == 1 {
			return colMirOdd
		}
		return colMirEven
	}
	if section%2 == 1 {
		return colBarOdd
	}
	return colBarEven
}

func (a *App) drawHUD(width int) {
	rl.DrawText("←/→ ±1   ↑/↓/wheel ±10   1-9 tens   [S]napshot [L]ilypond [T]ext   click all   [P]lay [Q]uit",
		export.ChartMargin, export.ChartHeight-18, 10, colHint)
	if a.Audio.Active {
		rl.DrawText("playing", int32(width)-70, 8, 10, colHint)
	}
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 8, 8, 10, colHint)
}
