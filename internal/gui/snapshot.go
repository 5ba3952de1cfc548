package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/export"
)

// snapshotScale renders exports at triple resolution so scores and
// slides keep their edges when printed.
const snapshotScale = 3

// snapshot renders the chart into an offscreen texture and writes it
// as a PNG. Render textures come out upside down and need a flip.
func (a *App) snapshot() (string, error) {
	path, err := a.Exp.ImagePath(a.State.Modulus)
	if err != nil {
		return "", err
	}

	width, _, _ := export.ChartLayout(a.State.Info.Period)
	w := int32(width) * snapshotScale
	h := int32(export.ChartHeight) * snapshotScale
	target := rl.LoadRenderTexture(w, h)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(colBg)
	a.drawChart(snapshotScale)
	rl.EndTextureMode()

	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)

	rl.ExportImage(*img, path)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("export image %s: %w", path, err)
	}
	return path, nil
}
