package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/pisano"
)

// Chart geometry, shared with the GUI so both artifact kinds agree.
// ChartWidth is the minimum canvas width; ChartLayout widens it when
// the period needs more room.
const (
	ChartWidth  = 1000
	ChartHeight = 400
	ChartMargin = 100
	GraphWidth  = 800
	GraphHeight = 270
	BaselineY   = 360
	ZeroStubH   = 3
)

// BarLayout returns the per-bar width and spacing for a period of n
// values. Spacing collapses to zero for long periods; bar width never
// drops below one pixel.
func BarLayout(n int) (barW, spacing int) {
	if n < 1 {
		return 1, 0
	}
	spacing = 1
	if n > 69 {
		spacing = 0
	}
	barW = (GraphWidth+n-1)/n - spacing
	if barW < 1 {
		barW = 1
	}
	return barW, spacing
}

// ChartLayout returns the canvas width, the total bar-graph width and
// the x position of the first bar. The canvas grows past the initial
// width once one-pixel bars need the room, so no period is ever
// clipped, and the graph is centered either way.
func ChartLayout(n int) (width, graphW, startX int) {
	barW, spacing := BarLayout(n)
	graphW = n*(barW+spacing) - spacing
	if graphW < 0 {
		graphW = 0
	}
	width = ChartWidth
	if graphW+ChartMargin > width {
		width = graphW + ChartMargin
	}
	startX = (width - graphW) / 2
	return width, graphW, startX
}

// ChartSVG renders the bar chart as a standalone SVG document. The
// output is deterministic for a given Info so exports can be diffed.
func ChartSVG(info pisano.Info) string {
	var sb strings.Builder

	width, _, startX := ChartLayout(info.Period)

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, ChartHeight, width, ChartHeight))

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="52" font-family="sans-serif" font-size="36" font-weight="bold" text-anchor="middle">%s</text>
`, width/2, info.Title()))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="80" font-family="sans-serif" font-size="16" fill="#787878" text-anchor="middle">%s</text>
`, width/2, info.Subtitle()))

	barW, spacing := BarLayout(info.Period)
	max := info.Max()
	section := 0

	for i, v := range info.Seq {
		if v == 0 {
			section++
		}
		x := startX + i*(barW+spacing)
		h := v * GraphHeight / max
		fill := barFill(v, section, info.Mirrored && i >= info.Period/2)
		if v == 0 {
			h = ZeroStubH
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x, BaselineY-h, barW, h, fill))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// barFill colors bars grey with a shade alternating per section,
// zeros black, and the mirrored second half tinted blue.
func barFill(v, section int, mirrored bool) string {
	if v == 0 {
		return "#000000"
	}
	if mirrored {
		if section%2 == 1 {
			return "#6464c8"
		}
		return "#9696e6"
	}
	if section%2 == 1 {
		return "#969696"
	}
	return "#646464"
}

// SaveSVG writes the chart next to the raster snapshots so headless
// runs still produce an image artifact.
func (e *Exporter) SaveSVG(info pisano.Info) (string, error) {
	dir := e.dirs.ImagesDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("Pisano %d.svg", info.Modulus))
	if err := os.WriteFile(path, []byte(ChartSVG(info)), 0644); err != nil {
		return "", err
	}
	return path, nil
}
