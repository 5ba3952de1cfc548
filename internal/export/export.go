// Package export writes Pisano artifacts to disk: plain text dumps,
// LilyPond scores and SVG bar charts. Raster snapshots are taken by
// the GUI itself since they need the live framebuffer.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/config"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/pisano"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/score"
)

type Exporter struct {
	dirs config.DirsConfig
}

func New(dirs config.DirsConfig) *Exporter {
	return &Exporter{dirs: dirs}
}

// ImagePath is where the GUI drops its raster snapshot for a modulus.
// The directory is created here so the render loop can write blindly.
func (e *Exporter) ImagePath(m int) (string, error) {
	dir := e.dirs.ImagesDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("Pisano %d.png", m)), nil
}

// SaveText writes the period as a human-readable dump: title,
// subtitle, length, then one value per line.
func (e *Exporter) SaveText(info pisano.Info) (string, error) {
	dir := e.dirs.TextDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("Pisano %d.txt", info.Modulus))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, info.Title())
	fmt.Fprintln(w, info.Subtitle())
	fmt.Fprintln(w, info.Period)
	for _, v := range info.Seq {
		fmt.Fprintln(w, v)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// SaveScore writes a LilyPond source file for the period's melody.
func (e *Exporter) SaveScore(info pisano.Info) (string, error) {
	dir := e.dirs.ScoresDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("Pisano Melody %d.ly", info.Modulus))
	if err := os.WriteFile(path, []byte(score.Generate(info, false)), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// ParseTextFile reads a dump written by SaveText back into values.
// The modulus is recovered from the title line.
func ParseTextFile(path string) (pisano.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pisano.Info{}, err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 3 {
		return pisano.Info{}, fmt.Errorf("parse %s: truncated dump", path)
	}

	m, err := strconv.Atoi(strings.TrimPrefix(lines[0], "Pisano "))
	if err != nil {
		return pisano.Info{}, fmt.Errorf("parse %s: bad title %q", path, lines[0])
	}

	length, err := strconv.Atoi(lines[2])
	if err != nil {
		return pisano.Info{}, fmt.Errorf("parse %s: bad length %q", path, lines[2])
	}
	if len(lines)-3 != length {
		return pisano.Info{}, fmt.Errorf("parse %s: expected %d values, got %d", path, length, len(lines)-3)
	}

	seq := make([]int, length)
	for i, line := range lines[3:] {
		v, err := strconv.Atoi(line)
		if err != nil {
			return pisano.Info{}, fmt.Errorf("parse %s: bad value %q at line %d", path, line, i+4)
		}
		seq[i] = v
	}

	return pisano.Info{
		Modulus:  m,
		Seq:      seq,
		Period:   length,
		Sections: pisano.Sections(seq),
		Mirrored: pisano.Mirrored(seq, m),
	}, nil
}
