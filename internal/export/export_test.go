package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/config"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/pisano"
)

func testExporter(t *testing.T) *Exporter {
	t.Helper()
	dirs := config.DefaultConfig().Dirs
	dirs.Base = t.TempDir()
	return New(dirs)
}

func TestSaveTextRoundTrip(t *testing.T) {
	e := testExporter(t)
	info, err := pisano.Summary(10)
	if err != nil {
		t.Fatal(err)
	}

	path, err := e.SaveText(info)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseTextFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Modulus != 10 {
		t.Errorf("expected modulus 10, got %d", parsed.Modulus)
	}
	if parsed.Period != info.Period {
		t.Errorf("expected period %d, got %d", info.Period, parsed.Period)
	}
	for i, v := range parsed.Seq {
		if v != info.Seq[i] {
			t.Fatalf("value %d: expected %d, got %d", i, info.Seq[i], v)
		}
	}
	if parsed.Sections != info.Sections || parsed.Mirrored != info.Mirrored {
		t.Errorf("derived figures lost in round trip: %+v vs %+v", parsed, info)
	}
}

func TestSaveTextFormat(t *testing.T) {
	e := testExporter(t)
	info, err := pisano.Summary(4)
	if err != nil {
		t.Fatal(err)
	}

	path, err := e.SaveText(info)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "Pisano 4" {
		t.Errorf("unexpected title line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Fibonacci 1-6 mod 4") {
		t.Errorf("unexpected subtitle line: %q", lines[1])
	}
	if lines[2] != "6" {
		t.Errorf("unexpected length line: %q", lines[2])
	}
	if len(lines) != 9 {
		t.Errorf("expected 9 lines, got %d", len(lines))
	}
}

func TestSaveScoreCreatesLilyPond(t *testing.T) {
	e := testExporter(t)
	info, err := pisano.Summary(13)
	if err != nil {
		t.Fatal(err)
	}

	path, err := e.SaveScore(info)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "Pisano Melody 13.ly" {
		t.Errorf("unexpected score filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `\version`) {
		t.Error("score file missing LilyPond version header")
	}
	if !strings.Contains(string(data), "Pisano Melody 13") {
		t.Error("score file missing title")
	}
}

func TestSaveSVGDeterministic(t *testing.T) {
	e := testExporter(t)
	info, err := pisano.Summary(10)
	if err != nil {
		t.Fatal(err)
	}

	path, err := e.SaveSVG(info)
	if err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.SaveSVG(info); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("svg export is not deterministic")
	}

	if !strings.Contains(string(first), "<svg") || !strings.Contains(string(first), "Pisano 10") {
		t.Error("svg export missing chart content")
	}
}

func TestImagePathCreatesDir(t *testing.T) {
	e := testExporter(t)

	path, err := e.ImagePath(21)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "Pisano 21.png" {
		t.Errorf("unexpected image filename: %s", path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("image directory not created: %v", err)
	}
}

func TestParseTextFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ParseTextFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("Pisano 5\nsubtitle\n3\n1\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseTextFile(bad); err == nil {
		t.Error("expected error for value count mismatch")
	}
}

func TestChartLayout(t *testing.T) {
	tests := []struct {
		n, width, startX int
	}{
		{1, 1000, 100},   // one 799px bar centered with 100px margin
		{60, 1000, 80},   // 60*(13+1)-1 = 839 wide
		{800, 1000, 100}, // 800 one-pixel bars still fit
		{2500, 2600, 50}, // canvas grows past the minimum width
	}
	for _, tt := range tests {
		width, graphW, startX := ChartLayout(tt.n)
		if width != tt.width || startX != tt.startX {
			t.Errorf("ChartLayout(%d) = width %d startX %d, expected %d and %d",
				tt.n, width, startX, tt.width, tt.startX)
		}
		if startX+graphW > width {
			t.Errorf("ChartLayout(%d): rightmost bar edge %d overflows width %d",
				tt.n, startX+graphW, width)
		}
	}
}

func TestChartLayoutNeverClips(t *testing.T) {
	for n := 1; n <= 4000; n++ {
		barW, spacing := BarLayout(n)
		width, graphW, startX := ChartLayout(n)
		if got := n*(barW+spacing) - spacing; got != graphW {
			t.Fatalf("n=%d: graph width %d does not cover the bars (%d)", n, graphW, got)
		}
		if startX < 0 || startX+graphW > width {
			t.Fatalf("n=%d: bars span [%d, %d) on a width-%d canvas", n, startX, startX+graphW, width)
		}
	}
}

func TestChartSVGWidensForLongPeriods(t *testing.T) {
	// pi(625) = 2500: one-pixel bars need a canvas past the minimum.
	info, err := pisano.Summary(625)
	if err != nil {
		t.Fatal(err)
	}
	if info.Period != 2500 {
		t.Fatalf("expected period 2500, got %d", info.Period)
	}

	svg := ChartSVG(info)
	if !strings.Contains(svg, `width="2600"`) {
		t.Error("svg should grow to fit 2500 bars")
	}
	if !strings.Contains(svg, `viewBox="0 0 2600 400"`) {
		t.Error("svg viewBox should match the widened canvas")
	}
}

func TestBarLayout(t *testing.T) {
	tests := []struct {
		n, barW, spacing int
	}{
		{1, 799, 1},
		{60, 13, 1},
		{69, 11, 1},
		{70, 12, 0},
		{800, 1, 0},
		{2000, 1, 0},
	}
	for _, tt := range tests {
		barW, spacing := BarLayout(tt.n)
		if barW != tt.barW || spacing != tt.spacing {
			t.Errorf("BarLayout(%d) = (%d, %d), expected (%d, %d)",
				tt.n, barW, spacing, tt.barW, tt.spacing)
		}
	}
}
