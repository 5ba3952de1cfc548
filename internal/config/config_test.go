package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Modulus != 13 {
		t.Errorf("expected default modulus 13, got %d", cfg.Modulus)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		t.Error("window dimensions should be positive")
	}
	if cfg.Window.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Dirs.Images == "" || cfg.Dirs.Scores == "" || cfg.Dirs.Text == "" {
		t.Error("export directories should have defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pisano.yaml")

	cfg := DefaultConfig()
	cfg.Modulus = 42
	cfg.Window.Width = 1280
	cfg.Audio.Tempo = 90

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Modulus != 42 {
		t.Errorf("expected modulus 42, got %d", loaded.Modulus)
	}
	if loaded.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", loaded.Window.Width)
	}
	if loaded.Audio.Tempo != 90 {
		t.Errorf("expected tempo 90, got %d", loaded.Audio.Tempo)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("modulus: 7\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Modulus != 7 {
		t.Errorf("expected modulus 7, got %d", loaded.Modulus)
	}
	if loaded.Window.Width != DefaultWidth {
		t.Errorf("expected default width %d, got %d", DefaultWidth, loaded.Window.Width)
	}
}

func TestResolvedDirs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dirs.Base = "/tmp/out"

	if cfg.Dirs.ImagesDir() != filepath.Join("/tmp/out", "Images") {
		t.Errorf("unexpected images dir: %s", cfg.Dirs.ImagesDir())
	}
	if cfg.Dirs.ScoresDir() != filepath.Join("/tmp/out", "Scores") {
		t.Errorf("unexpected scores dir: %s", cfg.Dirs.ScoresDir())
	}
	if cfg.Dirs.TextDir() != filepath.Join("/tmp/out", "Text") {
		t.Errorf("unexpected text dir: %s", cfg.Dirs.TextDir())
	}
}
