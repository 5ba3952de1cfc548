package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModulus = 13
	DefaultWidth   = 1000
	DefaultHeight  = 400
	DefaultFPS     = 60
	DefaultTempo   = 140
)

type Config struct {
	Modulus int          `yaml:"modulus"`
	Window  WindowConfig `yaml:"window"`
	Dirs    DirsConfig   `yaml:"dirs"`
	Audio   AudioConfig  `yaml:"audio"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type DirsConfig struct {
	Base   string `yaml:"base"`
	Images string `yaml:"images"`
	Scores string `yaml:"scores"`
	Text   string `yaml:"text"`
}

type AudioConfig struct {
	Tempo   int  `yaml:"tempo"` // notes per minute during playback
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Modulus: DefaultModulus,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Dirs: DirsConfig{
			Base:   ".",
			Images: "Images",
			Scores: "Scores",
			Text:   "Text",
		},
		Audio: AudioConfig{
			Tempo:   DefaultTempo,
			Enabled: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImagesDir returns the resolved image output directory.
func (d DirsConfig) ImagesDir() string { return filepath.Join(d.Base, d.Images) }

// ScoresDir returns the resolved score output directory.
func (d DirsConfig) ScoresDir() string { return filepath.Join(d.Base, d.Scores) }

// TextDir returns the resolved text output directory.
func (d DirsConfig) TextDir() string { return filepath.Join(d.Base, d.Text) }
