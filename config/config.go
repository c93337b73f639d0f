// Package config loads board settings from YAML. The embedded board.yaml
// holds the defaults; a file on disk may override any subset of it.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/milk9111/traceable/rationale"
	"gopkg.in/yaml.v3"
)

//go:embed board.yaml
var defaultYAML []byte

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Board     BoardConfig     `yaml:"board"`
	Studio    StudioConfig    `yaml:"studio"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Connector ConnectorConfig `yaml:"connector"`
	Log       LogConfig       `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type BoardConfig struct {
	GridSpacing    float64 `yaml:"grid_spacing"`
	CardWidth      float64 `yaml:"card_width"`
	TextCardHeight float64 `yaml:"text_card_height"`
	NoteWidth      float64 `yaml:"note_width"`
	NoteHeight     float64 `yaml:"note_height"`
	NavHeight      float64 `yaml:"nav_height"`
	SidebarWidth   float64 `yaml:"sidebar_width"`
}

type StudioConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	HeaderHeight   float64 `yaml:"header_height"`
	MaximizedInset float64 `yaml:"maximized_inset"`
}

type SpawnConfig struct {
	RightOffset float64 `yaml:"right_offset"`
	LeftOffset  float64 `yaml:"left_offset"`
	JitterX     float64 `yaml:"jitter_x"`
	Top         float64 `yaml:"top"`
	JitterY     float64 `yaml:"jitter_y"`
}

type IngestConfig struct {
	Delay     time.Duration `yaml:"delay"`
	AssetsDir string        `yaml:"assets_dir"`
	// Script is a tengo categorizer; empty picks categories at random.
	Script string      `yaml:"script"`
	Spawn  SpawnConfig `yaml:"spawn"`
}

type ConnectorConfig struct {
	LabelPrefix  string               `yaml:"label_prefix"`
	Dash         []float64            `yaml:"dash"`
	Width        float64              `yaml:"width"`
	Opacity      float64              `yaml:"opacity"`
	GlowWidth    float64              `yaml:"glow_width"`
	Tolerance    float64              `yaml:"tolerance"`
	DefaultColor YAMLColor            `yaml:"default_color"`
	Colors       map[string]YAMLColor `yaml:"palette"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

var (
	ErrInvalidWindow = errors.New("config: window size must be positive")
	ErrInvalidDash   = errors.New("config: dash pattern must have positive length")
)

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic("config: embedded board.yaml: " + err.Error())
	}
	return cfg
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges YAML into cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return ErrInvalidWindow
	}
	total := 0.0
	for _, d := range c.Connector.Dash {
		if d < 0 {
			return ErrInvalidDash
		}
		total += d
	}
	if len(c.Connector.Dash) > 0 && total == 0 {
		return ErrInvalidDash
	}
	return nil
}

// Palette converts the connector colours into a rationale palette. Keys
// outside the known categories are kept and match verbatim.
func (c ConnectorConfig) Palette() rationale.Palette {
	p := rationale.DefaultPalette()
	if c.DefaultColor.A != 0 {
		p.Default = c.DefaultColor.NRGBA
	}
	for name, col := range c.Colors {
		p = p.With(rationale.Category(name), col.NRGBA)
	}
	return p
}

// Builder returns a connector builder using this palette and label prefix.
func (c ConnectorConfig) Builder() rationale.Builder {
	b := rationale.NewBuilder()
	b.Palette = c.Palette()
	if c.LabelPrefix != "" {
		b.LabelPrefix = c.LabelPrefix
	}
	return b
}
