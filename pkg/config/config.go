// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/sceneline/pkg/orchestrator"
	"github.com/user/sceneline/pkg/storyboard"
)

// Config represents the full configuration for sceneline.
type Config struct {
	// Detection
	Threshold float64 `yaml:"threshold"`
	MinGapSec float64 `yaml:"min_gap_sec"`

	// Sampling
	AssumedFPS   float64 `yaml:"assumed_fps"`
	SampleStride int     `yaml:"sample_stride"`
	SampleWidth  int     `yaml:"sample_width"`
	SampleHeight int     `yaml:"sample_height"`

	// Snapshot capture
	CaptureTimeoutMs int `yaml:"capture_timeout_ms"`
	SnapshotQuality  int `yaml:"snapshot_quality"`

	// Storyboard
	StoryboardWidth  int         `yaml:"storyboard_width"`
	StoryboardHeight int         `yaml:"storyboard_height"`
	PaletteSize      int         `yaml:"palette_size"`
	Theme            ThemeConfig `yaml:"theme"`

	// Storage
	DBPath string `yaml:"db_path"`

	// Frame directory sources
	FrameDirFPS float64 `yaml:"framedir_fps"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ThemeConfig represents storyboard theming options.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	TrackColor      string `yaml:"track_color"`
	TickColor       string `yaml:"tick_color"`
	CursorColor     string `yaml:"cursor_color"`
	TextColor       string `yaml:"text_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Detection
		Threshold: 0.25,
		MinGapSec: 2.0,

		// Sampling
		AssumedFPS:   30.0,
		SampleStride: 30,
		SampleWidth:  160,
		SampleHeight: 90,

		// Snapshot capture
		CaptureTimeoutMs: 3000,
		SnapshotQuality:  85,

		// Storyboard
		StoryboardWidth:  960,
		StoryboardHeight: 140,
		PaletteSize:      8,

		// Storage
		DBPath: "./sceneline.db",

		// Frame directory sources
		FrameDirFPS: 30.0,

		// Logging
		LogLevel: "info",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	r := hexValue(hex[0])<<4 | hexValue(hex[1])
	g := hexValue(hex[2])<<4 | hexValue(hex[3])
	b := hexValue(hex[4])<<4 | hexValue(hex[5])

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Threshold: c.Threshold,
		MinGap:    c.MinGapSec,

		AssumedFPS:   c.AssumedFPS,
		SampleStride: c.SampleStride,
		SampleWidth:  c.SampleWidth,
		SampleHeight: c.SampleHeight,

		CaptureTimeoutMs: c.CaptureTimeoutMs,
		SnapshotQuality:  c.SnapshotQuality,

		PaletteSize: c.PaletteSize,
	}
}

// ToStoryboardTheme converts the theme options to a storyboard.Theme,
// keeping the default for any unset color.
func (c Config) ToStoryboardTheme() storyboard.Theme {
	theme := storyboard.DefaultTheme()
	if c.Theme.BackgroundColor != "" {
		theme.BackgroundColor = ParseColor(c.Theme.BackgroundColor)
	}
	if c.Theme.TrackColor != "" {
		theme.TrackColor = ParseColor(c.Theme.TrackColor)
	}
	if c.Theme.TickColor != "" {
		theme.TickColor = ParseColor(c.Theme.TickColor)
	}
	if c.Theme.CursorColor != "" {
		theme.CursorColor = ParseColor(c.Theme.CursorColor)
	}
	if c.Theme.TextColor != "" {
		theme.TextColor = ParseColor(c.Theme.TextColor)
	}
	return theme
}
