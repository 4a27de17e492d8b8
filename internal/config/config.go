// Package config provides YAML-based configuration loading for the host.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wasmcade/internal/core"
)

// Config contains all host configuration.
type Config struct {
	Assets   AssetsConfig   `yaml:"assets"`
	Runtime  RuntimeSection `yaml:"runtime"`
	Text     TextConfig     `yaml:"text"`
	Terminal TerminalConfig `yaml:"terminal"`
	Log      LogConfig      `yaml:"log"`
}

// AssetsConfig defines where the module and font are fetched from.
type AssetsConfig struct {
	Dir    string `yaml:"dir"`    // Root the paths below are relative to
	Module string `yaml:"module"` // Module binary
	Font   string `yaml:"font"`   // Font file, or "builtin"
}

// RuntimeSection defines the tick loop and module ABI options.
type RuntimeSection struct {
	FPS      int    `yaml:"fps"`
	TextMode string `yaml:"text_mode"` // "auto", "positioned" or "centered"
	Width    int    `yaml:"width"`     // Initial window width
	Height   int    `yaml:"height"`    // Initial window height
}

// TextConfig defines the centred drawText variant's fixed style.
type TextConfig struct {
	CenteredSize  float64 `yaml:"centered_size"`
	CenteredColor string  `yaml:"centered_color"`
}

// TerminalConfig defines the terminal frontend.
type TerminalConfig struct {
	CellScale int           `yaml:"cell_scale"` // Surface pixels per column
	KeyHold   time.Duration `yaml:"key_hold"`   // Release a key after this long without repeats
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty: stderr for window, discard for terminal
}

// Validate checks the configuration for values the host cannot run with.
func (c Config) Validate() error {
	if c.Assets.Module == "" {
		return fmt.Errorf("config: assets.module is required")
	}
	if c.Assets.Font == "" {
		return fmt.Errorf("config: assets.font is required")
	}
	if c.Runtime.FPS <= 0 {
		return fmt.Errorf("config: runtime.fps must be positive, got %d", c.Runtime.FPS)
	}
	if c.Runtime.Width <= 0 || c.Runtime.Height <= 0 {
		return fmt.Errorf("config: runtime.width and runtime.height must be positive")
	}
	if _, err := core.ParseTextMode(c.Runtime.TextMode); err != nil {
		return fmt.Errorf("config: runtime.text_mode: %w", err)
	}
	if c.Text.CenteredSize <= 0 {
		return fmt.Errorf("config: text.centered_size must be positive")
	}
	if _, err := core.ParseColor(c.Text.CenteredColor); err != nil {
		return fmt.Errorf("config: text.centered_color: %w", err)
	}
	if c.Terminal.CellScale <= 0 {
		return fmt.Errorf("config: terminal.cell_scale must be positive, got %d", c.Terminal.CellScale)
	}
	if c.Terminal.KeyHold <= 0 {
		return fmt.Errorf("config: terminal.key_hold must be positive")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// RuntimeConfig converts the validated file configuration into the runtime
// values handed to the host and frontends.
func (c Config) RuntimeConfig() (core.RuntimeConfig, error) {
	if err := c.Validate(); err != nil {
		return core.RuntimeConfig{}, err
	}
	mode, _ := core.ParseTextMode(c.Runtime.TextMode)
	color, _ := core.ParseColor(c.Text.CenteredColor)

	return core.RuntimeConfig{
		TickRate:      c.Runtime.FPS,
		TextMode:      mode,
		CenteredSize:  c.Text.CenteredSize,
		CenteredColor: color,
		WindowW:       c.Runtime.Width,
		WindowH:       c.Runtime.Height,
		CellScale:     c.Terminal.CellScale,
		KeyHold:       c.Terminal.KeyHold,
	}, nil
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
