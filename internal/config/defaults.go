package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/wasmcade.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Assets: AssetsConfig{
			Dir:    ".",
			Module: "assets/game.wasm",
			Font:   "assets/font.ttf",
		},
		Runtime: RuntimeSection{
			FPS:      60,
			TextMode: "auto",
			Width:    800,
			Height:   600,
		},
		Text: TextConfig{
			CenteredSize:  30,
			CenteredColor: "#ffffffff",
		},
		Terminal: TerminalConfig{
			CellScale: 4,
			KeyHold:   550 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
