package core

import (
	"fmt"
	"time"
)

// TextMode selects which platformDrawText signature the module is bound with.
type TextMode string

const (
	// TextAuto resolves the mode from the module's declared import signature.
	TextAuto TextMode = "auto"
	// TextPositioned is drawText(x, y, size, text, color).
	TextPositioned TextMode = "positioned"
	// TextCentered is drawText(w, h, text), centred with a fixed foreground.
	TextCentered TextMode = "centered"
)

// ParseTextMode validates a text mode name. The empty string means auto.
func ParseTextMode(s string) (TextMode, error) {
	switch TextMode(s) {
	case "", TextAuto:
		return TextAuto, nil
	case TextPositioned, TextCentered:
		return TextMode(s), nil
	}
	return "", fmt.Errorf("unknown text mode %q (want auto, positioned or centered)", s)
}

// RuntimeConfig contains configuration passed to the host and frontends.
type RuntimeConfig struct {
	TickRate      int           // Refresh callbacks per second (default 60)
	TextMode      TextMode      // drawText ABI
	CenteredSize  float64       // Font size of centred text, in pixels
	CenteredColor Color         // Fixed foreground of centred text
	WindowW       int           // Initial window width (window frontend)
	WindowH       int           // Initial window height (window frontend)
	CellScale     int           // Surface pixels per terminal column
	KeyHold       time.Duration // Terminal synthetic key-release window
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate:      60,
		TextMode:      TextAuto,
		CenteredSize:  30,
		CenteredColor: ColorWhite,
		WindowW:       800,
		WindowH:       600,
		CellScale:     4,
		KeyHold:       550 * time.Millisecond,
	}
}
