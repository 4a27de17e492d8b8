package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a packed 0xRRGGBBAA colour as passed across the module ABI.
type Color uint32

// NewColor truncates any integer to its low 32 bits, so negative inputs
// wrap the way an unsigned shift would (-1 becomes 0xFFFFFFFF).
func NewColor(v int64) Color {
	return Color(uint32(v))
}

// Hex formats the colour as an 8-digit lowercase "#rrggbbaa" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// NRGBA returns the colour's non-premultiplied components.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// ParseColor parses "#rrggbbaa" or "#rrggbb" (alpha 0xff).
func ParseColor(s string) (Color, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok || (len(digits) != 8 && len(digits) != 6) {
		return 0, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(digits) == 6 {
		v = v<<8 | 0xff
	}
	return Color(v), nil
}

// Predefined colours used by the host itself.
const (
	ColorWhite Color = 0xffffffff
	ColorBlack Color = 0x000000ff
)
