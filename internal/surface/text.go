package surface

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/wasmcade/internal/core"
)

// errNoFont is returned when text is drawn on a surface without a font bank.
var errNoFont = errors.New("surface: no font registered")

// FontBank holds one parsed font and caches a face per pixel size.
type FontBank struct {
	font  *opentype.Font
	cache map[float64]font.Face
}

// ParseFont registers a TrueType/OpenType font from raw bytes.
func ParseFont(data []byte) (*FontBank, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("surface: cannot parse font: %w", err)
	}
	return &FontBank{font: f, cache: make(map[float64]font.Face)}, nil
}

// BuiltinFont returns a bank backed by the embedded Go Regular font.
func BuiltinFont() (*FontBank, error) {
	return ParseFont(goregular.TTF)
}

// Face returns the face for a pixel size, creating it on first use.
func (b *FontBank) Face(size float64) (font.Face, error) {
	if face, ok := b.cache[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(b.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("surface: cannot create face of size %v: %w", size, err)
	}
	b.cache[size] = face
	return face, nil
}

// TextMetrics describes the painted extent of a string, in pixels.
// Ascent and Descent are measured from the baseline to the ink bounds.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns the vertical ink extent.
func (m TextMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

// MeasureText returns the advance width and ink extent of text at size.
func (s *Surface) MeasureText(text string, size float64) (TextMetrics, error) {
	if s.fonts == nil {
		return TextMetrics{}, errNoFont
	}
	face, err := s.fonts.Face(size)
	if err != nil {
		return TextMetrics{}, err
	}
	bounds, advance := font.BoundString(face, text)
	return TextMetrics{
		Width:   fromFixed(advance),
		Ascent:  -fromFixed(bounds.Min.Y),
		Descent: fromFixed(bounds.Max.Y),
	}, nil
}

// FillText paints text with its baseline starting at (x, y).
func (s *Surface) FillText(text string, x, y, size float64, c core.Color) error {
	if s.fonts == nil {
		return errNoFont
	}
	face, err := s.fonts.Face(size)
	if err != nil {
		return err
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c.NRGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
	return nil
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
