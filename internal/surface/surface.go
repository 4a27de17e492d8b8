// Package surface provides the RGBA raster that draw primitives paint onto.
// It decouples the module's drawing calls from the frontend, which only
// presents the finished image.
package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/wasmcade/internal/core"
)

// Surface is a 2D pixel buffer with an attached font bank.
// Painting composites source-over and is never cleared implicitly.
type Surface struct {
	img   *image.RGBA
	fonts *FontBank
}

// New creates a transparent surface of the given size.
func New(size core.Size, fonts *FontBank) *Surface {
	s := &Surface{fonts: fonts}
	s.allocate(size)
	return s
}

// allocate replaces the pixel storage with a transparent image.
func (s *Surface) allocate(size core.Size) {
	s.img = image.NewRGBA(image.Rect(0, 0, core.Max(size.W, 0), core.Max(size.H, 0)))
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() core.Size {
	b := s.img.Bounds()
	return core.Size{W: b.Dx(), H: b.Dy()}
}

// Resize changes the surface dimensions. Like a canvas resize, the content
// is discarded and the new surface starts transparent.
func (s *Surface) Resize(size core.Size) {
	if size == s.Size() {
		return
	}
	s.allocate(size)
}

// Image returns the backing image. Callers must not retain it across a Resize.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// FillRect paints a filled axis-aligned rectangle. Negative width or height
// extend left or up from (x, y); anything outside the surface is clipped.
func (s *Surface) FillRect(x, y, w, h int, c core.Color) {
	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(s.img, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
}

// FillCircle paints a filled disc centred at (cx, cy). A pixel is covered
// when its centre lies within the radius. Non-positive radii paint nothing.
func (s *Surface) FillCircle(cx, cy, r int, c core.Color) {
	if r <= 0 {
		return
	}
	mask := &circleMask{cx: float64(cx), cy: float64(cy), r: float64(r)}
	bounds := mask.Bounds()
	draw.DrawMask(s.img, bounds, image.NewUniform(c.NRGBA()), image.Point{}, mask, bounds.Min, draw.Over)
}

// circleMask is an alpha mask that is opaque inside a circle.
type circleMask struct {
	cx, cy, r float64
}

func (m *circleMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (m *circleMask) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(m.cx-m.r)),
		int(math.Floor(m.cy-m.r)),
		int(math.Ceil(m.cx+m.r)),
		int(math.Ceil(m.cy+m.r)),
	)
}

func (m *circleMask) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - m.cx
	dy := float64(y) + 0.5 - m.cy
	if dx*dx+dy*dy <= m.r*m.r {
		return color.Opaque
	}
	return color.Transparent
}
