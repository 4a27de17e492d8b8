// Package bridge implements the draw primitives a module calls during render.
//
// Every primitive paints straight onto the live surface; nothing is buffered
// and nothing is cleared between frames. Primitives are only valid between
// BeginRender and EndRender.
package bridge

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/surface"
)

// Memory is the read view of a module's linear memory.
// wazero's api.Memory satisfies it.
type Memory interface {
	Size() uint32
	Read(offset, byteCount uint32) ([]byte, bool)
}

// Options configures the centred text variant.
type Options struct {
	CenteredSize  float64
	CenteredColor core.Color
}

// Bridge paints module draw calls onto a surface.
type Bridge struct {
	surface   *surface.Surface
	opts      Options
	rendering bool
	calls     int
}

// New creates a bridge painting onto s. Zero options fall back to
// 30px white centred text.
func New(s *surface.Surface, opts Options) *Bridge {
	if opts.CenteredSize <= 0 {
		opts.CenteredSize = 30
	}
	if opts.CenteredColor == 0 {
		opts.CenteredColor = core.ColorWhite
	}
	return &Bridge{surface: s, opts: opts}
}

// BeginRender opens the window in which primitives may be called.
func (b *Bridge) BeginRender() {
	b.rendering = true
	b.calls = 0
}

// EndRender closes the render window and returns how many primitives ran.
func (b *Bridge) EndRender() int {
	b.rendering = false
	return b.calls
}

func (b *Bridge) enter(name string) error {
	if !b.rendering {
		return fmt.Errorf("%w: %s", core.ErrOutsideRender, name)
	}
	b.calls++
	return nil
}

// DrawRect paints a filled rectangle.
func (b *Bridge) DrawRect(x, y, w, h int32, color uint32) error {
	if err := b.enter("drawRect"); err != nil {
		return err
	}
	b.surface.FillRect(int(x), int(y), int(w), int(h), core.Color(color))
	return nil
}

// DrawCircle paints a filled circle centred at (x, y).
func (b *Bridge) DrawCircle(x, y, r int32, color uint32) error {
	if err := b.enter("drawCircle"); err != nil {
		return err
	}
	b.surface.FillCircle(int(x), int(y), int(r), core.Color(color))
	return nil
}

// DrawTextAt paints the string at ref so that y is the top of its ink box:
// the baseline sits at y + ascent + descent.
func (b *Bridge) DrawTextAt(mem Memory, x, y, size int32, ref, color uint32) error {
	if err := b.enter("drawText"); err != nil {
		return err
	}
	text, err := ReadString(mem, ref)
	if err != nil {
		return err
	}
	m, err := b.surface.MeasureText(text, float64(size))
	if err != nil {
		return err
	}
	return b.surface.FillText(text, float64(x), float64(y)+m.Height(), float64(size), core.Color(color))
}

// DrawTextCentered paints the string at ref centred in a w x h box using the
// fixed foreground colour and size.
func (b *Bridge) DrawTextCentered(mem Memory, w, h int32, ref uint32) error {
	if err := b.enter("drawText"); err != nil {
		return err
	}
	text, err := ReadString(mem, ref)
	if err != nil {
		return err
	}
	m, err := b.surface.MeasureText(text, b.opts.CenteredSize)
	if err != nil {
		return err
	}
	x := (float64(w) - m.Width) / 2
	baseline := (float64(h)-m.Height())/2 + m.Ascent
	return b.surface.FillText(text, x, baseline, b.opts.CenteredSize, b.opts.CenteredColor)
}

// ReadString decodes the zero-terminated UTF-8 string at ref.
// Invalid sequences decode to U+FFFD. A reference outside memory, or one with
// no terminator before the end of memory, is an ErrMemoryAccess.
func ReadString(mem Memory, ref uint32) (string, error) {
	if mem == nil {
		return "", fmt.Errorf("%w: module exports no memory", core.ErrMemoryAccess)
	}
	size := mem.Size()
	if ref >= size {
		return "", fmt.Errorf("%w: text reference %#x past end of memory (%d bytes)", core.ErrMemoryAccess, ref, size)
	}
	buf, ok := mem.Read(ref, size-ref)
	if !ok {
		return "", fmt.Errorf("%w: cannot read memory at %#x", core.ErrMemoryAccess, ref)
	}
	n := bytes.IndexByte(buf, 0)
	if n < 0 {
		return "", fmt.Errorf("%w: text at %#x has no terminator", core.ErrMemoryAccess, ref)
	}
	return strings.ToValidUTF8(string(buf[:n]), "�"), nil
}
