package host

import (
	"github.com/vovakirdan/wasmcade/internal/bridge"
	"github.com/vovakirdan/wasmcade/internal/core"
)

// Imports is the set of host functions a module is bound to. It carries the
// state of one host instance, so several hosts can run side by side.
type Imports struct {
	keys    *core.Keyboard
	pointer *core.Pointer
	bridge  *bridge.Bridge
}

// NewImports binds the trackers and bridge into an import set.
func NewImports(keys *core.Keyboard, pointer *core.Pointer, b *bridge.Bridge) *Imports {
	return &Imports{keys: keys, pointer: pointer, bridge: b}
}

// MouseX returns the pointer's x coordinate.
func (im *Imports) MouseX() int32 {
	x, _ := im.pointer.Position()
	return int32(x)
}

// MouseY returns the pointer's y coordinate.
func (im *Imports) MouseY() int32 {
	_, y := im.pointer.Position()
	return int32(y)
}

// MouseDown reports whether the pointer button is held.
func (im *Imports) MouseDown() bool {
	return im.pointer.IsDown()
}

// MousePressed consumes the pointer's release edge.
func (im *Imports) MousePressed() bool {
	return im.pointer.ConsumePressed()
}

// Clicked is the simplified pointer query; it mirrors MouseDown.
func (im *Imports) Clicked() bool {
	return im.pointer.Clicked()
}

// KeyDown reports whether the key with the given code is held.
func (im *Imports) KeyDown(code uint32) bool {
	return im.keys.IsDown(core.KeyID(code))
}

// KeyPressed consumes the release edge of the key with the given code.
func (im *Imports) KeyPressed(code uint32) bool {
	return im.keys.ConsumePressed(core.KeyID(code))
}

// DrawRect forwards to the bridge.
func (im *Imports) DrawRect(x, y, w, h int32, color uint32) error {
	return im.bridge.DrawRect(x, y, w, h, color)
}

// DrawCircle forwards to the bridge.
func (im *Imports) DrawCircle(x, y, r int32, color uint32) error {
	return im.bridge.DrawCircle(x, y, r, color)
}

// DrawTextAt forwards the positioned text variant to the bridge.
func (im *Imports) DrawTextAt(mem bridge.Memory, x, y, size int32, ref, color uint32) error {
	return im.bridge.DrawTextAt(mem, x, y, size, ref, color)
}

// DrawTextCentered forwards the centred text variant to the bridge.
func (im *Imports) DrawTextCentered(mem bridge.Memory, w, h int32, ref uint32) error {
	return im.bridge.DrawTextCentered(mem, w, h, ref)
}
