package core

// Pointer tracks the last observed pointer position and the primary button.
//
// Position only changes on move events and is never clamped or smoothed.
// The button is edge-triggered on release: OnUp arms a pressed edge that the
// next ConsumePressed reads and clears.
type Pointer struct {
	x, y    int
	down    bool
	pressed bool
}

// NewPointer creates a pointer at the origin with the button released.
func NewPointer() *Pointer {
	return &Pointer{}
}

// OnMove records the pointer position. Last write wins.
func (p *Pointer) OnMove(x, y int) {
	p.x = x
	p.y = y
}

// OnDown marks the button held and clears any unread edge.
func (p *Pointer) OnDown() {
	p.down = true
	p.pressed = false
}

// OnUp releases the button and arms the pressed edge.
func (p *Pointer) OnUp() {
	p.down = false
	p.pressed = true
}

// Position returns the coordinates of the most recent move.
func (p *Pointer) Position() (int, int) {
	return p.x, p.y
}

// IsDown reports whether the button is held.
func (p *Pointer) IsDown() bool {
	return p.down
}

// Clicked is the simplified query some modules import. It is the held state,
// not an independent flag.
func (p *Pointer) Clicked() bool {
	return p.down
}

// ConsumePressed reports and clears the release edge.
func (p *Pointer) ConsumePressed() bool {
	if !p.pressed {
		return false
	}
	p.pressed = false
	return true
}
