package core

// Keyboard tracks which keys are held and which have an unread edge.
//
// Identifiers are strings so the same physical key maps to one identifier no
// matter which frontend reported it or which import queried it.
// A Keyboard is owned by a single host instance and is not safe for
// concurrent use; all events and queries run on the host's event sequence.
type Keyboard struct {
	down    map[string]struct{}
	pressed map[string]struct{}
}

// NewKeyboard creates an empty keyboard tracker.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		down:    make(map[string]struct{}),
		pressed: make(map[string]struct{}),
	}
}

// OnKeyDown records that id is held and drops any unread edge for it,
// so a held key never carries a stale press.
func (k *Keyboard) OnKeyDown(id string) {
	k.down[id] = struct{}{}
	delete(k.pressed, id)
}

// OnKeyUp records the release edge for id and clears its held state.
func (k *Keyboard) OnKeyUp(id string) {
	k.pressed[id] = struct{}{}
	delete(k.down, id)
}

// IsDown reports whether id is currently held. It never mutates state.
func (k *Keyboard) IsDown(id string) bool {
	_, ok := k.down[id]
	return ok
}

// ConsumePressed reports whether id has an unread edge and clears it.
// A second call without an intervening OnKeyUp returns false.
func (k *Keyboard) ConsumePressed(id string) bool {
	if _, ok := k.pressed[id]; !ok {
		return false
	}
	delete(k.pressed, id)
	return true
}

// KeyID maps a numeric key code from the module to its identifier.
// The code is truncated to 16 bits and read as a single character, so
// KeyID('a') == "a" and KeyID(' ') == " ".
func KeyID(code uint32) string {
	return string(rune(uint16(code)))
}
