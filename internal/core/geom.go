package core

// Size is a surface size in pixels.
type Size struct {
	W, H int
}

// NewSize creates a size, flooring negative dimensions at zero.
func NewSize(w, h int) Size {
	return Size{W: Max(w, 0), H: Max(h, 0)}
}

// Empty reports whether the size has no area.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
