package host

// Scheduler hands out refresh callbacks. RequestTick arranges for fn to run
// once, on the next display refresh, on the host's event sequence.
type Scheduler interface {
	RequestTick(fn func())
}

// FrameScheduler holds at most one pending callback until the frontend's
// refresh source fires it. Tests fire it by hand to step frames.
type FrameScheduler struct {
	pending func()
}

// NewFrameScheduler creates a scheduler with nothing pending.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestTick replaces the pending callback with fn.
func (s *FrameScheduler) RequestTick(fn func()) {
	s.pending = fn
}

// Pending reports whether a callback is waiting.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Fire runs the pending callback, if any, and reports whether one ran.
// The callback may request the next tick while running.
func (s *FrameScheduler) Fire() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}
