package reef

// FrameHandle cancels a callback requested from a Scheduler.
type FrameHandle interface {
	Cancel()
}

// Scheduler invokes a callback once on the next display refresh. It is the
// only way a Scene's frame loop continues itself.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
}

// TickScheduler is a Scheduler driven by an external tick, typically
// ebiten.Game.Update. At most one callback is pending at a time; a new
// request replaces the previous one.
type TickScheduler struct {
	pending func()
	seq     uint64
}

// NewTickScheduler returns an empty scheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

type tickHandle struct {
	s   *TickScheduler
	seq uint64
}

// Cancel drops the callback if it has not run yet. Cancelling a stale handle
// (one whose callback already ran or was replaced) does nothing.
func (h tickHandle) Cancel() {
	if h.s.seq == h.seq {
		h.s.pending = nil
	}
}

// RequestFrame queues fn for the next Fire.
func (s *TickScheduler) RequestFrame(fn func()) FrameHandle {
	s.seq++
	s.pending = fn
	return tickHandle{s: s, seq: s.seq}
}

// Pending reports whether a callback is queued.
func (s *TickScheduler) Pending() bool {
	return s.pending != nil
}

// Fire runs the pending callback, if any. A callback that requests another
// frame is queued for the following Fire, never run in the same one.
func (s *TickScheduler) Fire() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}
