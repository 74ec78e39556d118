package grid

// FrameHandle identifies a registered frame callback. The zero value is
// never issued.
type FrameHandle uint64

// FrameHost is the per-display-frame callback facility a backend provides.
// Callbacks run on the host's single UI thread, never concurrently.
type FrameHost interface {
	// RequestFrame registers fn to run on the next display frame.
	RequestFrame(fn func()) FrameHandle
	// CancelFrame revokes a callback that has not fired yet.
	CancelFrame(h FrameHandle)
}

// FrameQueue is a cooperative FrameHost. The owning loop calls RunFrame once
// per display frame; callbacks requested while a frame runs are deferred to
// the next one.
type FrameQueue struct {
	next    FrameHandle
	pending []queuedFrame
}

type queuedFrame struct {
	handle FrameHandle
	fn     func()
}

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame implements FrameHost.
func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	q.next++
	q.pending = append(q.pending, queuedFrame{handle: q.next, fn: fn})
	return q.next
}

// CancelFrame implements FrameHost.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	for i, f := range q.pending {
		if f.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame fires every callback registered before this call, in
// registration order. It returns the number of callbacks run.
func (q *FrameQueue) RunFrame() int {
	batch := q.pending
	q.pending = nil
	for _, f := range batch {
		f.fn()
	}
	return len(batch)
}

// SchedulerState is the state of a FrameScheduler.
type SchedulerState uint8

const (
	SchedulerIdle SchedulerState = iota
	SchedulerPendingFrame
)

func (s SchedulerState) String() string {
	if s == SchedulerPendingFrame {
		return "pending"
	}
	return "idle"
}

// FrameScheduler coalesces bursts of window updates into at most one render
// pass per display frame. Intermediate windows are dropped; the last
// requested window wins.
type FrameScheduler struct {
	host   FrameHost
	apply  func(ViewWindow)
	state  SchedulerState
	handle FrameHandle
	target ViewWindow
	frames uint64
}

// NewFrameScheduler creates a scheduler that calls apply with the final
// window once per granted frame.
func NewFrameScheduler(host FrameHost, apply func(ViewWindow)) *FrameScheduler {
	return &FrameScheduler{host: host, apply: apply}
}

// Request records w as the window to apply on the next frame, registering a
// frame callback only when none is pending.
func (s *FrameScheduler) Request(w ViewWindow) {
	s.target = w
	if s.state == SchedulerPendingFrame {
		return
	}
	s.state = SchedulerPendingFrame
	s.handle = s.host.RequestFrame(s.fire)
}

// Latest returns the pending window if a frame is pending, otherwise current.
func (s *FrameScheduler) Latest(current ViewWindow) ViewWindow {
	if s.state == SchedulerPendingFrame {
		return s.target
	}
	return current
}

// State returns the scheduler state.
func (s *FrameScheduler) State() SchedulerState {
	return s.state
}

// Frames returns how many frames have been applied.
func (s *FrameScheduler) Frames() uint64 {
	return s.frames
}

// Cancel drops any pending frame without applying it.
func (s *FrameScheduler) Cancel() {
	if s.state == SchedulerPendingFrame {
		s.host.CancelFrame(s.handle)
	}
	s.state = SchedulerIdle
	s.handle = 0
}

func (s *FrameScheduler) fire() {
	if s.state != SchedulerPendingFrame {
		return
	}
	s.state = SchedulerIdle
	s.handle = 0
	s.frames++
	s.apply(s.target)
}
