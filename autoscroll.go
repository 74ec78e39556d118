package grid

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// AutoScrollState is the state of the auto-scroll sub-machine.
type AutoScrollState uint8

const (
	AutoScrollStopped AutoScrollState = iota
	AutoScrollRunning
)

func (s AutoScrollState) String() string {
	if s == AutoScrollRunning {
		return "running"
	}
	return "stopped"
}

// AutoScroller advances the window by a fixed step every delay, driving
// itself from frame callbacks until the window reaches the last page.
type AutoScroller struct {
	host  FrameHost
	clock clockwork.Clock
	step  int
	delay time.Duration

	// advance moves the window by step rows.
	advance func(step int)
	// more reports whether the window can still move down.
	more func() bool

	state  AutoScrollState
	handle FrameHandle
	last   time.Time
	gen    uint64
}

// NewAutoScroller creates a stopped auto-scroller.
func NewAutoScroller(host FrameHost, clock clockwork.Clock, step int, delay time.Duration, advance func(int), more func() bool) *AutoScroller {
	if step <= 0 {
		step = DefaultAutoScrollStep
	}
	return &AutoScroller{
		host:    host,
		clock:   clock,
		step:    step,
		delay:   delay,
		advance: advance,
		more:    more,
	}
}

// Start enters Running. It is a no-op if already running.
func (a *AutoScroller) Start() {
	if a.state == AutoScrollRunning {
		return
	}
	a.state = AutoScrollRunning
	a.last = a.clock.Now()
	a.gen++
	a.schedule()
}

// Stop cancels any pending reschedule and leaves the machine Stopped. It is
// always safe to call.
func (a *AutoScroller) Stop() {
	if a.handle != 0 {
		a.host.CancelFrame(a.handle)
		a.handle = 0
	}
	a.state = AutoScrollStopped
	// Invalidate callbacks a host failed to cancel.
	a.gen++
}

// State returns the current state.
func (a *AutoScroller) State() AutoScrollState {
	return a.state
}

// Running reports whether the auto-scroller is running.
func (a *AutoScroller) Running() bool {
	return a.state == AutoScrollRunning
}

func (a *AutoScroller) schedule() {
	gen := a.gen
	a.handle = a.host.RequestFrame(func() { a.tick(gen) })
}

func (a *AutoScroller) tick(gen uint64) {
	if a.state != AutoScrollRunning || gen != a.gen {
		return
	}
	a.handle = 0

	now := a.clock.Now()
	if now.Sub(a.last) >= a.delay {
		a.advance(a.step)
		a.last = now
	}

	if a.more() {
		a.schedule()
		return
	}
	a.state = AutoScrollStopped
}
