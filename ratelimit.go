package grid

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Throttle enforces a minimum spacing between accepted events.
type Throttle struct {
	clock    clockwork.Clock
	interval time.Duration
	last     time.Time
	seen     bool
}

// NewThrottle creates a throttle accepting at most one event per interval.
func NewThrottle(clock clockwork.Clock, interval time.Duration) *Throttle {
	return &Throttle{clock: clock, interval: interval}
}

// Allow reports whether an event arriving now is accepted, and records it
// if so.
func (t *Throttle) Allow() bool {
	now := t.clock.Now()
	if t.seen && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.seen = true
	return true
}

// Reset forgets the last accepted event.
func (t *Throttle) Reset() {
	t.seen = false
	t.last = time.Time{}
}

// Debouncer runs the most recently triggered function once no trigger has
// arrived for the configured delay. The trailing edge is detected on frame
// callbacks of the host, so it fires on the first frame at or after the
// deadline.
type Debouncer struct {
	host     FrameHost
	clock    clockwork.Clock
	delay    time.Duration
	deadline time.Time
	fn       func()
	handle   FrameHandle
	armed    bool
}

// NewDebouncer creates a trailing-edge debouncer.
func NewDebouncer(host FrameHost, clock clockwork.Clock, delay time.Duration) *Debouncer {
	return &Debouncer{host: host, clock: clock, delay: delay}
}

// Trigger replaces the pending function with fn and pushes the deadline out
// by the delay.
func (d *Debouncer) Trigger(fn func()) {
	d.fn = fn
	d.deadline = d.clock.Now().Add(d.delay)
	d.armed = true
	if d.handle == 0 {
		d.handle = d.host.RequestFrame(d.poll)
	}
}

// Pending reports whether a function is waiting for its trailing edge.
func (d *Debouncer) Pending() bool {
	return d.armed
}

// Flush runs the pending function immediately, if any.
func (d *Debouncer) Flush() {
	if !d.armed {
		return
	}
	fn := d.fn
	d.Cancel()
	fn()
}

// Cancel drops the pending function and releases the frame callback.
func (d *Debouncer) Cancel() {
	if d.handle != 0 {
		d.host.CancelFrame(d.handle)
		d.handle = 0
	}
	d.armed = false
	d.fn = nil
}

func (d *Debouncer) poll() {
	d.handle = 0
	if !d.armed {
		return
	}
	if d.clock.Now().Before(d.deadline) {
		d.handle = d.host.RequestFrame(d.poll)
		return
	}
	fn := d.fn
	d.armed = false
	d.fn = nil
	fn()
}
