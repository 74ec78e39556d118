package grid

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Defaults for a Grid built without options.
const (
	DefaultWheelStep       = 3  // Rows per wheel event
	DefaultAutoScrollStep  = 1  // Rows per auto-scroll advance
	DefaultMinThumb        = 20 // Minimum indicator thumb height
	DefaultWheelThrottle   = 16 * time.Millisecond
	DefaultDragDebounce    = 5 * time.Millisecond
	DefaultSearchDebounce  = 300 * time.Millisecond
	DefaultAutoScrollDelay = 50 * time.Millisecond
)

// Timing holds the input-rate limits of a Grid.
type Timing struct {
	WheelThrottle   time.Duration // Minimum spacing between accepted wheel events
	DragDebounce    time.Duration // Trailing debounce on indicator drag moves
	SearchDebounce  time.Duration // Trailing debounce on search edits
	AutoScrollDelay time.Duration // Minimum time between auto-scroll advances
}

// DefaultTiming returns the default input-rate limits.
func DefaultTiming() Timing {
	return Timing{
		WheelThrottle:   DefaultWheelThrottle,
		DragDebounce:    DefaultDragDebounce,
		SearchDebounce:  DefaultSearchDebounce,
		AutoScrollDelay: DefaultAutoScrollDelay,
	}
}

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Grid) { g.log = l }
}

// WithClock sets the clock used by the rate limiters and the auto-scroller.
func WithClock(c clockwork.Clock) Option {
	return func(g *Grid) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithStyle sets the grid style.
func WithStyle(s Style) Option {
	return func(g *Grid) { g.style = s }
}

// WithTiming sets the input-rate limits. Zero fields keep their defaults.
func WithTiming(t Timing) Option {
	return func(g *Grid) {
		if t.WheelThrottle > 0 {
			g.timing.WheelThrottle = t.WheelThrottle
		}
		if t.DragDebounce > 0 {
			g.timing.DragDebounce = t.DragDebounce
		}
		if t.SearchDebounce > 0 {
			g.timing.SearchDebounce = t.SearchDebounce
		}
		if t.AutoScrollDelay > 0 {
			g.timing.AutoScrollDelay = t.AutoScrollDelay
		}
	}
}

// WithWheelStep sets the rows moved per wheel event.
func WithWheelStep(step int) Option {
	return func(g *Grid) {
		if step > 0 {
			g.wheelStep = step
		}
	}
}

// WithAutoScroll sets the auto-scroll step and delay.
func WithAutoScroll(step int, delay time.Duration) Option {
	return func(g *Grid) {
		if step > 0 {
			g.autoStep = step
		}
		if delay > 0 {
			g.timing.AutoScrollDelay = delay
		}
	}
}

// WithMinThumbSize sets the minimum indicator thumb height.
func WithMinThumbSize(size float64) Option {
	return func(g *Grid) {
		if size > 0 {
			g.minThumb = size
		}
	}
}
