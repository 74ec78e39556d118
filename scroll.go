package grid

// ScrollController computes window transitions from input deltas and targets.
// It owns the clamping policy; it never mutates a window in place, callers
// decide whether and when a candidate is applied.
type ScrollController struct {
	// Step is the number of rows a single wheel event moves, independent of
	// the wheel delta magnitude.
	Step int
}

// NewScrollController returns a controller moving step rows per wheel event.
func NewScrollController(step int) *ScrollController {
	if step <= 0 {
		step = DefaultWheelStep
	}
	return &ScrollController{Step: step}
}

// ScrollBy moves from w by step rows in the direction of delta. The second
// result is false when the clamped start equals the current start, so
// callers can skip redraws at the extremes.
func (c *ScrollController) ScrollBy(w ViewWindow, total int, delta float64, step int) (ViewWindow, bool) {
	dir := 0
	switch {
	case delta > 0:
		dir = 1
	case delta < 0:
		dir = -1
	}
	if dir == 0 {
		return w, false
	}
	return c.ScrollTo(w, total, w.Start+dir*step)
}

// Wheel is ScrollBy with the controller's configured step.
func (c *ScrollController) Wheel(w ViewWindow, total int, delta float64) (ViewWindow, bool) {
	return c.ScrollBy(w, total, delta, c.Step)
}

// PageBy moves one full page up (dir < 0) or down (dir > 0).
func (c *ScrollController) PageBy(w ViewWindow, total int, dir int) (ViewWindow, bool) {
	return c.ScrollBy(w, total, float64(dir), max(1, w.VisibleCount))
}

// ScrollTo moves the window so it starts at target, clamped into range.
func (c *ScrollController) ScrollTo(w ViewWindow, total int, target int) (ViewWindow, bool) {
	next := w.withStart(target, total)
	if next.Start == w.Start && next.End == w.End {
		return w, false
	}
	return next, true
}
