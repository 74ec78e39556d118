package grid

import "math"

// ViewWindow is the contiguous range of active rows currently materialized
// for display.
//
// Usage:
//
//	w := grid.NewViewWindow(visibleCount, total)
//	for i := w.Start; i < w.End; i++ {
//	    // draw row i at (i - w.Start) * cellHeight
//	}
type ViewWindow struct {
	Start        int // First visible row (inclusive)
	End          int // Last visible row (exclusive)
	VisibleCount int // Rows that fit in the viewport
}

// VisibleCountFor returns ceil(viewHeight / cellHeight), or 0 for a
// degenerate viewport.
func VisibleCountFor(viewHeight, cellHeight float64) int {
	if cellHeight <= 0 || viewHeight <= 0 {
		return 0
	}
	return int(math.Ceil(viewHeight / cellHeight))
}

// NewViewWindow returns the window at the top of a dataset of total rows.
func NewViewWindow(visibleCount, total int) ViewWindow {
	w := ViewWindow{VisibleCount: max(0, visibleCount)}
	w.ResetForData(total)
	return w
}

// Len returns the number of rows in the window.
func (w ViewWindow) Len() int {
	return w.End - w.Start
}

// Contains reports whether row idx is inside the window.
func (w ViewWindow) Contains(idx int) bool {
	return idx >= w.Start && idx < w.End
}

// MaxStart returns the last valid start index for a dataset of total rows.
func (w ViewWindow) MaxStart(total int) int {
	return max(0, total-w.VisibleCount)
}

// ResetForData moves the window back to the top of a dataset of length rows.
func (w *ViewWindow) ResetForData(length int) {
	w.Start = 0
	w.End = min(w.VisibleCount, max(0, length))
}

// ResetForResize applies a new visible count, keeping the current start when
// it is still valid.
func (w *ViewWindow) ResetForResize(visibleCount, total int) {
	w.VisibleCount = max(0, visibleCount)
	w.setStart(w.Start, total)
}

// setStart clamps start into [0, MaxStart] and recomputes End.
func (w *ViewWindow) setStart(start, total int) {
	total = max(0, total)
	w.Start = clampInt(start, 0, w.MaxStart(total))
	w.End = min(w.Start+w.VisibleCount, total)
}

// withStart returns a copy of the window moved to start.
func (w ViewWindow) withStart(start, total int) ViewWindow {
	w.setStart(start, total)
	return w
}
