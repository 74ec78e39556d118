package grid

import "math"

// Ellipsis is appended to truncated cell text.
const Ellipsis = "…"

// ellipsisReserve is the number of average-width characters given up to
// make room for the ellipsis.
const ellipsisReserve = 3

// TextMeasurer measures the rendered width of a string in logical units.
type TextMeasurer interface {
	MeasureText(text string) float64
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string) float64

// MeasureText implements TextMeasurer.
func (f MeasureFunc) MeasureText(text string) float64 { return f(text) }

// Truncate shortens text to fit a column of width colWidth minus padding.
// Text that fits is returned unchanged. Otherwise the number of characters
// kept is estimated from the average character width and the result ends
// in an ellipsis; it is not guaranteed to fit exactly.
//
// Usage:
//
//	label := grid.Truncate(surface, cell, col.Width, style.CellPadding)
func Truncate(m TextMeasurer, text string, colWidth, padding float64) string {
	if text == "" {
		return ""
	}
	maxWidth := colWidth - padding
	measured := m.MeasureText(text)
	if measured <= maxWidth {
		return text
	}

	runes := []rune(text)
	avg := measured / float64(len(runes))
	keep := 0
	if avg > 0 && maxWidth > 0 {
		keep = int(math.Floor(maxWidth/avg)) - ellipsisReserve
	}
	keep = clampInt(keep, 0, len(runes))
	if keep == 0 {
		return Ellipsis
	}
	return string(runes[:keep]) + Ellipsis
}
