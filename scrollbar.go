package grid

import "math"

// ScrollbarGeometry is the layout of the custom scrollbar indicator, in
// logical units relative to the top of the track.
type ScrollbarGeometry struct {
	TrackHeight float64
	ThumbHeight float64
	ThumbTop    float64
}

// Usable returns the distance the thumb can travel.
func (g ScrollbarGeometry) Usable() float64 {
	return g.TrackHeight - g.ThumbHeight
}

// ThumbRect returns the thumb rectangle for a track starting at (x, y).
func (g ScrollbarGeometry) ThumbRect(x, y, width float64) Rect {
	return Rect{X: x, Y: y + g.ThumbTop, W: width, H: g.ThumbHeight}
}

// DragState tracks an indicator drag in progress.
type DragState struct {
	Active bool    // Pointer is down on the indicator
	Offset float64 // Pointer position within the thumb when the drag started
	LastY  float64 // Most recent pointer position on the track
}

// Reset clears the drag state.
func (d *DragState) Reset() {
	d.Active = false
	d.Offset = 0
	d.LastY = 0
}

// ScrollbarSync maps between a ViewWindow and the indicator geometry in both
// directions.
type ScrollbarSync struct {
	// MinThumb floors the thumb height so it stays graspable however large
	// the dataset is.
	MinThumb float64

	geom ScrollbarGeometry
}

// NewScrollbarSync creates a sync with the given minimum thumb size.
func NewScrollbarSync(minThumb float64) *ScrollbarSync {
	return &ScrollbarSync{MinThumb: minThumb}
}

// Geometry returns the most recently computed geometry.
func (s *ScrollbarSync) Geometry() ScrollbarGeometry {
	return s.geom
}

// ThumbHeight returns max(MinThumb, viewHeight^2 / contentHeight), capped at
// the track height.
func (s *ScrollbarSync) ThumbHeight(trackHeight, viewHeight, contentHeight float64) float64 {
	if trackHeight <= 0 {
		return 0
	}
	h := trackHeight
	if contentHeight > 0 {
		h = math.Max(s.MinThumb, viewHeight*viewHeight/contentHeight)
	}
	return math.Min(h, trackHeight)
}

// Update recomputes the geometry for window w over total rows and returns it.
func (s *ScrollbarSync) Update(w ViewWindow, total int, cellHeight, viewHeight, trackHeight float64) ScrollbarGeometry {
	s.geom = s.Compute(w, total, cellHeight, viewHeight, trackHeight)
	return s.geom
}

// Compute returns the geometry for window w over total rows without
// recording it.
func (s *ScrollbarSync) Compute(w ViewWindow, total int, cellHeight, viewHeight, trackHeight float64) ScrollbarGeometry {
	g := ScrollbarGeometry{
		TrackHeight: math.Max(0, trackHeight),
		ThumbHeight: s.ThumbHeight(trackHeight, viewHeight, float64(total)*cellHeight),
	}
	g.ThumbTop = ThumbTopFor(w.Start, total, w.VisibleCount, g.TrackHeight, g.ThumbHeight)
	return g
}

// ThumbTopFor maps a window start to the thumb offset on the track.
func ThumbTopFor(start, total, visible int, trackHeight, thumbHeight float64) float64 {
	scrollable := total - visible
	usable := trackHeight - thumbHeight
	if scrollable <= 0 || usable <= 0 {
		return 0
	}
	ratio := float64(start) / float64(scrollable)
	return clampf(ratio*usable, 0, usable)
}

// StartForThumb maps a pointer position on the track to a window start.
// dragOffset is where inside the thumb the pointer grabbed it. The ratio is
// clamped to [0, 1], so the result never passes the last full page: a thumb
// at the bottom of the track yields exactly total-visible.
func StartForThumb(pointerY, dragOffset float64, total, visible int, trackHeight, thumbHeight float64) int {
	scrollable := total - visible
	usable := trackHeight - thumbHeight
	if scrollable <= 0 || usable <= 0 {
		return 0
	}
	ratio := clampf((pointerY-dragOffset)/usable, 0, 1)
	return clampInt(int(math.Floor(ratio*float64(scrollable))), 0, scrollable)
}
