// Package fynegrid hosts a grid in a Fyne window. The surface is an element
// tree of canvas objects: the structure layer is a set of rectangles and
// lines rebuilt only on DrawStructure, and the content layer reuses a pool
// of text objects.
package fynegrid

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/go-theft-auto/grid"
)

// Surface is a grid.Surface made of Fyne canvas objects. Fyne scales
// logical units to device pixels itself, so the surface has no pixel ratio.
type Surface struct {
	style    grid.Style
	textSize float32

	width, height float32
	structure     []fyne.CanvasObject
	texts         []*canvas.Text
	used          int
	track, thumb  *canvas.Rectangle

	onFlush  func()
	flushes  int
	released bool
}

// NewSurface creates an empty surface styled with s.
func NewSurface(s grid.Style) *Surface {
	size := float32(s.FontSize)
	if size <= 0 {
		size = float32(grid.DefaultStyle().FontSize)
	}
	return &Surface{
		style:    s,
		textSize: size,
		track:    canvas.NewRectangle(nrgba(s.ScrollbarBgColor)),
		thumb:    canvas.NewRectangle(nrgba(s.ScrollbarGrabColor)),
	}
}

func nrgba(c uint32) color.NRGBA {
	r, g, b, a := grid.UnpackRGBA(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Objects returns the current element tree, bottom to top.
func (s *Surface) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(s.structure)+len(s.texts)+2)
	objs = append(objs, s.structure...)
	for _, t := range s.texts {
		objs = append(objs, t)
	}
	return append(objs, s.track, s.thumb)
}

// VisibleTexts returns the strings drawn by the last content pass.
func (s *Surface) VisibleTexts() []string {
	out := make([]string, 0, s.used)
	for _, t := range s.texts[:s.used] {
		out = append(out, t.Text)
	}
	return out
}

// Flushes returns the number of flushed frames.
func (s *Surface) Flushes() int { return s.flushes }

// Resize implements grid.Surface.
func (s *Surface) Resize(width, height float64) {
	s.width, s.height = float32(max(0, width)), float32(max(0, height))
	s.structure = nil
}

// DrawStructure implements grid.Surface.
func (s *Surface) DrawStructure(l grid.Lattice) {
	st := s.style
	bg := canvas.NewRectangle(nrgba(st.BackgroundColor))
	bg.Move(fyne.NewPos(0, 0))
	bg.Resize(fyne.NewSize(s.width, s.height))
	objs := []fyne.CanvasObject{bg}

	w := float32(l.ContentWidth())
	if st.RowBgAltColor != 0 {
		for i := 1; i < l.Rows; i += 2 {
			r := canvas.NewRectangle(nrgba(st.RowBgAltColor))
			r.Move(fyne.NewPos(0, float32(l.RowY(i))))
			r.Resize(fyne.NewSize(w, float32(l.CellHeight)))
			objs = append(objs, r)
		}
	}
	for i := 0; i <= l.Rows; i++ {
		y := float32(l.RowY(i))
		objs = append(objs, s.line(0, y, w, y))
	}
	for c := 0; c <= len(l.ColumnWidths); c++ {
		x := float32(l.ColumnX(c))
		objs = append(objs, s.line(x, 0, x, float32(l.Height)))
	}
	s.structure = objs
}

func (s *Surface) line(x1, y1, x2, y2 float32) *canvas.Line {
	ln := canvas.NewLine(nrgba(s.style.BorderColor))
	ln.StrokeWidth = float32(s.style.BorderSize)
	ln.Position1 = fyne.NewPos(x1, y1)
	ln.Position2 = fyne.NewPos(x2, y2)
	return ln
}

// Compose implements grid.Surface.
func (s *Surface) Compose() {
	s.used = 0
	s.track.Hide()
	s.thumb.Hide()
}

// DrawText implements grid.Surface.
func (s *Surface) DrawText(x, y float64, text string) {
	var t *canvas.Text
	if s.used < len(s.texts) {
		t = s.texts[s.used]
	} else {
		t = canvas.NewText("", nrgba(s.style.TextColor))
		t.TextSize = s.textSize
		s.texts = append(s.texts, t)
	}
	s.used++

	t.Text = text
	h := t.MinSize().Height
	t.Move(fyne.NewPos(float32(x), float32(y)-h/2))
	t.Show()
}

// MeasureText implements grid.Surface.
func (s *Surface) MeasureText(text string) float64 {
	if text == "" {
		return 0
	}
	return float64(fyne.MeasureText(text, s.textSize, fyne.TextStyle{}).Width)
}

// DrawIndicator implements grid.IndicatorDrawer.
func (s *Surface) DrawIndicator(g grid.ScrollbarGeometry, dragging bool) {
	size := float32(s.style.ScrollbarSize)
	x := s.width - size
	s.track.Move(fyne.NewPos(x, 0))
	s.track.Resize(fyne.NewSize(size, float32(g.TrackHeight)))
	s.track.Show()
	if g.Usable() <= 0 {
		return
	}
	c := s.style.ScrollbarGrabColor
	if dragging {
		c = s.style.ScrollbarGrabActive
	}
	s.thumb.FillColor = nrgba(c)
	r := g.ThumbRect(float64(x), 0, float64(size))
	s.thumb.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	s.thumb.Resize(fyne.NewSize(float32(r.W), float32(r.H)))
	s.thumb.Show()
}

// Flush implements grid.Surface. Unused pooled texts are hidden and the
// owning widget is asked to refresh.
func (s *Surface) Flush() error {
	for _, t := range s.texts[s.used:] {
		t.Hide()
	}
	s.flushes++
	if s.onFlush != nil && !s.released {
		s.onFlush()
	}
	return nil
}

// Release implements grid.Surface.
func (s *Surface) Release() {
	s.released = true
	s.structure, s.texts, s.used = nil, nil, 0
}
