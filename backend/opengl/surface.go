package opengl

import (
	"unicode/utf8"

	"github.com/go-theft-auto/grid"
)

// Surface is a grid.Surface backed by DrawLists. The structure layer is a
// finalized DrawList that each content pass appends before its text.
type Surface struct {
	renderer  *Renderer
	style     grid.Style
	structure *grid.DrawList
	content   *grid.DrawList

	width, height float64
	frames        int
	released      bool
}

// NewSurface creates a surface drawing through r.
func NewSurface(r *Renderer, style grid.Style) *Surface {
	return &Surface{
		renderer:  r,
		style:     style,
		structure: grid.AcquireDrawList(),
		content:   grid.AcquireDrawList(),
	}
}

// Resize implements grid.Surface.
func (s *Surface) Resize(width, height float64) {
	s.width, s.height = width, height
	s.structure.Clear()
}

// DrawStructure implements grid.Surface.
func (s *Surface) DrawStructure(l grid.Lattice) {
	dl := s.structure
	dl.Clear()

	st := s.style
	border := float32(st.BorderSize)
	w, h := float32(l.ContentWidth()), float32(l.Height)

	dl.AddRect(0, 0, float32(l.Width), h, st.BackgroundColor)
	for i := 0; i < l.Rows; i++ {
		if i%2 == 1 {
			dl.AddRect(0, float32(l.RowY(i)), w, float32(l.CellHeight), st.RowBgAltColor)
		}
	}
	for i := 1; i <= l.Rows; i++ {
		y := float32(l.RowY(i))
		dl.AddLine(0, y, w, y, st.BorderColor, border)
	}
	for c := 1; c < len(l.ColumnWidths); c++ {
		x := float32(l.ColumnX(c))
		dl.AddLine(x, 0, x, h, st.BorderColor, border)
	}
	dl.AddRectOutline(0, 0, w, h, st.BorderColor, border)
	dl.Finalize()
}

// Compose implements grid.Surface.
func (s *Surface) Compose() {
	s.content.Clear()
	s.content.Append(s.structure)
	s.content.PushClipRect(0, 0, float32(s.width-s.style.ScrollbarSize), float32(s.height))
	s.content.SetTexture(s.renderer.FontTextureID())
}

func (s *Surface) glyphSize() (float64, float64) {
	return s.style.CharWidth * s.style.FontScale, s.style.CharHeight * s.style.FontScale
}

// DrawText implements grid.Surface.
func (s *Surface) DrawText(x, y float64, text string) {
	_, ch := s.glyphSize()
	s.content.AddText(float32(x), float32(y-ch/2), text, s.style.TextColor,
		float32(s.style.FontScale), float32(s.style.CharWidth), float32(s.style.CharHeight))
}

// MeasureText implements grid.Surface. The bitmap font is monospaced.
func (s *Surface) MeasureText(text string) float64 {
	cw, _ := s.glyphSize()
	return float64(utf8.RuneCountInString(text)) * cw
}

// DrawIndicator implements grid.IndicatorDrawer.
func (s *Surface) DrawIndicator(g grid.ScrollbarGeometry, dragging bool) {
	dl := s.content
	dl.PopClipRect()
	dl.SetTexture(0)

	x := float32(s.width - s.style.ScrollbarSize)
	size := float32(s.style.ScrollbarSize)
	dl.AddRect(x, 0, size, float32(g.TrackHeight), s.style.ScrollbarBgColor)
	if g.Usable() <= 0 {
		return
	}
	color := s.style.ScrollbarGrabColor
	if dragging {
		color = s.style.ScrollbarGrabActive
	}
	dl.AddRect(x, float32(g.ThumbTop), size, float32(g.ThumbHeight), color)
}

// Flush implements grid.Surface. The composed frame is kept; Present draws
// it on every display frame.
func (s *Surface) Flush() error {
	s.content.Finalize()
	s.frames++
	return nil
}

// Present draws the last flushed frame into the current framebuffer.
func (s *Surface) Present() error {
	if s.released || s.frames == 0 {
		return nil
	}
	return s.renderer.Render(s.content)
}

// Frames returns the number of flushed frames.
func (s *Surface) Frames() int {
	return s.frames
}

// Release implements grid.Surface.
func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true
	grid.ReleaseDrawList(s.structure)
	grid.ReleaseDrawList(s.content)
	s.structure, s.content = nil, nil
	s.renderer.Delete()
}
