// Package terminal renders a grid in a terminal with Bubble Tea. One logical
// unit is one terminal cell: a column of text horizontally, a line
// vertically.
package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/grid"
)

// Glyphs used for the structure layer and the indicator.
const (
	separator  = '│'
	trackGlyph = '│'
	thumbGlyph = '┃'
)

// cont marks the second cell of a double-width rune.
const cont rune = 0

type cellKind uint8

const (
	kindText cellKind = iota
	kindBorder
	kindTrack
	kindThumb
)

type cell struct {
	r    rune
	kind cellKind
}

// Surface is a grid.Surface backed by a rune matrix. Flush renders the
// matrix to a styled string returned by View.
type Surface struct {
	palette palette

	cols, rows int
	structure  [][]cell
	content    [][]cell
	dragging   bool

	view     string
	flushes  int
	released bool
}

type palette struct {
	text, alt     lipgloss.Style
	border        lipgloss.Style
	track, thumb  lipgloss.Style
	thumbActive   lipgloss.Style
	header        lipgloss.Style
	status        lipgloss.Style
	altBackground bool
}

func newPalette(s grid.Style) palette {
	bg := hexColor(s.BackgroundColor)
	p := palette{
		text:        lipgloss.NewStyle().Foreground(hexColor(s.TextColor)).Background(bg),
		border:      lipgloss.NewStyle().Foreground(hexColor(s.BorderColor)).Background(bg),
		track:       lipgloss.NewStyle().Foreground(hexColor(s.ScrollbarBgColor)),
		thumb:       lipgloss.NewStyle().Foreground(hexColor(s.ScrollbarGrabColor)),
		thumbActive: lipgloss.NewStyle().Foreground(hexColor(s.ScrollbarGrabActive)).Bold(true),
		header: lipgloss.NewStyle().
			Foreground(hexColor(s.HeaderText())).
			Background(hexColor(s.HeaderBgColor)).
			Bold(true),
		status: lipgloss.NewStyle().Foreground(hexColor(s.BorderColor)),
	}
	p.alt = p.text
	if s.RowBgAltColor != 0 {
		p.alt = p.text.Background(hexColor(s.RowBgAltColor))
		p.altBackground = true
	}
	return p
}

// hexColor converts a packed RGBA color to a lipgloss color. Alpha is
// ignored.
func hexColor(c uint32) lipgloss.Color {
	r, g, b, _ := grid.UnpackRGBA(c)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// NewSurface creates an empty surface styled with s.
func NewSurface(s grid.Style) *Surface {
	return &Surface{palette: newPalette(s)}
}

// SetStyle replaces the colors used by subsequent flushes.
func (s *Surface) SetStyle(st grid.Style) {
	s.palette = newPalette(st)
}

// Size returns the surface size in cells.
func (s *Surface) Size() (cols, rows int) { return s.cols, s.rows }

// View returns the last flushed frame.
func (s *Surface) View() string { return s.view }

// Flushes returns the number of flushed frames.
func (s *Surface) Flushes() int { return s.flushes }

// Line returns the unstyled text of row y of the last composed frame.
func (s *Surface) Line(y int) string {
	if y < 0 || y >= len(s.content) {
		return ""
	}
	var b strings.Builder
	for _, c := range s.content[y] {
		if c.r != cont {
			b.WriteRune(c.r)
		}
	}
	return b.String()
}

// Resize implements grid.Surface.
func (s *Surface) Resize(width, height float64) {
	s.cols = max(0, int(math.Floor(width)))
	s.rows = max(0, int(math.Floor(height)))
	s.structure = newMatrix(s.cols, s.rows)
	s.content = newMatrix(s.cols, s.rows)
}

func newMatrix(cols, rows int) [][]cell {
	m := make([][]cell, rows)
	for y := range m {
		m[y] = make([]cell, cols)
		for x := range m[y] {
			m[y][x] = cell{r: ' '}
		}
	}
	return m
}

// contentCols is the width left of the indicator column.
func (s *Surface) contentCols() int {
	return max(0, s.cols-1)
}

// DrawStructure implements grid.Surface. Column separators are drawn at the
// right edge of every column.
func (s *Surface) DrawStructure(l grid.Lattice) {
	for y := range s.structure {
		row := s.structure[y]
		for x := range row {
			row[x] = cell{r: ' '}
		}
		for c := 1; c <= len(l.ColumnWidths); c++ {
			x := int(math.Round(l.ColumnX(c)))
			if x >= 0 && x < s.contentCols() {
				row[x] = cell{r: separator, kind: kindBorder}
			}
		}
	}
}

// Compose implements grid.Surface.
func (s *Surface) Compose() {
	for y := range s.content {
		copy(s.content[y], s.structure[y])
	}
	s.dragging = false
}

// DrawText implements grid.Surface. Text stops at the next column separator
// or at the indicator column.
func (s *Surface) DrawText(x, y float64, text string) {
	row := int(math.Floor(y))
	if row < 0 || row >= s.rows {
		return
	}
	line := s.content[row]
	limit := s.contentCols()
	col := int(math.Round(x))
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col < 0 || col+w > limit || !s.writable(line, col, w) {
			return
		}
		line[col] = cell{r: r}
		if w == 2 {
			line[col+1] = cell{r: cont}
		}
		col += w
	}
}

func (s *Surface) writable(line []cell, col, w int) bool {
	for i := col; i < col+w; i++ {
		if line[i].kind == kindBorder {
			return false
		}
	}
	return true
}

// MeasureText implements grid.Surface in terminal cells.
func (s *Surface) MeasureText(text string) float64 {
	return float64(runewidth.StringWidth(text))
}

// DrawIndicator implements grid.IndicatorDrawer in the rightmost column.
func (s *Surface) DrawIndicator(g grid.ScrollbarGeometry, dragging bool) {
	if s.cols == 0 {
		return
	}
	x := s.cols - 1
	top := int(math.Floor(g.ThumbTop))
	bottom := top + max(1, int(math.Round(g.ThumbHeight)))
	for y := 0; y < s.rows; y++ {
		if float64(y) >= g.TrackHeight {
			break
		}
		c := cell{r: trackGlyph, kind: kindTrack}
		if g.Usable() > 0 && y >= top && y < bottom {
			c = cell{r: thumbGlyph, kind: kindThumb}
		}
		s.content[y][x] = c
	}
	s.dragging = dragging
}

// Flush implements grid.Surface.
func (s *Surface) Flush() error {
	if s.released {
		return nil
	}
	lines := make([]string, len(s.content))
	for y, row := range s.content {
		base := s.palette.text
		if y%2 == 1 && s.palette.altBackground {
			base = s.palette.alt
		}
		lines[y] = s.renderLine(row, base)
	}
	s.view = strings.Join(lines, "\n")
	s.flushes++
	return nil
}

// renderLine styles runs of cells of the same kind.
func (s *Surface) renderLine(row []cell, base lipgloss.Style) string {
	var out, run strings.Builder
	kind := kindText
	emit := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(s.styleFor(kind, base).Render(run.String()))
		run.Reset()
	}
	for _, c := range row {
		if c.r == cont {
			continue
		}
		if c.kind != kind {
			emit()
			kind = c.kind
		}
		run.WriteRune(c.r)
	}
	emit()
	return out.String()
}

func (s *Surface) styleFor(k cellKind, base lipgloss.Style) lipgloss.Style {
	switch k {
	case kindBorder:
		return s.palette.border
	case kindTrack:
		return s.palette.track
	case kindThumb:
		if s.dragging {
			return s.palette.thumbActive
		}
		return s.palette.thumb
	default:
		return base
	}
}

// Release implements grid.Surface.
func (s *Surface) Release() {
	s.released = true
	s.structure, s.content = nil, nil
	s.view = ""
}
