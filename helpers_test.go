package grid_test

import (
	"strconv"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
)

// charWidth is the advance of every rune on the recording surface.
const charWidth = 7

type drawnText struct {
	X, Y float64
	Text string
}

// recordingSurface is a grid.Surface that records what it was asked to
// draw.
type recordingSurface struct {
	width, height float64
	resizes       int
	structures    []grid.Lattice
	composes      int
	texts         []drawnText // texts of the current pass
	indicator     grid.ScrollbarGeometry
	dragging      bool
	flushes       int
	released      int
	flushErr      error
}

func (s *recordingSurface) MeasureText(text string) float64 {
	return float64(len([]rune(text))) * charWidth
}

func (s *recordingSurface) Resize(width, height float64) {
	s.width, s.height = width, height
	s.resizes++
}

func (s *recordingSurface) DrawStructure(l grid.Lattice) { s.structures = append(s.structures, l) }

func (s *recordingSurface) Compose() {
	s.composes++
	s.texts = s.texts[:0]
}

func (s *recordingSurface) DrawText(x, y float64, text string) {
	s.texts = append(s.texts, drawnText{X: x, Y: y, Text: text})
}

func (s *recordingSurface) DrawIndicator(g grid.ScrollbarGeometry, dragging bool) {
	s.indicator, s.dragging = g, dragging
}

func (s *recordingSurface) Flush() error {
	s.flushes++
	return s.flushErr
}

func (s *recordingSurface) Release() { s.released++ }

// testHost is a grid.Container driven by explicit RunFrame calls.
type testHost struct {
	surface  *recordingSurface
	queue    *grid.FrameQueue
	handler  grid.InputHandler
	detached int
}

func newTestHost() *testHost {
	return &testHost{surface: &recordingSurface{}, queue: grid.NewFrameQueue()}
}

func (h *testHost) Surface() grid.Surface     { return h.surface }
func (h *testHost) FrameHost() grid.FrameHost { return h.queue }

func (h *testHost) Attach(handler grid.InputHandler) func() {
	h.handler = handler
	return func() {
		h.handler = nil
		h.detached++
	}
}

// settle runs frames until nothing is pending.
func (h *testHost) settle(t *testing.T) {
	t.Helper()
	for i := 0; h.queue.Pending() > 0; i++ {
		require.Less(t, i, 100, "frames never settled")
		h.queue.RunFrame()
	}
}

// numberedRows returns n rows of two columns: the row index and "row-<i>".
func numberedRows(n int) grid.Dataset {
	rows := make(grid.Dataset, n)
	for i := range rows {
		rows[i] = []string{strconv.Itoa(i), "row-" + strconv.Itoa(i)}
	}
	return rows
}

// standardConfig is 400 units tall with 20-unit rows: 20 visible rows.
var standardConfig = grid.ViewportConfig{
	CellHeight: 20,
	CellWidth:  100,
	ViewHeight: 400,
	Padding:    8,
}

func newTestGrid(t *testing.T, rows int, opts ...grid.Option) (*grid.Grid, *testHost, clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	host := newTestHost()
	g, err := grid.New(host, grid.ColumnsFromHeader([]string{"id", "name"}, 0), standardConfig,
		append([]grid.Option{grid.WithClock(clock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(g.Destroy)
	g.LoadData(numberedRows(rows))
	return g, host, clock
}
