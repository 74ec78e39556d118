package grid_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
)

// bareContainer has neither surface nor frame host.
type bareContainer struct{}

func (bareContainer) Surface() grid.Surface     { return nil }
func (bareContainer) FrameHost() grid.FrameHost { return nil }

func (bareContainer) Attach(grid.InputHandler) func() {
	return func() {}
}

func TestNewErrors(t *testing.T) {
	cols := grid.ColumnsFromHeader([]string{"a"}, 0)

	_, err := grid.New(nil, cols, standardConfig)
	assert.ErrorIs(t, err, grid.ErrNoContainer)

	_, err = grid.New(bareContainer{}, cols, standardConfig)
	assert.ErrorIs(t, err, grid.ErrNoContainer)

	bad := standardConfig
	bad.CellHeight = 0
	_, err = grid.New(newTestHost(), cols, bad)
	assert.ErrorIs(t, err, grid.ErrInvalidConfig)
}

func TestNewDrawsEmptyGrid(t *testing.T) {
	host := newTestHost()
	g, err := grid.New(host, grid.ColumnsFromHeader([]string{"id", "", "name"}, 0), standardConfig)
	require.NoError(t, err)
	defer g.Destroy()

	s := host.surface
	assert.Equal(t, 1, s.flushes)
	require.Len(t, s.structures, 1)
	assert.Equal(t, 20, s.structures[0].Rows)
	assert.Equal(t, []float64{100, 100, 100}, s.structures[0].ColumnWidths)
	assert.InDelta(t, 300, s.width, 1e-9, "width defaults to the column sum")
	assert.Empty(t, s.texts)
	assert.Equal(t, "col2", g.Columns()[1].ID)
	assert.NotNil(t, host.handler)
}

func TestOnlyVisibleRowsAreDrawn(t *testing.T) {
	_, host, _ := newTestGrid(t, 100_000)

	texts := host.surface.texts
	require.Len(t, texts, 40)
	assert.Equal(t, drawnText{X: 4, Y: 10, Text: "0"}, texts[0])
	assert.Equal(t, drawnText{X: 104, Y: 10, Text: "row-0"}, texts[1])
	assert.Equal(t, drawnText{X: 104, Y: 390, Text: "row-19"}, texts[39])
}

func TestStructureLayerRedrawnOnlyOnResize(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)
	s := host.surface

	for i := 0; i < 5; i++ {
		g.OnKey(grid.KeyPageDown)
		host.settle(t)
	}
	assert.Len(t, s.structures, 1)
	assert.Equal(t, 100, g.Window().Start)

	g.Resize(400, 200)
	assert.Len(t, s.structures, 2)
	assert.Equal(t, 10, s.structures[1].Rows)
	assert.Equal(t, 2, s.resizes)
}

func TestWheelIsThrottledAndCoalesced(t *testing.T) {
	g, host, clock := newTestGrid(t, 1000)

	g.OnWheel(1)
	g.OnWheel(1)
	assert.Equal(t, 3, g.PendingWindow().Start, "second event inside the throttle interval")

	clock.Advance(grid.DefaultWheelThrottle)
	g.OnWheel(1)
	clock.Advance(grid.DefaultWheelThrottle)
	g.OnWheel(1)
	assert.Zero(t, g.Window().Start)
	assert.Equal(t, grid.SchedulerPendingFrame, g.SchedulerState())

	assert.Equal(t, 1, host.queue.RunFrame())
	assert.Equal(t, 9, g.Window().Start)
	assert.Equal(t, uint64(1), g.Frames())

	clock.Advance(grid.DefaultWheelThrottle)
	g.OnWheel(-0.5)
	host.settle(t)
	assert.Equal(t, 6, g.Window().Start)
}

func TestWheelStepOption(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000, grid.WithWheelStep(10))

	g.OnWheel(120)
	host.settle(t)
	assert.Equal(t, 10, g.Window().Start)
}

func TestOnKey(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	steps := []struct {
		key   grid.Key
		start int
	}{
		{grid.KeyUp, 0},
		{grid.KeyDown, 1},
		{grid.KeyPageDown, 21},
		{grid.KeyEnd, 980},
		{grid.KeyDown, 980},
		{grid.KeyPageUp, 960},
		{grid.KeyHome, 0},
	}
	for _, step := range steps {
		g.OnKey(step.key)
		host.settle(t)
		assert.Equal(t, step.start, g.Window().Start, "after %s", step.key)
	}
}

func TestEscapeStopsAutoScroll(t *testing.T) {
	g, _, _ := newTestGrid(t, 1000)

	g.StartAutoScroll()
	g.OnKey(grid.KeyEscape)
	assert.False(t, g.AutoScrolling())
}

func TestSearchIsDebounced(t *testing.T) {
	g, host, clock := newTestGrid(t, 1000)

	g.OnKey(grid.KeyEnd)
	host.settle(t)

	g.OnSearch(1, "ROW-9")
	g.OnSearch(1, "row-99")
	host.queue.RunFrame()
	assert.Equal(t, 1000, g.ActiveLen(), "waiting for the quiet period")

	clock.Advance(grid.DefaultSearchDebounce)
	host.settle(t)
	assert.Equal(t, 11, g.ActiveLen())
	assert.True(t, g.Filtered())
	assert.Equal(t, "row-99", g.Query(1))
	assert.Equal(t, grid.ViewWindow{Start: 0, End: 11, VisibleCount: 20}, g.Window())
	assert.Equal(t, "row-990", g.Cell(1, 1))
	assert.Equal(t, 990, g.SourceRow(1))
	assert.Equal(t, 1000, g.TotalLen())
}

func TestSearchWithoutMatches(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	g.OnSearch(0, "nope")
	g.ApplySearch()
	host.settle(t)

	assert.Zero(t, g.ActiveLen())
	assert.True(t, g.Filtered())
	assert.Empty(t, host.surface.texts)
	assert.Equal(t, 0, g.Window().End)
}

func TestLoadDataReappliesQueries(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	g.OnSearch(1, "row-99")
	g.ApplySearch()
	host.settle(t)
	require.Equal(t, 11, g.ActiveLen())

	g.LoadData(numberedRows(100))
	assert.Equal(t, 1, g.ActiveLen())
	assert.Equal(t, "row-99", g.Cell(0, 1))

	g.ClearFilters()
	host.settle(t)
	assert.Equal(t, 100, g.ActiveLen())
	assert.False(t, g.Filtered())
	assert.Empty(t, g.Query(1))
}

func TestLoadDataResetsWindow(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	g.ScrollTo(500)
	host.settle(t)
	assert.Equal(t, 500, g.Window().Start)

	g.ScrollTo(600)
	g.LoadData(numberedRows(50))
	host.settle(t)
	assert.Equal(t, grid.ViewWindow{Start: 0, End: 20, VisibleCount: 20}, g.Window())
}

func TestLoadValues(t *testing.T) {
	g, _, _ := newTestGrid(t, 0)

	g.LoadValues([][]any{{1, nil}, {2.5, "x", true}})
	assert.Equal(t, 2, g.ActiveLen())
	assert.Equal(t, "1", g.Cell(0, 0))
	assert.Equal(t, "", g.Cell(0, 1))
	assert.Equal(t, "2.5", g.Cell(1, 0))
	assert.Equal(t, "true", g.Cell(1, 2))
}

func TestLoadValuesTypedNil(t *testing.T) {
	g, _, _ := newTestGrid(t, 0)

	require.NotPanics(t, func() {
		g.LoadValues([][]any{{(*int)(nil), (*time.Time)(nil), []string(nil), 7}})
	})
	assert.Equal(t, "", g.Cell(0, 0))
	assert.Equal(t, "", g.Cell(0, 1))
	assert.Equal(t, "", g.Cell(0, 2))
	assert.Equal(t, "7", g.Cell(0, 3))
}

func TestScrollToClamps(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	g.ScrollTo(5000)
	host.settle(t)
	assert.Equal(t, 980, g.Window().Start)

	g.ScrollTo(-5)
	host.settle(t)
	assert.Zero(t, g.Window().Start)
}

func TestResizeKeepsOrClampsStart(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	g.ScrollTo(975)
	host.settle(t)

	g.Resize(200, 200)
	assert.Equal(t, grid.ViewWindow{Start: 975, End: 985, VisibleCount: 10}, g.Window())

	g.Resize(200, 800)
	assert.Equal(t, grid.ViewWindow{Start: 960, End: 1000, VisibleCount: 40}, g.Window())
	assert.InDelta(t, 800, g.Viewport().ViewHeight, 1e-9)
	assert.Len(t, host.surface.texts, 80)
}

func TestResizeAppliesPendingWindow(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	g.ScrollTo(300)
	g.Resize(400, 400)
	assert.Equal(t, 300, g.Window().Start)
	assert.Zero(t, host.queue.Pending())
}

func TestRenderReportsFlushErrors(t *testing.T) {
	g, host, _ := newTestGrid(t, 10)
	boom := errors.New("boom")
	host.surface.flushErr = boom

	assert.ErrorIs(t, g.Render(), boom)

	host.surface.flushErr = nil
	assert.NoError(t, g.Render())
}

func TestDestroy(t *testing.T) {
	g, host, _ := newTestGrid(t, 1000)

	g.StartAutoScroll()
	g.OnWheel(1)
	g.OnSearch(0, "1")
	g.OnPointerDown(5)
	g.OnPointerMove(50)

	g.Destroy()
	g.Destroy()

	assert.True(t, g.Destroyed())
	assert.Zero(t, host.queue.Pending(), "every callback cancelled")
	assert.Equal(t, 1, host.surface.released)
	assert.Equal(t, 1, host.detached)
	assert.Nil(t, host.handler)
	assert.False(t, g.AutoScrolling())
	assert.False(t, g.Dragging())

	flushes := host.surface.flushes
	g.OnWheel(1)
	g.OnKey(grid.KeyEnd)
	g.ScrollTo(10)
	g.LoadData(numberedRows(5))
	g.Resize(10, 10)
	g.StartAutoScroll()
	g.StopAutoScroll()
	g.ClearFilters()
	assert.NoError(t, g.Render())
	host.queue.RunFrame()

	assert.Equal(t, flushes, host.surface.flushes)
	assert.Zero(t, host.queue.Pending())
}

func TestLoggerReceivesLifecycle(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	g, _, _ := newTestGrid(t, 5, grid.WithLogger(log))
	g.Destroy()

	out := buf.String()
	assert.Contains(t, out, `"message":"grid created"`)
	assert.Contains(t, out, `"message":"data loaded"`)
	assert.Contains(t, out, `"message":"grid destroyed"`)
}
