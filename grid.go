package grid

import (
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

var (
	// ErrNoContainer is returned by New when no container, surface or frame
	// host is available.
	ErrNoContainer = errors.New("grid: no container")
	// ErrInvalidConfig is returned by New for unusable viewport geometry.
	ErrInvalidConfig = errors.New("grid: invalid viewport config")
)

// ViewportConfig is the fixed geometry of a grid, in logical units.
type ViewportConfig struct {
	CellHeight float64 // Row height
	CellWidth  float64 // Default column width
	ViewHeight float64 // Viewport height, also the scrollbar track height
	ViewWidth  float64 // Viewport width (0 = sum of column widths)
	Padding    float64 // Horizontal cell padding, split evenly left and right
}

// Validate reports whether the geometry is usable.
func (c ViewportConfig) Validate() error {
	switch {
	case c.CellHeight <= 0:
		return fmt.Errorf("%w: cell height %v", ErrInvalidConfig, c.CellHeight)
	case c.CellWidth <= 0:
		return fmt.Errorf("%w: cell width %v", ErrInvalidConfig, c.CellWidth)
	case c.ViewHeight < 0:
		return fmt.Errorf("%w: view height %v", ErrInvalidConfig, c.ViewHeight)
	case c.ViewWidth < 0:
		return fmt.Errorf("%w: view width %v", ErrInvalidConfig, c.ViewWidth)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding %v", ErrInvalidConfig, c.Padding)
	}
	return nil
}

// VisibleCount returns the number of row slots in the viewport.
func (c ViewportConfig) VisibleCount() int {
	return VisibleCountFor(c.ViewHeight, c.CellHeight)
}

// ColumnWidth returns the width of col, defaulting to CellWidth.
func (c ViewportConfig) ColumnWidth(col Column) float64 {
	if col.Width > 0 {
		return col.Width
	}
	return c.CellWidth
}

// Grid is a virtualized table engine. It owns the view window, the filter
// and every pending callback; all methods must be called from the
// container's UI thread.
//
// Usage:
//
//	g, err := grid.New(container, cols, grid.ViewportConfig{CellHeight: 20, CellWidth: 120, ViewHeight: 400})
//	if err != nil {
//	    return err
//	}
//	defer g.Destroy()
//	g.LoadData(rows)
type Grid struct {
	log       zerolog.Logger
	clock     clockwork.Clock
	style     Style
	timing    Timing
	wheelStep int
	autoStep  int
	minThumb  float64

	surface Surface
	host    FrameHost
	detach  func()

	cols []Column
	cfg  ViewportConfig

	data   Dataset
	active ActiveDataset
	view   ViewWindow
	drag   DragState

	scroll   *ScrollController
	sched    *FrameScheduler
	wheel    *Throttle
	dragMove *Debouncer
	search   *Debouncer
	auto     *AutoScroller
	bar      *ScrollbarSync
	filter   *SearchFilter
	pipeline *RenderPipeline

	destroyed bool
}

// New creates a grid inside container c and draws the empty grid.
func New(c Container, cols []Column, cfg ViewportConfig, opts ...Option) (*Grid, error) {
	if c == nil {
		return nil, ErrNoContainer
	}
	surface, host := c.Surface(), c.FrameHost()
	if surface == nil || host == nil {
		return nil, ErrNoContainer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		log:       zerolog.Nop(),
		clock:     clockwork.NewRealClock(),
		style:     DefaultStyle(),
		timing:    DefaultTiming(),
		wheelStep: DefaultWheelStep,
		autoStep:  DefaultAutoScrollStep,
		minThumb:  DefaultMinThumb,
		surface:   surface,
		host:      host,
		cols:      append([]Column(nil), cols...),
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.ViewWidth == 0 {
		for _, col := range g.cols {
			g.cfg.ViewWidth += g.cfg.ColumnWidth(col)
		}
	}

	g.view = NewViewWindow(g.cfg.VisibleCount(), 0)
	g.scroll = NewScrollController(g.wheelStep)
	g.sched = NewFrameScheduler(host, g.applyFrame)
	g.wheel = NewThrottle(g.clock, g.timing.WheelThrottle)
	g.dragMove = NewDebouncer(host, g.clock, g.timing.DragDebounce)
	g.search = NewDebouncer(host, g.clock, g.timing.SearchDebounce)
	g.auto = NewAutoScroller(host, g.clock, g.autoStep, g.timing.AutoScrollDelay, g.autoAdvance, g.canAdvance)
	g.bar = NewScrollbarSync(g.minThumb)
	g.filter = NewSearchFilter()
	g.pipeline = NewRenderPipeline(surface)

	surface.Resize(g.cfg.ViewWidth, g.cfg.ViewHeight)
	g.detach = c.Attach(g)

	g.log.Debug().
		Int("columns", len(g.cols)).
		Int("visible", g.view.VisibleCount).
		Float64("cell_height", g.cfg.CellHeight).
		Msg("grid created")

	g.renderNow()
	return g, nil
}

// LoadData replaces the dataset. Current search queries are re-applied to
// the new rows and the window returns to the top.
func (g *Grid) LoadData(rows Dataset) {
	if g.destroyed {
		return
	}
	g.sched.Cancel()
	g.dragMove.Cancel()
	g.drag.Reset()

	g.data = rows
	g.filter.Invalidate()
	g.active = g.filter.Apply(g.data)
	g.view.ResetForData(g.active.Len())

	g.log.Debug().
		Int("rows", g.data.Len()).
		Int("active", g.active.Len()).
		Msg("data loaded")

	g.renderNow()
}

// LoadValues converts rows with DatasetFromValues and loads them.
func (g *Grid) LoadValues(rows [][]any) {
	g.LoadData(DatasetFromValues(rows))
}

// Render draws the current state immediately. It is safe to call
// repeatedly.
func (g *Grid) Render() error {
	if g.destroyed {
		return nil
	}
	return g.draw()
}

// Resize applies a new viewport size, keeping the window start when it is
// still valid, and redraws both layers.
func (g *Grid) Resize(width, height float64) {
	if g.destroyed {
		return
	}
	g.cfg.ViewWidth = max(0, width)
	g.cfg.ViewHeight = max(0, height)

	w := g.sched.Latest(g.view)
	g.sched.Cancel()
	w.ResetForResize(g.cfg.VisibleCount(), g.active.Len())
	g.view = w

	g.surface.Resize(g.cfg.ViewWidth, g.cfg.ViewHeight)
	g.pipeline.Invalidate()

	g.log.Debug().
		Float64("width", g.cfg.ViewWidth).
		Float64("height", g.cfg.ViewHeight).
		Int("visible", g.view.VisibleCount).
		Msg("grid resized")

	g.renderNow()
}

// StartAutoScroll starts advancing the window until it reaches the last
// page. It is a no-op if auto-scroll is already running.
func (g *Grid) StartAutoScroll() {
	if g.destroyed || g.auto.Running() {
		return
	}
	g.auto.Start()
	g.log.Debug().Int("start", g.view.Start).Msg("auto-scroll started")
}

// StopAutoScroll stops auto-scroll. It is always safe to call.
func (g *Grid) StopAutoScroll() {
	if !g.auto.Running() {
		g.auto.Stop()
		return
	}
	g.auto.Stop()
	g.log.Debug().Int("start", g.view.Start).Msg("auto-scroll stopped")
}

// Destroy cancels every pending callback, detaches input and releases the
// surface. The grid ignores all calls afterwards.
func (g *Grid) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true

	g.sched.Cancel()
	g.auto.Stop()
	g.dragMove.Cancel()
	g.search.Cancel()
	g.wheel.Reset()
	g.drag.Reset()

	if g.detach != nil {
		g.detach()
		g.detach = nil
	}
	g.surface.Release()

	g.log.Debug().Uint64("frames", g.sched.Frames()).Msg("grid destroyed")
}

// ScrollTo moves the window to start at row, clamped into range. The move
// is applied on the next frame.
func (g *Grid) ScrollTo(row int) {
	if g.destroyed {
		return
	}
	if next, ok := g.scroll.ScrollTo(g.sched.Latest(g.view), g.active.Len(), row); ok {
		g.sched.Request(next)
	}
}

// ApplySearch applies pending search edits without waiting for the
// debounce delay.
func (g *Grid) ApplySearch() {
	if g.destroyed {
		return
	}
	g.search.Flush()
}

// ClearFilters empties every search query and shows the whole dataset.
func (g *Grid) ClearFilters() {
	if g.destroyed {
		return
	}
	g.search.Cancel()
	g.filter.Clear()
	g.applyFilter()
}

// OnWheel implements InputHandler. Positive deltaY scrolls down.
func (g *Grid) OnWheel(deltaY float64) {
	if g.destroyed || deltaY == 0 || !g.wheel.Allow() {
		return
	}
	if next, ok := g.scroll.Wheel(g.sched.Latest(g.view), g.active.Len(), deltaY); ok {
		g.sched.Request(next)
	}
}

// OnPointerDown implements InputHandler. A press on the thumb starts a drag
// holding the grab point; a press elsewhere on the track centers the thumb
// under the pointer and starts a drag from there. The thumb is hit-tested
// where the next frame will draw it.
func (g *Grid) OnPointerDown(y float64) {
	if g.destroyed {
		return
	}
	geom := g.geometryFor(g.sched.Latest(g.view))
	if geom.Usable() <= 0 || g.active.Len() <= g.view.VisibleCount {
		return
	}

	g.drag.Active = true
	g.drag.LastY = y
	if y >= geom.ThumbTop && y < geom.ThumbTop+geom.ThumbHeight {
		g.drag.Offset = y - geom.ThumbTop
		g.sched.Request(g.sched.Latest(g.view))
		return
	}
	g.drag.Offset = geom.ThumbHeight / 2
	g.dragTo(y)
}

// OnPointerMove implements InputHandler.
func (g *Grid) OnPointerMove(y float64) {
	if g.destroyed || !g.drag.Active {
		return
	}
	g.drag.LastY = y
	g.dragMove.Trigger(func() { g.dragTo(g.drag.LastY) })
}

// OnPointerUp implements InputHandler. A pending drag move is applied
// before the drag ends.
func (g *Grid) OnPointerUp() {
	if g.destroyed || !g.drag.Active {
		return
	}
	g.dragMove.Flush()
	g.drag.Reset()
	g.sched.Request(g.sched.Latest(g.view))
}

// OnSearch implements InputHandler.
func (g *Grid) OnSearch(col int, query string) {
	if g.destroyed {
		return
	}
	if !g.filter.Set(col, query) && !g.search.Pending() {
		return
	}
	g.search.Trigger(g.applyFilter)
}

// OnKey implements InputHandler.
func (g *Grid) OnKey(k Key) {
	if g.destroyed {
		return
	}
	base, total := g.sched.Latest(g.view), g.active.Len()

	var next ViewWindow
	var ok bool
	switch k {
	case KeyUp:
		next, ok = g.scroll.ScrollBy(base, total, -1, 1)
	case KeyDown:
		next, ok = g.scroll.ScrollBy(base, total, 1, 1)
	case KeyPageUp:
		next, ok = g.scroll.PageBy(base, total, -1)
	case KeyPageDown:
		next, ok = g.scroll.PageBy(base, total, 1)
	case KeyHome:
		next, ok = g.scroll.ScrollTo(base, total, 0)
	case KeyEnd:
		next, ok = g.scroll.ScrollTo(base, total, total)
	case KeyEscape:
		g.StopAutoScroll()
	}
	if ok {
		g.sched.Request(next)
	}
}

// Window returns the current window.
func (g *Grid) Window() ViewWindow { return g.view }

// PendingWindow returns the window the next frame will draw.
func (g *Grid) PendingWindow() ViewWindow { return g.sched.Latest(g.view) }

// Scrollbar returns the indicator geometry last drawn.
func (g *Grid) Scrollbar() ScrollbarGeometry { return g.bar.Geometry() }

// SchedulerState returns the frame scheduler state.
func (g *Grid) SchedulerState() SchedulerState { return g.sched.State() }

// Frames returns the number of coalesced frames applied.
func (g *Grid) Frames() uint64 { return g.sched.Frames() }

// ActiveLen returns the number of rows in the active dataset.
func (g *Grid) ActiveLen() int { return g.active.Len() }

// TotalLen returns the number of rows in the source dataset.
func (g *Grid) TotalLen() int { return g.data.Len() }

// Filtered reports whether a search query narrows the dataset.
func (g *Grid) Filtered() bool { return g.active.Filtered() }

// Query returns the search query of column col.
func (g *Grid) Query(col int) string { return g.filter.Query(col) }

// Columns returns a copy of the column definitions.
func (g *Grid) Columns() []Column { return append([]Column(nil), g.cols...) }

// Viewport returns the current viewport geometry.
func (g *Grid) Viewport() ViewportConfig { return g.cfg }

// Style returns the grid style.
func (g *Grid) Style() Style { return g.style }

// AutoScrolling reports whether auto-scroll is running.
func (g *Grid) AutoScrolling() bool { return g.auto.Running() }

// Dragging reports whether an indicator drag is in progress.
func (g *Grid) Dragging() bool { return g.drag.Active }

// Cell returns the text of cell (row, col) of the active dataset.
func (g *Grid) Cell(row, col int) string { return g.active.Cell(row, col) }

// SourceRow maps an active row to its source dataset row, or -1.
func (g *Grid) SourceRow(row int) int { return g.active.SourceRow(row) }

// Destroyed reports whether Destroy was called.
func (g *Grid) Destroyed() bool { return g.destroyed }

func (g *Grid) applyFrame(w ViewWindow) {
	g.view = w
	g.renderNow()
}

func (g *Grid) geometryFor(w ViewWindow) ScrollbarGeometry {
	return g.bar.Compute(w, g.active.Len(), g.cfg.CellHeight, g.cfg.ViewHeight, g.cfg.ViewHeight)
}

func (g *Grid) draw() error {
	total := g.active.Len()
	geom := g.bar.Update(g.view, total, g.cfg.CellHeight, g.cfg.ViewHeight, g.cfg.ViewHeight)
	return g.pipeline.Draw(Frame{
		Window:    g.view,
		Data:      g.active,
		Columns:   g.cols,
		Viewport:  g.cfg,
		Scrollbar: geom,
		Dragging:  g.drag.Active,
	})
}

func (g *Grid) renderNow() {
	if err := g.draw(); err != nil {
		g.log.Error().Err(err).Msg("render failed")
	}
}

func (g *Grid) dragTo(y float64) {
	total := g.active.Len()
	geom := g.bar.Geometry()
	start := StartForThumb(y, g.drag.Offset, total, g.view.VisibleCount, geom.TrackHeight, geom.ThumbHeight)
	if next, ok := g.scroll.ScrollTo(g.sched.Latest(g.view), total, start); ok {
		g.sched.Request(next)
	}
}

func (g *Grid) applyFilter() {
	began := g.clock.Now()
	g.active = g.filter.Apply(g.data)
	g.view.ResetForData(g.active.Len())
	g.sched.Request(g.view)

	g.log.Debug().
		Int("rows", g.data.Len()).
		Int("matches", g.active.Len()).
		Dur("took", g.clock.Now().Sub(began)).
		Msg("filter applied")
}

func (g *Grid) autoAdvance(step int) {
	if next, ok := g.scroll.ScrollBy(g.sched.Latest(g.view), g.active.Len(), 1, step); ok {
		g.sched.Request(next)
	}
}

func (g *Grid) canAdvance() bool {
	w := g.sched.Latest(g.view)
	return w.Start < w.MaxStart(g.active.Len())
}
