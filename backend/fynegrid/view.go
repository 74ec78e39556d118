package fynegrid

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/jonboulle/clockwork"

	"github.com/go-theft-auto/grid"
)

// FrameInterval is the display frame period of a View.
const FrameInterval = 16 * time.Millisecond

// View is a Fyne widget that is also the grid.Container of a grid. Frame
// callbacks run on the Fyne thread, driven by a ticker started with Run.
type View struct {
	widget.BaseWidget

	surface *Surface
	queue   *grid.FrameQueue
	handler grid.InputHandler

	size     fyne.Size
	onResize func(width, height float64)
	dragging bool
}

var (
	_ fyne.Widget          = (*View)(nil)
	_ fyne.Scrollable      = (*View)(nil)
	_ fyne.Draggable       = (*View)(nil)
	_ fyne.Focusable       = (*View)(nil)
	_ desktop.Mouseable    = (*View)(nil)
	_ grid.Container       = (*View)(nil)
	_ grid.IndicatorDrawer = (*Surface)(nil)
)

// NewView creates a widget drawing with style s.
func NewView(s grid.Style) *View {
	v := &View{
		surface: NewSurface(s),
		queue:   grid.NewFrameQueue(),
	}
	v.surface.onFlush = v.Refresh
	v.ExtendBaseWidget(v)
	return v
}

// Surface implements grid.Container.
func (v *View) Surface() grid.Surface { return v.surface }

// FrameHost implements grid.Container.
func (v *View) FrameHost() grid.FrameHost { return v.queue }

// Attach implements grid.Container.
func (v *View) Attach(h grid.InputHandler) func() {
	v.handler = h
	return func() {
		v.handler = nil
		v.dragging = false
	}
}

// Input returns the attached handler, or nil once detached.
func (v *View) Input() grid.InputHandler { return v.handler }

// OnResize registers fn to run when the widget is laid out at a new size,
// typically forwarding to Grid.Resize.
func (v *View) OnResize(fn func(width, height float64)) {
	v.onResize = fn
}

// RunFrame runs one display frame. It must be called on the Fyne thread.
func (v *View) RunFrame() int { return v.queue.RunFrame() }

// Start runs frames from clock on a new goroutine. The returned function
// stops the ticker and returns once no further frame will be queued; call
// it before destroying the grid.
func (v *View) Start(clock clockwork.Clock) (stop func()) {
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Run(clock, quit)
	}()
	return func() {
		close(quit)
		<-done
	}
}

// Run drives frames from clock until stop is closed.
func (v *View) Run(clock clockwork.Clock, stop <-chan struct{}) {
	t := clock.NewTicker(FrameInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.Chan():
			fyne.Do(func() { v.RunFrame() })
		}
	}
}

// CreateRenderer implements fyne.Widget.
func (v *View) CreateRenderer() fyne.WidgetRenderer {
	return &viewRenderer{view: v}
}

// MinSize implements fyne.CanvasObject.
func (v *View) MinSize() fyne.Size {
	return fyne.NewSize(float32(v.surface.style.ScrollbarSize)*4, 40)
}

func (v *View) onTrack(x float32) bool {
	return x >= v.size.Width-float32(v.surface.style.ScrollbarSize)
}

// Scrolled implements fyne.Scrollable. Fyne reports positive DY for
// scrolling up.
func (v *View) Scrolled(e *fyne.ScrollEvent) {
	if v.handler != nil && e.Scrolled.DY != 0 {
		v.handler.OnWheel(float64(-e.Scrolled.DY))
	}
}

// MouseDown implements desktop.Mouseable.
func (v *View) MouseDown(e *desktop.MouseEvent) {
	if v.handler == nil || e.Button != desktop.MouseButtonPrimary || !v.onTrack(e.Position.X) {
		return
	}
	v.dragging = true
	v.handler.OnPointerDown(float64(e.Position.Y))
}

// MouseUp implements desktop.Mouseable.
func (v *View) MouseUp(*desktop.MouseEvent) {
	v.endDrag()
}

// Dragged implements fyne.Draggable.
func (v *View) Dragged(e *fyne.DragEvent) {
	if v.handler != nil && v.dragging {
		v.handler.OnPointerMove(float64(e.Position.Y))
	}
}

// DragEnd implements fyne.Draggable.
func (v *View) DragEnd() {
	v.endDrag()
}

func (v *View) endDrag() {
	if !v.dragging {
		return
	}
	v.dragging = false
	if v.handler != nil {
		v.handler.OnPointerUp()
	}
}

// FocusGained implements fyne.Focusable.
func (v *View) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (v *View) FocusLost() {}

// TypedRune implements fyne.Focusable.
func (v *View) TypedRune(rune) {}

// TypedKey implements fyne.Focusable.
func (v *View) TypedKey(e *fyne.KeyEvent) {
	if v.handler == nil {
		return
	}
	if k := fyneKeyToGridKey(e.Name); k != grid.KeyNone {
		v.handler.OnKey(k)
	}
}

func fyneKeyToGridKey(name fyne.KeyName) grid.Key {
	switch name {
	case fyne.KeyUp:
		return grid.KeyUp
	case fyne.KeyDown:
		return grid.KeyDown
	case fyne.KeyPageUp:
		return grid.KeyPageUp
	case fyne.KeyPageDown:
		return grid.KeyPageDown
	case fyne.KeyHome:
		return grid.KeyHome
	case fyne.KeyEnd:
		return grid.KeyEnd
	case fyne.KeyEscape:
		return grid.KeyEscape
	default:
		return grid.KeyNone
	}
}

// SearchBar returns one entry per column whose edits are sent to the
// view's input handler.
func SearchBar(v *View, cols []grid.Column) *fyne.Container {
	entries := make([]fyne.CanvasObject, len(cols))
	for i, col := range cols {
		e := widget.NewEntry()
		e.SetPlaceHolder(col.Label)
		e.OnChanged = func(q string) {
			if h := v.Input(); h != nil {
				h.OnSearch(i, q)
			}
		}
		entries[i] = e
	}
	return container.NewGridWithColumns(max(1, len(cols)), entries...)
}

type viewRenderer struct {
	view *View
}

func (r *viewRenderer) Layout(size fyne.Size) {
	v := r.view
	if size == v.size {
		return
	}
	v.size = size
	if v.onResize != nil {
		v.onResize(float64(size.Width), float64(size.Height))
	}
}

func (r *viewRenderer) MinSize() fyne.Size { return r.view.MinSize() }

func (r *viewRenderer) Refresh() {
	for _, o := range r.view.surface.Objects() {
		o.Refresh()
	}
}

func (r *viewRenderer) Objects() []fyne.CanvasObject { return r.view.surface.Objects() }

func (r *viewRenderer) Destroy() {}
