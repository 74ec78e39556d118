package opengl

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
)

// Window is a grid.Container for a GLFW window with a current OpenGL 4.1
// context. GLFW callbacks and RunFrame must be called from the main thread.
type Window struct {
	window  *glfw.Window
	surface *Surface
	queue   *grid.FrameQueue
	style   grid.Style

	handler  grid.InputHandler
	pressed  bool
	onResize func(width, height float64)
}

// NewWindow creates the renderer and surface for window.
func NewWindow(window *glfw.Window, style grid.Style) (*Window, error) {
	w, h := window.GetSize()
	fbw, fbh := window.GetFramebufferSize()
	r, err := NewRenderer(float64(w), float64(h), fbw, fbh)
	if err != nil {
		return nil, fmt.Errorf("gl renderer: %w", err)
	}
	return &Window{
		window:  window,
		surface: NewSurface(r, style),
		queue:   grid.NewFrameQueue(),
		style:   style,
	}, nil
}

// Surface implements grid.Container.
func (w *Window) Surface() grid.Surface { return w.surface }

// FrameHost implements grid.Container.
func (w *Window) FrameHost() grid.FrameHost { return w.queue }

// OnResize registers fn to run when the window changes size, typically
// forwarding to Grid.Resize.
func (w *Window) OnResize(fn func(width, height float64)) {
	w.onResize = fn
}

// Attach implements grid.Container.
func (w *Window) Attach(h grid.InputHandler) func() {
	w.handler = h
	w.window.SetKeyCallback(w.keyCallback)
	w.window.SetMouseButtonCallback(w.mouseButtonCallback)
	w.window.SetScrollCallback(w.scrollCallback)
	w.window.SetCursorPosCallback(w.cursorPosCallback)
	w.window.SetSizeCallback(w.sizeCallback)
	return func() {
		w.window.SetKeyCallback(nil)
		w.window.SetMouseButtonCallback(nil)
		w.window.SetScrollCallback(nil)
		w.window.SetCursorPosCallback(nil)
		w.window.SetSizeCallback(nil)
		w.handler = nil
		w.pressed = false
	}
}

// RunFrame applies pending grid updates and presents the current frame.
// Call it once per iteration of the main loop, after glfw.PollEvents and
// before SwapBuffers.
func (w *Window) RunFrame() error {
	w.queue.RunFrame()
	return w.surface.Present()
}

// onTrack reports whether x lies on the scrollbar track.
func (w *Window) onTrack(x float64) bool {
	width, _ := w.window.GetSize()
	return x >= float64(width)-w.style.ScrollbarSize
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if w.handler == nil || action == glfw.Release {
		return
	}
	if k := glfwKeyToGridKey(key); k != grid.KeyNone {
		w.handler.OnKey(k)
	}
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if w.handler == nil || button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		x, y := w.window.GetCursorPos()
		if w.onTrack(x) {
			w.pressed = true
			w.handler.OnPointerDown(y)
		}
	case glfw.Release:
		if w.pressed {
			w.pressed = false
			w.handler.OnPointerUp()
		}
	}
}

func (w *Window) cursorPosCallback(_ *glfw.Window, _, ypos float64) {
	if w.handler != nil && w.pressed {
		w.handler.OnPointerMove(ypos)
	}
}

// GLFW reports positive yoff for scrolling up.
func (w *Window) scrollCallback(_ *glfw.Window, _, yoff float64) {
	if w.handler != nil {
		w.handler.OnWheel(-yoff)
	}
}

func (w *Window) sizeCallback(_ *glfw.Window, width, height int) {
	fbw, fbh := w.window.GetFramebufferSize()
	w.surface.renderer.Resize(float64(width), float64(height), fbw, fbh)
	if w.onResize != nil {
		w.onResize(float64(width), float64(height))
	}
}

// glfwKeyToGridKey maps GLFW keys to grid navigation keys.
func glfwKeyToGridKey(key glfw.Key) grid.Key {
	switch key {
	case glfw.KeyUp:
		return grid.KeyUp
	case glfw.KeyDown:
		return grid.KeyDown
	case glfw.KeyPageUp:
		return grid.KeyPageUp
	case glfw.KeyPageDown:
		return grid.KeyPageDown
	case glfw.KeyHome:
		return grid.KeyHome
	case glfw.KeyEnd:
		return grid.KeyEnd
	case glfw.KeyEscape:
		return grid.KeyEscape
	default:
		return grid.KeyNone
	}
}
