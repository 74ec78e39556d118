package raster

import "github.com/go-theft-auto/grid"

// Headless is a grid.Container without a window. Frames run when RunFrame
// is called, and input is injected through Input.
type Headless struct {
	surface *Surface
	queue   *grid.FrameQueue
	handler grid.InputHandler
}

// NewHeadless creates a container drawing to s.
func NewHeadless(s *Surface) *Headless {
	return &Headless{surface: s, queue: grid.NewFrameQueue()}
}

// Surface implements grid.Container.
func (h *Headless) Surface() grid.Surface {
	if h.surface == nil {
		return nil
	}
	return h.surface
}

// FrameHost implements grid.Container.
func (h *Headless) FrameHost() grid.FrameHost { return h.queue }

// Attach implements grid.Container.
func (h *Headless) Attach(handler grid.InputHandler) func() {
	h.handler = handler
	return func() { h.handler = nil }
}

// Input returns the attached handler, or nil once detached.
func (h *Headless) Input() grid.InputHandler { return h.handler }

// RunFrame runs one display frame and returns the callbacks fired.
func (h *Headless) RunFrame() int { return h.queue.RunFrame() }

// Settle runs frames until no callback is pending or limit frames ran.
func (h *Headless) Settle(limit int) int {
	n := 0
	for n < limit && h.queue.Pending() > 0 {
		h.queue.RunFrame()
		n++
	}
	return n
}
