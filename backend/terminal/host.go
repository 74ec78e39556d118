package terminal

import "github.com/go-theft-auto/grid"

// Host is the grid.Container of a terminal Model. Frames run on Bubble Tea
// ticks, and input arrives through Update.
type Host struct {
	surface *Surface
	queue   *grid.FrameQueue
	handler grid.InputHandler
}

// NewHost creates a host drawing to s.
func NewHost(s *Surface) *Host {
	return &Host{surface: s, queue: grid.NewFrameQueue()}
}

// Surface implements grid.Container.
func (h *Host) Surface() grid.Surface {
	if h.surface == nil {
		return nil
	}
	return h.surface
}

// FrameHost implements grid.Container.
func (h *Host) FrameHost() grid.FrameHost { return h.queue }

// Attach implements grid.Container.
func (h *Host) Attach(handler grid.InputHandler) func() {
	h.handler = handler
	return func() { h.handler = nil }
}

// Input returns the attached handler, or nil once detached.
func (h *Host) Input() grid.InputHandler { return h.handler }

// RunFrame runs one display frame.
func (h *Host) RunFrame() int { return h.queue.RunFrame() }
