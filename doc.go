/*
Package grid renders very large tables inside a fixed viewport by drawing
only the rows that are currently visible.

# Overview

A Grid keeps a ViewWindow, the contiguous range of active rows on screen.
Input never draws directly: the wheel, the scrollbar indicator, the keyboard
and auto-scroll all compute a candidate window and hand it to a
FrameScheduler, which applies the last candidate once per display frame.
Rendering is split into a structure layer (the cell lattice, redrawn only on
resize) and a content layer (cell text, redrawn every frame).

Backends provide a Container: a Surface to draw on, a FrameHost that runs
callbacks once per display frame, and an input source. See backend/opengl,
backend/terminal, backend/raster and backend/fynegrid.

# Quick Start

	queue := grid.NewFrameQueue()
	g, err := grid.New(container, cols, grid.ViewportConfig{
	    CellHeight: 20,
	    CellWidth:  120,
	    ViewHeight: 400,
	    Padding:    8,
	})
	if err != nil {
	    return err
	}
	defer g.Destroy()

	g.LoadData(rows)
	for running {
	    pollInput()      // forwards events to g via InputHandler
	    queue.RunFrame() // applies coalesced updates and redraws
	}

# Input

	Mouse Wheel      Scroll by the wheel step (3 rows), throttled to one event per 16ms
	Drag Indicator   Map the thumb position to a window, debounced 5ms
	Click Track      Center the thumb under the pointer and start a drag
	Up / Down        Scroll one row
	PgUp / PgDn      Scroll one page
	Home / End       Jump to the first or last page
	Esc              Stop auto-scroll

Search edits are debounced 300ms. Each column query is a case-insensitive
substring match; a row is active when it matches every non-empty query.

# Threading

A Grid is not safe for concurrent use. Every method, and every frame
callback, runs on the container's UI thread.
*/
package grid
