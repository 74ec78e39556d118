package grid

// Lattice describes the structure layer: the cell borders of a full page of
// rows. It depends only on the viewport geometry and the column widths, so
// surfaces cache its rendering until the next DrawStructure.
type Lattice struct {
	Rows         int       // Row slots, the window's VisibleCount
	CellHeight   float64   // Logical row height
	ColumnWidths []float64 // Logical width of each column
	Width        float64   // Viewport width
	Height       float64   // Viewport height
}

// ColumnX returns the left edge of column i.
func (l Lattice) ColumnX(i int) float64 {
	x := 0.0
	for c := 0; c < i && c < len(l.ColumnWidths); c++ {
		x += l.ColumnWidths[c]
	}
	return x
}

// ContentWidth returns the summed column width.
func (l Lattice) ContentWidth() float64 {
	return l.ColumnX(len(l.ColumnWidths))
}

// RowY returns the top edge of row slot i.
func (l Lattice) RowY(i int) float64 {
	return float64(i) * l.CellHeight
}

// Surface is a drawing target for the grid. Coordinates are logical units
// with the origin at the top-left of the viewport; surfaces with a device
// pixel ratio scale internally.
type Surface interface {
	TextMeasurer

	// Resize sets the logical size of the surface and discards any cached
	// structure layer.
	Resize(width, height float64)
	// DrawStructure renders the lattice into the cached structure layer.
	DrawStructure(l Lattice)
	// Compose starts a content pass: it clears the content layer and lays
	// the cached structure layer underneath it.
	Compose()
	// DrawText draws text with its left edge at x, vertically centered on
	// the line y.
	DrawText(x, y float64, text string)
	// Flush presents the composed frame.
	Flush() error
	// Release frees the surface's resources. The surface is not used
	// afterwards.
	Release()
}

// IndicatorDrawer is implemented by surfaces that draw the scrollbar
// indicator themselves.
type IndicatorDrawer interface {
	DrawIndicator(g ScrollbarGeometry, dragging bool)
}

// Container hosts a grid: it supplies the drawing surface and the frame
// host, and forwards user input.
type Container interface {
	Surface() Surface
	FrameHost() FrameHost
	// Attach registers h for input events and returns a function that
	// detaches it.
	Attach(h InputHandler) (detach func())
}
