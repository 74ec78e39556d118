package grid

// Frame is everything a render pass reads.
type Frame struct {
	Window    ViewWindow
	Data      ActiveDataset
	Columns   []Column
	Viewport  ViewportConfig
	Scrollbar ScrollbarGeometry
	Dragging  bool
}

// Lattice returns the structure layer of the frame.
func (f Frame) Lattice() Lattice {
	widths := make([]float64, len(f.Columns))
	for i, c := range f.Columns {
		widths[i] = f.Viewport.ColumnWidth(c)
	}
	return Lattice{
		Rows:         f.Window.VisibleCount,
		CellHeight:   f.Viewport.CellHeight,
		ColumnWidths: widths,
		Width:        f.Viewport.ViewWidth,
		Height:       f.Viewport.ViewHeight,
	}
}

// RenderPipeline draws frames in two layers. The structure layer is drawn
// only when invalidated; the content layer is redrawn on every pass.
type RenderPipeline struct {
	surface        Surface
	structureDirty bool
	lattice        Lattice
	passes         uint64
	structures     uint64
}

// NewRenderPipeline creates a pipeline drawing to s. The first pass draws
// the structure layer.
func NewRenderPipeline(s Surface) *RenderPipeline {
	return &RenderPipeline{surface: s, structureDirty: true}
}

// Invalidate marks the structure layer for redraw on the next pass.
func (p *RenderPipeline) Invalidate() {
	p.structureDirty = true
}

// Passes returns the number of completed render passes.
func (p *RenderPipeline) Passes() uint64 { return p.passes }

// StructurePasses returns how many times the structure layer was drawn.
func (p *RenderPipeline) StructurePasses() uint64 { return p.structures }

// Draw renders f and presents it.
func (p *RenderPipeline) Draw(f Frame) error {
	if p.structureDirty {
		p.lattice = f.Lattice()
		p.surface.DrawStructure(p.lattice)
		p.structureDirty = false
		p.structures++
	}

	p.surface.Compose()

	pad := f.Viewport.Padding
	half := f.Viewport.CellHeight / 2
	for row := f.Window.Start; row < f.Window.End; row++ {
		y := p.lattice.RowY(row-f.Window.Start) + half
		x := 0.0
		for col, c := range f.Columns {
			width := f.Viewport.ColumnWidth(c)
			if text := Truncate(p.surface, f.Data.Cell(row, col), width, pad); text != "" {
				p.surface.DrawText(x+pad/2, y, text)
			}
			x += width
		}
	}

	if ind, ok := p.surface.(IndicatorDrawer); ok {
		ind.DrawIndicator(f.Scrollbar, f.Dragging)
	}

	p.passes++
	return p.surface.Flush()
}
