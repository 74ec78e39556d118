package terminal_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/terminal"
)

func TestMeasureTextCountsCells(t *testing.T) {
	s := terminal.NewSurface(terminal.DefaultStyle())

	assert.Equal(t, 5.0, s.MeasureText("hello"))
	assert.Equal(t, 4.0, s.MeasureText("日本"))
	assert.Zero(t, s.MeasureText(""))
}

func TestDrawTextStopsAtSeparator(t *testing.T) {
	s := terminal.NewSurface(terminal.DefaultStyle())
	s.Resize(20, 2)
	s.DrawStructure(grid.Lattice{Rows: 2, CellHeight: 1, ColumnWidths: []float64{6, 6}, Width: 20, Height: 2})
	s.Compose()

	s.DrawText(1, 0.5, "overflowing")
	s.DrawText(7, 1.5, "日本語")
	require.NoError(t, s.Flush())

	assert.Equal(t, " overf│"+strings.Repeat(" ", 5)+"│"+strings.Repeat(" ", 7), s.Line(0))
	// The third glyph would cover the separator.
	assert.Equal(t, strings.Repeat(" ", 6)+"│日本 │"+strings.Repeat(" ", 7), s.Line(1))
}

func TestIndicatorUsesLastColumn(t *testing.T) {
	s := terminal.NewSurface(terminal.DefaultStyle())
	s.Resize(4, 4)
	s.Compose()
	s.DrawIndicator(grid.ScrollbarGeometry{TrackHeight: 4, ThumbHeight: 1, ThumbTop: 2}, false)
	require.NoError(t, s.Flush())

	assert.Equal(t, "   │", s.Line(0))
	assert.Equal(t, "   ┃", s.Line(2))
	assert.NotEmpty(t, s.View())
	assert.Equal(t, 1, s.Flushes())
}

func TestReleaseClearsFrame(t *testing.T) {
	s := terminal.NewSurface(terminal.DefaultStyle())
	s.Resize(4, 1)
	s.Compose()
	require.NoError(t, s.Flush())

	s.Release()
	assert.Empty(t, s.View())
	assert.Empty(t, s.Line(0))
}
