package raster_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/raster"
)

func TestBackingSizeFollowsPixelRatio(t *testing.T) {
	s, err := raster.New(grid.DefaultStyle(), 2)
	require.NoError(t, err)

	s.Resize(300, 200)
	w, h := s.PixelSize()
	assert.Equal(t, 600, w)
	assert.Equal(t, 400, h)
}

func TestRepeatedResizeDoesNotCompoundTransform(t *testing.T) {
	s, err := raster.New(grid.DefaultStyle(), 1.5)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		s.Resize(100, 100)
	}
	m := s.Transform()
	assert.InDelta(t, 1.5, m[0], 1e-9)
	assert.InDelta(t, 1.5, m[4], 1e-9)
	assert.Zero(t, m[1])
	assert.Zero(t, m[3])

	w, h := s.PixelSize()
	assert.Equal(t, 150, w)
	assert.Equal(t, 150, h)
}

func TestSetPixelRatioReallocates(t *testing.T) {
	s, err := raster.New(grid.DefaultStyle(), 1)
	require.NoError(t, err)
	s.Resize(100, 50)

	require.NoError(t, s.SetPixelRatio(3))
	w, h := s.PixelSize()
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)
}

func TestMeasureTextIsLogical(t *testing.T) {
	one, err := raster.New(grid.DefaultStyle(), 1)
	require.NoError(t, err)
	two, err := raster.New(grid.DefaultStyle(), 2)
	require.NoError(t, err)

	a := one.MeasureText("hello world")
	b := two.MeasureText("hello world")
	assert.Greater(t, a, 0.0)
	assert.InDelta(t, a, b, 2.0)
	assert.Zero(t, one.MeasureText(""))
}

func TestGridRendersToPNG(t *testing.T) {
	style := grid.DefaultStyle()
	s, err := raster.New(style, 2)
	require.NoError(t, err)
	host := raster.NewHeadless(s)

	cols := grid.ColumnsFromHeader([]string{"a", "b"}, 0)
	g, err := grid.New(host, cols, grid.ViewportConfig{
		CellHeight: 20,
		CellWidth:  80,
		ViewHeight: 100,
		Padding:    8,
	}, grid.WithStyle(style))
	require.NoError(t, err)
	defer g.Destroy()

	g.LoadData(grid.Dataset{{"x", "y"}, {"a much longer cell value", "z"}})
	require.GreaterOrEqual(t, s.Flushes(), 2)

	w, h := s.PixelSize()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)

	// Text pixels differ from the background somewhere in the first row.
	bg := s.Image().RGBAAt(1, 1)
	found := false
	for x := 10; x < 150 && !found; x++ {
		for y := 2; y < 38; y++ {
			if s.Image().RGBAAt(x, y) != bg {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected text pixels in the first row")

	var buf bytes.Buffer
	require.NoError(t, s.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
}

func TestHeadlessDetach(t *testing.T) {
	s, err := raster.New(grid.DefaultStyle(), 1)
	require.NoError(t, err)
	host := raster.NewHeadless(s)

	g, err := grid.New(host, grid.ColumnsFromHeader([]string{"a"}, 0), grid.ViewportConfig{CellHeight: 10, CellWidth: 50, ViewHeight: 50})
	require.NoError(t, err)
	require.NotNil(t, host.Input())

	g.Destroy()
	assert.Nil(t, host.Input())
	assert.Nil(t, s.Image())
}
