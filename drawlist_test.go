package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
)

func TestAddRect(t *testing.T) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, grid.ColorWhite)
	dl.AddRect(0, 0, 10, 10, grid.ColorTransparent)
	dl.Finalize()

	assert.Len(t, dl.VtxBuffer, 4)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, dl.IdxBuffer)
	require.Len(t, dl.CmdBuffer, 1)
	assert.Equal(t, uint32(6), dl.CmdBuffer[0].ElemCount)
}

func TestClipSplitsCommands(t *testing.T) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 1, 1, grid.ColorWhite)
	dl.PushClipRect(0, 0, 50, 50)
	dl.AddRect(0, 0, 1, 1, grid.ColorWhite)
	dl.AddRect(2, 2, 1, 1, grid.ColorWhite)
	dl.PopClipRect()
	dl.Finalize()
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 2)
	assert.Equal(t, uint32(6), dl.CmdBuffer[0].ElemCount)
	assert.Equal(t, uint32(12), dl.CmdBuffer[1].ElemCount)
	assert.Equal(t, [4]float32{0, 0, 50, 50}, dl.CmdBuffer[1].ClipRect)
	assert.Equal(t, uint32(4), dl.CmdBuffer[1].VertexOffset)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, dl.IdxBuffer[6:])
}

func TestAppendOffsetsCommands(t *testing.T) {
	base := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(base)
	overlay := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(overlay)

	base.AddRect(0, 0, 1, 1, grid.ColorWhite)
	overlay.SetTexture(7)
	overlay.AddText(0, 0, "ab", grid.ColorWhite, 1, 8, 16)
	overlay.Finalize()

	base.Append(overlay)
	base.Finalize()

	require.Len(t, base.CmdBuffer, 2)
	assert.Equal(t, uint32(4), base.CmdBuffer[1].VertexOffset)
	assert.Equal(t, uint32(6), base.CmdBuffer[1].IndexOffset)
	assert.Equal(t, uint32(12), base.CmdBuffer[1].ElemCount)
	assert.Equal(t, uint32(7), base.CmdBuffer[1].TextureID)
	assert.Len(t, base.VtxBuffer, 12)
}

func TestAddLineAndOutline(t *testing.T) {
	dl := grid.AcquireDrawList()
	defer grid.ReleaseDrawList(dl)

	dl.AddLine(0, 0, 10, 0, grid.ColorGray, 2)
	require.Len(t, dl.VtxBuffer, 4)
	assert.Equal(t, [2]float32{0, 1}, dl.VtxBuffer[0].Pos)
	assert.Equal(t, [2]float32{0, -1}, dl.VtxBuffer[3].Pos)

	dl.AddRectOutline(0, 0, 10, 10, grid.ColorGray, 1)
	assert.Len(t, dl.VtxBuffer, 20)
}

func TestRGBA(t *testing.T) {
	c := grid.RGBA(0x11, 0x22, 0x33, 0x44)
	assert.Equal(t, uint32(0x44332211), c)

	r, g, b, a := grid.UnpackRGBA(c)
	assert.Equal(t, [4]uint8{0x11, 0x22, 0x33, 0x44}, [4]uint8{r, g, b, a})
}
