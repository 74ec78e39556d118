package grid_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/grid"
)

func TestVisibleCountFor(t *testing.T) {
	assert.Equal(t, 20, grid.VisibleCountFor(400, 20))
	assert.Equal(t, 21, grid.VisibleCountFor(401, 20))
	assert.Equal(t, 0, grid.VisibleCountFor(0, 20))
	assert.Equal(t, 0, grid.VisibleCountFor(400, 0))
}

func TestNewViewWindow(t *testing.T) {
	w := grid.NewViewWindow(20, 1000)
	assert.Equal(t, grid.ViewWindow{Start: 0, End: 20, VisibleCount: 20}, w)

	short := grid.NewViewWindow(20, 5)
	assert.Equal(t, 5, short.End)

	empty := grid.NewViewWindow(20, 0)
	assert.Equal(t, 0, empty.Len())
	assert.Zero(t, empty.MaxStart(0))
}

func TestResetForResizeClampsStart(t *testing.T) {
	c := grid.NewScrollController(3)
	w, ok := c.ScrollTo(grid.NewViewWindow(20, 100), 100, 80)
	assert.True(t, ok)
	assert.Equal(t, 80, w.Start)

	w.ResetForResize(40, 100)
	assert.Equal(t, 60, w.Start)
	assert.Equal(t, 100, w.End)

	w.ResetForResize(10, 100)
	assert.Equal(t, 60, w.Start, "start kept while valid")
	assert.Equal(t, 70, w.End)
}

func TestScrollControllerClamps(t *testing.T) {
	c := grid.NewScrollController(3)
	w := grid.NewViewWindow(20, 100)

	_, ok := c.Wheel(w, 100, -1)
	assert.False(t, ok, "already at the top")

	w, ok = c.ScrollTo(w, 100, 1_000)
	assert.True(t, ok)
	assert.Equal(t, 80, w.Start)
	assert.Equal(t, 100, w.End)

	_, ok = c.Wheel(w, 100, 5)
	assert.False(t, ok, "already at the bottom")

	w, ok = c.PageBy(w, 100, -1)
	assert.True(t, ok)
	assert.Equal(t, 60, w.Start)

	_, ok = c.ScrollBy(w, 100, 0, 3)
	assert.False(t, ok, "zero delta")
}

func TestWheelIgnoresMagnitude(t *testing.T) {
	c := grid.NewScrollController(3)
	w := grid.NewViewWindow(20, 100)

	small, _ := c.Wheel(w, 100, 0.01)
	large, _ := c.Wheel(w, 100, 500)
	assert.Equal(t, small, large)
	assert.Equal(t, 3, small.Start)
}

func TestWindowInvariantsUnderRandomScrolling(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	c := grid.NewScrollController(3)

	for _, total := range []int{0, 1, 19, 20, 21, 1000} {
		w := grid.NewViewWindow(20, total)
		for i := 0; i < 500; i++ {
			switch r.Intn(4) {
			case 0:
				w, _ = c.Wheel(w, total, r.Float64()*2-1)
			case 1:
				w, _ = c.PageBy(w, total, r.Intn(3)-1)
			case 2:
				w, _ = c.ScrollTo(w, total, r.Intn(2*total+40)-20)
			case 3:
				w, _ = c.ScrollBy(w, total, 1, r.Intn(50))
			}

			assert.GreaterOrEqual(t, w.Start, 0)
			assert.LessOrEqual(t, w.Start, w.End)
			assert.LessOrEqual(t, w.End, total)
			assert.LessOrEqual(t, w.Len(), w.VisibleCount)
			assert.LessOrEqual(t, w.Start, w.MaxStart(total))
			if total >= w.VisibleCount {
				assert.Equal(t, w.VisibleCount, w.Len(), "full page whenever data allows")
			}
		}
	}
}
