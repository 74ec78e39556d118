package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
)

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	q := grid.NewFrameQueue()
	var order []string

	q.RequestFrame(func() {
		order = append(order, "a")
		q.RequestFrame(func() { order = append(order, "c") })
	})
	q.RequestFrame(func() { order = append(order, "b") })

	assert.Equal(t, 2, q.RunFrame())
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, q.Pending())

	assert.Equal(t, 1, q.RunFrame())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, q.RunFrame())
}

func TestFrameQueueCancel(t *testing.T) {
	q := grid.NewFrameQueue()
	fired := false
	h := q.RequestFrame(func() { fired = true })
	assert.NotZero(t, h)

	q.CancelFrame(h)
	q.CancelFrame(h)
	q.RunFrame()
	assert.False(t, fired)
}

func TestFrameSchedulerCoalesces(t *testing.T) {
	q := grid.NewFrameQueue()
	var applied []grid.ViewWindow
	s := grid.NewFrameScheduler(q, func(w grid.ViewWindow) { applied = append(applied, w) })

	for start := 1; start <= 5; start++ {
		s.Request(grid.ViewWindow{Start: start, End: start + 10, VisibleCount: 10})
	}
	assert.Equal(t, grid.SchedulerPendingFrame, s.State())
	assert.Equal(t, 1, q.Pending(), "one frame callback per burst")
	assert.Equal(t, 5, s.Latest(grid.ViewWindow{}).Start)

	q.RunFrame()
	require.Len(t, applied, 1)
	assert.Equal(t, 5, applied[0].Start, "last request wins")
	assert.Equal(t, grid.SchedulerIdle, s.State())
	assert.Equal(t, uint64(1), s.Frames())

	current := grid.ViewWindow{Start: 9}
	assert.Equal(t, current, s.Latest(current))
}

func TestFrameSchedulerCancel(t *testing.T) {
	q := grid.NewFrameQueue()
	calls := 0
	s := grid.NewFrameScheduler(q, func(grid.ViewWindow) { calls++ })

	s.Request(grid.ViewWindow{Start: 3})
	s.Cancel()
	q.RunFrame()

	assert.Zero(t, calls)
	assert.Equal(t, grid.SchedulerIdle, s.State())
	assert.Equal(t, "idle", s.State().String())
}
