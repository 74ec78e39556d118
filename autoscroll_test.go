package grid_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
)

func TestAutoScrollRunsToLastPage(t *testing.T) {
	g, host, clock := newTestGrid(t, 1000)

	g.StartAutoScroll()
	assert.True(t, g.AutoScrolling())

	for i := 0; g.AutoScrolling(); i++ {
		require.Less(t, i, 5000, "auto-scroll never stopped")
		clock.Advance(grid.DefaultAutoScrollDelay)
		host.queue.RunFrame()
	}
	host.settle(t)

	w := g.Window()
	assert.Equal(t, 980, w.Start)
	assert.Equal(t, 1000, w.End)
}

func TestAutoScrollWaitsForDelay(t *testing.T) {
	g, host, clock := newTestGrid(t, 1000)

	g.StartAutoScroll()
	host.queue.RunFrame()
	host.queue.RunFrame()
	assert.Zero(t, g.PendingWindow().Start)

	clock.Advance(grid.DefaultAutoScrollDelay)
	host.queue.RunFrame()
	host.queue.RunFrame()
	assert.Equal(t, grid.DefaultAutoScrollStep, g.Window().Start)
}

func TestAutoScrollStop(t *testing.T) {
	g, host, clock := newTestGrid(t, 1000)

	g.StartAutoScroll()
	g.StartAutoScroll()
	for i := 0; i < 3; i++ {
		clock.Advance(grid.DefaultAutoScrollDelay)
		host.queue.RunFrame()
	}
	g.StopAutoScroll()
	host.settle(t)
	stopped := g.Window().Start
	assert.Positive(t, stopped)

	clock.Advance(time.Second)
	host.queue.RunFrame()
	assert.Equal(t, stopped, g.Window().Start)
	assert.False(t, g.AutoScrolling())
	g.StopAutoScroll()
}

func TestAutoScrollerGenerationGuard(t *testing.T) {
	q := grid.NewFrameQueue()
	clock := clockwork.NewFakeClock()
	steps := 0
	a := grid.NewAutoScroller(noCancelHost{q}, clock, 1, 0,
		func(int) { steps++ },
		func() bool { return true })

	a.Start()
	a.Stop()
	a.Start()
	q.RunFrame()
	assert.Equal(t, 1, steps, "stale callback from the first run is ignored")
	assert.Equal(t, grid.AutoScrollRunning, a.State())
	a.Stop()
}

// noCancelHost ignores cancellations, like a host whose frame already fired.
type noCancelHost struct{ *grid.FrameQueue }

func (noCancelHost) CancelFrame(grid.FrameHandle) {}
