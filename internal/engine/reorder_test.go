package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/bounce/internal/platform"
)

func TestReorder_MoveGrabTakesTargetSlot(t *testing.T) {
	e, host, sched := enabledWithThree(t, 0)

	host.setPointer(100, 100)
	host.subscription().GrabEnd(3, platform.GrabMove)
	assert.Empty(t, host.takePlacements(), "grab end settles before acting")

	require.Equal(t, 1, sched.runPending())

	snap := e.Snapshot()
	assert.Equal(t, []platform.WindowID{3, 1, 2}, order(snap))
	assert.Equal(t, platform.Rect{X: 0, Y: 0, Width: 618, Height: 600}, regions(snap)[3])
	assert.Len(t, host.takePlacements(), 3)
}

func TestReorder_ForwardDrag(t *testing.T) {
	e, _, _ := enabledWithThree(t, 0)

	// Inside window 3 at 618,370 382x230.
	assert.True(t, e.ReorderWindow(1, platform.Point{X: 700, Y: 500}))
	assert.Equal(t, []platform.WindowID{2, 3, 1}, order(e.Snapshot()))
}

func TestReorder_NoTargetSnapsBack(t *testing.T) {
	e, host, _ := enabledWithThree(t, 0)
	host.setGeometry(1, platform.Rect{X: 40, Y: 40, Width: 300, Height: 300})

	assert.False(t, e.ReorderWindow(1, platform.Point{X: 100, Y: 100}))

	assert.Equal(t, []platform.WindowID{1, 2, 3}, order(e.Snapshot()))
	g, ok := host.Geometry(1)
	require.True(t, ok)
	assert.Equal(t, platform.Rect{X: 0, Y: 0, Width: 618, Height: 600}, g)
}

func TestReorder_ResizeGrabRetiles(t *testing.T) {
	e, host, sched := enabledWithThree(t, 0)
	host.setGeometry(2, platform.Rect{X: 500, Y: 0, Width: 500, Height: 400})

	e.HandleEvent(GrabEnded{Window: 2, Op: platform.GrabResize})
	sched.runPending()

	placements := host.takePlacements()
	require.Len(t, placements, 3)
	g, _ := host.Geometry(2)
	assert.Equal(t, platform.Rect{X: 618, Y: 0, Width: 382, Height: 370}, g)
	assert.Equal(t, []platform.WindowID{1, 2, 3}, order(e.Snapshot()))
}

func TestReorder_OtherGrabIgnored(t *testing.T) {
	_, host, sched := enabledWithThree(t, 0)

	host.subscription().GrabEnd(2, platform.GrabOther)
	sched.runPending()

	assert.Empty(t, host.takePlacements())
}

func TestReorder_GrabOnIneligibleWindowIgnored(t *testing.T) {
	e, host, sched := enabledWithThree(t, 0)
	host.ineligible[9] = true
	host.setPointer(100, 100)

	host.subscription().GrabEnd(9, platform.GrabMove)
	host.subscription().GrabEnd(9, platform.GrabResize)
	sched.runPending()

	assert.Empty(t, host.takePlacements())
	assert.Equal(t, []platform.WindowID{1, 2, 3}, order(e.Snapshot()))
}

func TestDisable_CancelsDeferredWork(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, sched := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	host.addWindow(2)
	events := host.subscription()
	events.WindowCreated(2)
	events.GrabEnd(1, platform.GrabResize)
	require.Equal(t, 2, e.PendingTasks())

	e.Disable()

	assert.Equal(t, 0, e.PendingTasks())
	assert.Equal(t, 1, host.unsubscribed)
	assert.Equal(t, 0, sched.livePeriodic())
	assert.Nil(t, host.subscription())
	assert.Empty(t, e.Snapshot().Windows)

	assert.Equal(t, 0, sched.runPending())
	assert.Equal(t, 0, sched.tick())
	assert.Empty(t, host.takePlacements())
}

func TestDisable_StaleTaskDoesNotFireAfterReenable(t *testing.T) {
	host := newFakeHost(area1000, 1)
	sched := &manualScheduler{}
	opts := DefaultOptions()
	opts.Padding = 0
	opts.Scheduler = sched
	e := New(host, opts)
	e.Enable()

	host.addWindow(2)
	e.HandleEvent(WindowCreated{Window: 2})

	// Capture the deferred insert before Disable stops it, then run it
	// against a re-enabled engine.
	sched.mu.Lock()
	stale := sched.pending[0]
	sched.mu.Unlock()

	e.Disable()
	e.Enable()
	host.takePlacements()

	stale.fn()

	assert.Empty(t, host.takePlacements())
	assert.Equal(t, []platform.WindowID{1, 2}, order(e.Snapshot()))
}
