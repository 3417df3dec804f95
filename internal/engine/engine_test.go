package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/bounce/internal/config"
	"github.com/1broseidon/bounce/internal/platform"
	"github.com/1broseidon/bounce/internal/tiling"
)

var area1000 = platform.Rect{X: 0, Y: 0, Width: 1000, Height: 600}

func TestEngine_EnableTilesEveryWindow(t *testing.T) {
	host := newFakeHost(area1000, 1, 2, 3)
	e, sched := newTestEngine(host, 0)

	e.Enable()

	assert.True(t, e.IsEnabled())
	assert.Equal(t, 1, host.subscribed)
	assert.Equal(t, 1, sched.livePeriodic())
	assert.Equal(t, []placement{
		{ID: 1, Rect: platform.Rect{X: 0, Y: 0, Width: 618, Height: 600}, Animate: true},
		{ID: 2, Rect: platform.Rect{X: 618, Y: 0, Width: 382, Height: 370}, Animate: true},
		{ID: 3, Rect: platform.Rect{X: 618, Y: 370, Width: 382, Height: 230}, Animate: true},
	}, host.takePlacements())

	snap := e.Snapshot()
	assert.True(t, snap.Enabled)
	assert.Equal(t, Mode, snap.Mode)
	assert.Equal(t, area1000, snap.WorkArea)
	assert.Equal(t, []platform.WindowID{1, 2, 3}, order(snap))
}

func TestEngine_EnableIsIdempotent(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 0)

	e.Enable()
	host.takePlacements()
	e.Enable()

	assert.Equal(t, 1, host.subscribed)
	assert.Empty(t, host.takePlacements())

	e.Disable()
	e.Disable()
	assert.Equal(t, 1, host.unsubscribed)
}

func TestEngine_IneligibleWindowsAreNotTiled(t *testing.T) {
	host := newFakeHost(area1000, 1, 2)
	host.ineligible[2] = true
	e, _ := newTestEngine(host, 0)

	e.Enable()

	assert.Equal(t, []platform.WindowID{1}, order(e.Snapshot()))
	assert.Equal(t, []placement{
		{ID: 1, Rect: area1000, Animate: true},
	}, host.takePlacements())
}

func TestEngine_InsertSplitsThenRemoveRestores(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, sched := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	host.addWindow(2)
	host.setPointer(900, 300)
	events := host.subscription()
	require.NotNil(t, events)
	events.WindowCreated(2)

	assert.Empty(t, host.takePlacements(), "creation is deferred")
	assert.Equal(t, 1, e.PendingTasks())

	require.Equal(t, 1, sched.runPending())
	assert.Equal(t, []placement{
		{ID: 2, Rect: platform.Rect{X: 382, Y: 0, Width: 618, Height: 600}, Animate: false},
		{ID: 1, Rect: platform.Rect{X: 0, Y: 0, Width: 382, Height: 600}, Animate: true},
	}, host.takePlacements())
	assert.Equal(t, []platform.WindowID{1, 2}, order(e.Snapshot()))

	host.removeWindow(2)
	events.WindowDestroyed(2)

	assert.Equal(t, []placement{
		{ID: 1, Rect: area1000, Animate: true},
	}, host.takePlacements())
	assert.Equal(t, map[platform.WindowID]platform.Rect{1: area1000}, regions(e.Snapshot()))
}

func TestEngine_PaddingIsAppliedToPlacements(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 8)

	e.Enable()

	assert.Equal(t, []placement{
		{ID: 1, Rect: platform.Rect{X: 8, Y: 8, Width: 984, Height: 584}, Animate: true},
	}, host.takePlacements())
	// Regions are tracked unpadded.
	assert.Equal(t, area1000, regions(e.Snapshot())[1])
}

func TestEngine_ScreenPaddingAndRegion(t *testing.T) {
	host := newFakeHost(area1000, 1)
	sched := &manualScheduler{}
	opts := DefaultOptions()
	opts.Padding = 0
	opts.Scheduler = sched
	opts.ScreenPadding = config.Margins{Top: 20}
	opts.TileRegion = config.TileRegion{Type: config.RegionLeftHalf}
	e := New(host, opts)

	e.Enable()

	assert.Equal(t, []placement{
		{ID: 1, Rect: platform.Rect{X: 0, Y: 20, Width: 500, Height: 580}, Animate: true},
	}, host.takePlacements())
}

func TestEngine_AnimationCanBeDisabled(t *testing.T) {
	host := newFakeHost(area1000, 1)
	opts := DefaultOptions()
	opts.Padding = 0
	opts.Animate = false
	opts.Scheduler = &manualScheduler{}
	e := New(host, opts)

	e.Enable()

	placements := host.takePlacements()
	require.Len(t, placements, 1)
	assert.False(t, placements[0].Animate)
}

func TestEngine_InsertIntoEmptyFillsWorkArea(t *testing.T) {
	host := newFakeHost(area1000)
	e, sched := newTestEngine(host, 0)
	e.Enable()

	host.addWindow(1)
	host.subscription().WindowCreated(1)
	sched.runPending()

	assert.Equal(t, []placement{
		{ID: 1, Rect: area1000, Animate: true},
	}, host.takePlacements())
}

func TestEngine_InsertWithoutTargetRetiles(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	host.addWindow(2)
	e.InsertWindowAt(2, platform.Point{X: 5000, Y: 5000})

	assert.Equal(t, map[platform.WindowID]platform.Rect{
		1: {X: 0, Y: 0, Width: 618, Height: 600},
		2: {X: 618, Y: 0, Width: 382, Height: 600},
	}, regions(e.Snapshot()))
	assert.Len(t, host.takePlacements(), 2)
}

func TestEngine_InsertIntoNarrowRegionRetiles(t *testing.T) {
	host := newFakeHost(area1000, 1, 2)
	sched := &manualScheduler{}
	opts := DefaultOptions()
	opts.Padding = 0
	opts.MinRegionSize = 200
	opts.Scheduler = sched
	e := New(host, opts)
	e.Enable()
	require.Equal(t, platform.Rect{X: 618, Y: 0, Width: 382, Height: 600}, regions(e.Snapshot())[2])
	host.takePlacements()

	// A right split of window 2 would leave it 146px wide.
	host.addWindow(3)
	e.InsertWindowAt(3, platform.Point{X: 990, Y: 300})

	assert.Equal(t, map[platform.WindowID]platform.Rect{
		1: {X: 0, Y: 0, Width: 618, Height: 600},
		2: {X: 618, Y: 0, Width: 382, Height: 370},
		3: {X: 618, Y: 370, Width: 382, Height: 230},
	}, regions(e.Snapshot()))
	assert.Equal(t, []platform.WindowID{1, 2, 3}, order(e.Snapshot()))
	assert.Len(t, host.takePlacements(), 3)
}

func TestEngine_RepeatedEdgeInsertsKeepMinimumSize(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 0)
	e.Enable()

	for id := platform.WindowID(2); id <= 20; id++ {
		prev := regions(e.Snapshot())[id-1]
		host.addWindow(id)
		e.InsertWindowAt(id, platform.Point{X: prev.X + 1, Y: prev.Y + prev.Height/2})
	}

	snap := e.Snapshot()
	require.Len(t, snap.Windows, 20)
	for _, p := range snap.Windows {
		assert.GreaterOrEqual(t, p.Region.Width, tiling.DefaultMinRegionSize, "window %d: %v", p.Window, p.Region)
		assert.GreaterOrEqual(t, p.Region.Height, tiling.DefaultMinRegionSize, "window %d: %v", p.Window, p.Region)
	}
}

func TestEngine_InsertWithoutPointerRetiles(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	host.addWindow(2)
	e.InsertWindow(2)

	assert.Equal(t, []platform.WindowID{1, 2}, order(e.Snapshot()))
	assert.Len(t, host.takePlacements(), 2)
}

func TestEngine_InsertIsNoopForTrackedOrIneligible(t *testing.T) {
	host := newFakeHost(area1000, 1)
	host.ineligible[7] = true
	e, _ := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	e.InsertWindowAt(1, platform.Point{X: 10, Y: 10})
	e.InsertWindowAt(7, platform.Point{X: 10, Y: 10})

	assert.Empty(t, host.takePlacements())
	assert.Equal(t, []platform.WindowID{1}, order(e.Snapshot()))
}

func TestEngine_InsertIgnoredWhileDisabled(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 0)

	e.InsertWindowAt(1, platform.Point{X: 10, Y: 10})
	e.HandleEvent(WindowCreated{Window: 1})

	assert.Empty(t, host.takePlacements())
	assert.Equal(t, 0, e.PendingTasks())
}

func TestEngine_RemoveReclaimsFromUnionOfNeighbours(t *testing.T) {
	host := newFakeHost(area1000, 1, 2, 3)
	e, _ := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	host.removeWindow(1)
	res := e.RemoveWindow(1)

	assert.Equal(t, tiling.BorderRight, res.Border)
	assert.Equal(t, map[platform.WindowID]platform.Rect{
		2: {X: 0, Y: 0, Width: 1000, Height: 370},
		3: {X: 0, Y: 370, Width: 1000, Height: 230},
	}, regions(e.Snapshot()))
	assert.Len(t, host.takePlacements(), 2)
}

func TestEngine_RemoveWithoutNeighboursLeavesVacancy(t *testing.T) {
	small := platform.Rect{X: 0, Y: 0, Width: 150, Height: 150}
	host := newFakeHost(small, 1, 2)
	e, _ := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	res := e.RemoveWindow(2)

	assert.True(t, res.Vacant())
	assert.Empty(t, host.takePlacements())
	assert.Equal(t, map[platform.WindowID]platform.Rect{1: small}, regions(e.Snapshot()))
}

func TestEngine_RemoveUnknownIsNoop(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 0)
	e.Enable()
	host.takePlacements()

	res := e.RemoveWindow(99)

	assert.True(t, res.Vacant())
	assert.Empty(t, host.takePlacements())
	assert.Equal(t, []platform.WindowID{1}, order(e.Snapshot()))
}

func TestEngine_RetileKeepsRelativeOrder(t *testing.T) {
	host := newFakeHost(area1000, 1, 2, 3)
	e, _ := newTestEngine(host, 0)
	e.Enable()

	host.removeWindow(2)
	e.RemoveWindow(2)
	require.True(t, e.Retile())

	snap := e.Snapshot()
	assert.Equal(t, []platform.WindowID{1, 3}, order(snap))
	assert.Equal(t, map[platform.WindowID]platform.Rect{
		1: {X: 0, Y: 0, Width: 618, Height: 600},
		3: {X: 618, Y: 0, Width: 382, Height: 600},
	}, regions(snap))
}

func TestEngine_RetileDisabledReturnsFalse(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, _ := newTestEngine(host, 0)

	assert.False(t, e.Retile())
	assert.Empty(t, host.takePlacements())
}

func TestEngine_WorkAreaFailureSkipsRetile(t *testing.T) {
	host := newFakeHost(area1000, 1)
	host.workErr = errFakeHost
	e, _ := newTestEngine(host, 0)

	e.Enable()

	assert.True(t, e.IsEnabled())
	assert.Empty(t, host.takePlacements())
}

func TestEngine_ToggleAndReconfigure(t *testing.T) {
	host := newFakeHost(area1000, 1)
	e, sched := newTestEngine(host, 0)

	assert.True(t, e.Toggle())
	host.takePlacements()

	opts := DefaultOptions()
	opts.Padding = 8
	e.Reconfigure(opts)

	assert.True(t, e.IsEnabled())
	assert.Equal(t, 2, host.subscribed)
	assert.Equal(t, 1, sched.livePeriodic(), "reconfigure keeps the existing scheduler")
	assert.Equal(t, []placement{
		{ID: 1, Rect: platform.Rect{X: 8, Y: 8, Width: 984, Height: 584}, Animate: true},
	}, host.takePlacements())

	assert.False(t, e.Toggle())
	assert.False(t, e.IsEnabled())
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.GapSize = 4
	cfg.DriftIntervalMs = 500
	cfg.ReclaimPolicy = "single"

	opts := OptionsFromConfig(cfg)

	assert.Equal(t, 4, opts.Padding)
	assert.Equal(t, int64(500), opts.TickInterval.Milliseconds())
	assert.Equal(t, int64(100), opts.CreateDelay.Milliseconds())
	assert.Equal(t, int64(10), opts.GrabSettleDelay.Milliseconds())
	assert.Equal(t, tiling.MatchSingleNeighbor, opts.ReclaimPolicy)
}
