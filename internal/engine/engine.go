package engine

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/1broseidon/bounce/internal/platform"
	"github.com/1broseidon/bounce/internal/tiling"
)

// Mode names the layout the engine maintains.
const Mode = "fibonacci"

// Engine keeps a non-overlapping golden-ratio partition of the host work
// area across the windows it tracks. Every entry point takes the engine
// lock, so host callbacks, timers and IPC requests are applied one at a
// time.
type Engine struct {
	mu     sync.Mutex
	host   platform.WindowHost
	opts   Options
	sched  Scheduler
	logger *slog.Logger

	enabled bool
	// generation changes on every enable/disable so stale deferred work
	// can recognise itself.
	generation  uint64
	reg         *tiling.Registry[platform.WindowID]
	tasks       map[uint64]Task
	nextTask    uint64
	ticker      Task
	unsubscribe func()
}

// New creates a disabled engine driving host.
func New(host platform.WindowHost, opts Options) *Engine {
	opts = normalizeOptions(opts)
	return &Engine{
		host:   host,
		opts:   opts,
		sched:  opts.Scheduler,
		logger: opts.Logger,
		reg:    tiling.NewRegistry[platform.WindowID](),
		tasks:  make(map[uint64]Task),
	}
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewClockScheduler(opts.Logger)
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultOptions().TickInterval
	}
	opts.Padding = max(opts.Padding, 0)
	opts.MinRegionSize = max(opts.MinRegionSize, 0)
	opts.DriftTolerance = max(opts.DriftTolerance, 0)
	opts.CreateDelay = max(opts.CreateDelay, 0)
	opts.GrabSettleDelay = max(opts.GrabSettleDelay, 0)
	return opts
}

// Enable subscribes to host events, starts drift checks and tiles every
// eligible window. Enabling an enabled engine does nothing.
func (e *Engine) Enable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enableLocked()
}

func (e *Engine) enableLocked() {
	if e.enabled {
		return
	}
	e.enabled = true
	e.generation++
	gen := e.generation

	e.logger.Info("tiling enabled", "mode", Mode)

	e.unsubscribe = e.host.Subscribe(platform.HostEvents{
		WindowCreated:   func(id platform.WindowID) { e.HandleEvent(WindowCreated{Window: id}) },
		WindowDestroyed: func(id platform.WindowID) { e.HandleEvent(WindowDestroyed{Window: id}) },
		GrabEnd: func(id platform.WindowID, op platform.GrabOp) {
			e.HandleEvent(GrabEnded{Window: id, Op: op})
		},
	})
	e.ticker = e.sched.Every(e.opts.TickInterval, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.generation != gen {
			return
		}
		e.tickLocked()
	})

	e.retileLocked()
}

// Disable stops event handling, cancels all pending work and forgets every
// region. Windows are left where they are.
func (e *Engine) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disableLocked()
}

func (e *Engine) disableLocked() {
	if !e.enabled {
		return
	}
	e.enabled = false
	e.generation++

	for id, task := range e.tasks {
		task.Stop()
		delete(e.tasks, id)
	}
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.reg.Clear()

	e.logger.Info("tiling disabled")
}

// Toggle flips the enabled state and returns the new state.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enabled {
		e.disableLocked()
	} else {
		e.enableLocked()
	}
	return e.enabled
}

// IsEnabled reports whether tiling is active.
func (e *Engine) IsEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Reconfigure swaps the options. An enabled engine is disabled and
// re-enabled so the new options apply to every window.
func (e *Engine) Reconfigure(opts Options) {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasEnabled := e.enabled
	e.disableLocked()

	if opts.Scheduler == nil {
		opts.Scheduler = e.sched
	}
	if opts.Logger == nil {
		opts.Logger = e.logger
	}
	e.opts = normalizeOptions(opts)
	e.sched = e.opts.Scheduler
	e.logger = e.opts.Logger

	if wasEnabled {
		e.enableLocked()
	}
}

// HandleEvent applies a single event.
func (e *Engine) HandleEvent(ev Event) {
	if _, ok := ev.(DriftTick); ok {
		e.Tick()
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}

	switch ev := ev.(type) {
	case WindowCreated:
		id := ev.Window
		e.scheduleLocked(e.opts.CreateDelay, func() {
			e.insertLocked(id, platform.Point{}, false)
		})
	case WindowDestroyed:
		e.removeLocked(ev.Window)
	case GrabEnded:
		id, op := ev.Window, ev.Op
		e.scheduleLocked(e.opts.GrabSettleDelay, func() {
			e.grabEndedLocked(id, op)
		})
	default:
		e.logger.Debug("ignoring unknown event", "event", ev)
	}
}

// scheduleLocked defers fn. fn runs under the engine lock and only if the
// engine is still enabled in the same generation.
func (e *Engine) scheduleLocked(d time.Duration, fn func()) {
	id := e.nextTask
	e.nextTask++
	gen := e.generation

	e.tasks[id] = e.sched.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.tasks, id)
		if !e.enabled || e.generation != gen {
			return
		}
		fn()
	})
}

// PendingTasks returns the number of deferred tasks not yet run.
func (e *Engine) PendingTasks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

// Retile rebuilds the whole layout. Returns false when tiling is disabled.
func (e *Engine) Retile() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return false
	}
	e.retileLocked()
	return true
}

// retileLocked partitions the work area across every valid window. extra
// handles are appended if the host does not list them yet.
func (e *Engine) retileLocked(extra ...platform.WindowID) {
	area, ok := e.workAreaLocked()
	if !ok {
		return
	}

	handles := e.validHandlesLocked()
	for _, id := range extra {
		if !slices.Contains(handles, id) && e.host.IsEligible(id) {
			handles = append(handles, id)
		}
	}

	layout := tiling.FibonacciLayoutMin(handles, area, e.opts.MinRegionSize)
	e.reg.Reset(handles, layout)

	e.logger.Debug("retiling", "windows", len(handles), "area", area)
	for _, rec := range e.reg.Records() {
		e.placeLocked(rec.Handle, rec.Rect, true)
	}
}

// validHandlesLocked returns the tracked order filtered to listed, eligible
// windows, followed by any other listed eligible windows in host order.
func (e *Engine) validHandlesLocked() []platform.WindowID {
	listed, err := e.host.ListWindows()
	if err != nil {
		e.logger.Warn("failed to list windows", "error", err)
		listed = e.reg.Order()
	}

	valid := make(map[platform.WindowID]bool, len(listed))
	for _, id := range listed {
		if e.host.IsEligible(id) {
			valid[id] = true
		}
	}

	handles := make([]platform.WindowID, 0, len(valid))
	for _, id := range e.reg.Order() {
		if valid[id] {
			handles = append(handles, id)
			delete(valid, id)
		}
	}
	for _, id := range listed {
		if valid[id] {
			handles = append(handles, id)
			delete(valid, id)
		}
	}
	return handles
}

// workAreaLocked returns the host work area after screen padding and the
// configured tile region.
func (e *Engine) workAreaLocked() (tiling.Rect, bool) {
	wa, err := e.host.WorkArea()
	if err != nil {
		e.logger.Warn("failed to read work area", "error", err)
		return tiling.Rect{}, false
	}

	area := rectFromPlatform(wa)
	padded, ok := tiling.ApplyPadding(area, e.opts.ScreenPadding)
	if !ok {
		e.logger.Warn("screen_padding leaves no usable space", "area", area)
	} else {
		area = padded
	}
	return tiling.ApplyRegion(area, e.opts.TileRegion), true
}

// placeLocked sends the padded region to the host.
func (e *Engine) placeLocked(id platform.WindowID, r tiling.Rect, animate bool) {
	e.host.PlaceWindow(id, rectToPlatform(r.Inset(e.opts.Padding)), animate && e.opts.Animate)
}

// Placement is a tracked window and its region.
type Placement struct {
	Window platform.WindowID
	Region platform.Rect
}

// Snapshot is a point-in-time view of the engine.
type Snapshot struct {
	Enabled  bool
	Mode     string
	WorkArea platform.Rect
	Windows  []Placement
}

// Snapshot returns the current state. Regions are reported before padding.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{Enabled: e.enabled, Mode: Mode}
	if e.enabled {
		if area, ok := e.workAreaLocked(); ok {
			snap.WorkArea = rectToPlatform(area)
		}
	}
	for _, rec := range e.reg.Records() {
		snap.Windows = append(snap.Windows, Placement{
			Window: rec.Handle,
			Region: rectToPlatform(rec.Rect),
		})
	}
	return snap
}

func rectFromPlatform(r platform.Rect) tiling.Rect {
	return tiling.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func rectToPlatform(r tiling.Rect) platform.Rect {
	return platform.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func pointFromPlatform(p platform.Point) tiling.Point {
	return tiling.Point{X: p.X, Y: p.Y}
}
