package engine

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/1broseidon/bounce/internal/platform"
)

type placement struct {
	ID      platform.WindowID
	Rect    platform.Rect
	Animate bool
}

// fakeHost is an in-memory WindowHost. Placed windows report exactly the
// geometry they were given.
type fakeHost struct {
	mu sync.Mutex

	windows    []platform.WindowID
	ineligible map[platform.WindowID]bool
	geometry   map[platform.WindowID]platform.Rect
	pointer    *platform.Point
	workArea   platform.Rect
	workErr    error
	listErr    error
	grab       bool

	placements   []placement
	events       *platform.HostEvents
	subscribed   int
	unsubscribed int
}

func newFakeHost(area platform.Rect, windows ...platform.WindowID) *fakeHost {
	return &fakeHost{
		windows:    windows,
		ineligible: make(map[platform.WindowID]bool),
		geometry:   make(map[platform.WindowID]platform.Rect),
		workArea:   area,
	}
}

func (h *fakeHost) ListWindows() ([]platform.WindowID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listErr != nil {
		return nil, h.listErr
	}
	return slices.Clone(h.windows), nil
}

func (h *fakeHost) IsEligible(id platform.WindowID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.ineligible[id]
}

func (h *fakeHost) Geometry(id platform.WindowID) (platform.Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.geometry[id]
	return r, ok
}

func (h *fakeHost) PlaceWindow(id platform.WindowID, r platform.Rect, animate bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.placements = append(h.placements, placement{ID: id, Rect: r, Animate: animate})
	h.geometry[id] = r
}

func (h *fakeHost) PointerPosition() (platform.Point, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pointer == nil {
		return platform.Point{}, false
	}
	return *h.pointer, true
}

func (h *fakeHost) WorkArea() (platform.Rect, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.workArea, h.workErr
}

func (h *fakeHost) GrabActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grab
}

func (h *fakeHost) Subscribe(events platform.HostEvents) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = &events
	h.subscribed++
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.events = nil
		h.unsubscribed++
	}
}

func (h *fakeHost) addWindow(id platform.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows = append(h.windows, id)
}

func (h *fakeHost) removeWindow(id platform.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := slices.Index(h.windows, id); i >= 0 {
		h.windows = slices.Delete(h.windows, i, i+1)
	}
	delete(h.geometry, id)
}

func (h *fakeHost) setPointer(x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pointer = &platform.Point{X: x, Y: y}
}

func (h *fakeHost) setGeometry(id platform.WindowID, r platform.Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.geometry[id] = r
}

func (h *fakeHost) forgetGeometry(id platform.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.geometry, id)
}

// takePlacements returns and clears the recorded placements.
func (h *fakeHost) takePlacements() []placement {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.placements
	h.placements = nil
	return out
}

func (h *fakeHost) subscription() *platform.HostEvents {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.events
}

var errFakeHost = errors.New("fake host failure")

// manualScheduler runs tasks only when the test asks it to.
type manualScheduler struct {
	mu       sync.Mutex
	pending  []*manualTask
	periodic []*manualTask
}

type manualTask struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTask) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{delay: d, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

func (s *manualScheduler) Every(d time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{delay: d, fn: fn}
	s.periodic = append(s.periodic, t)
	return t
}

// runPending fires every deferred task queued so far, ignoring delays.
func (s *manualScheduler) runPending() int {
	s.mu.Lock()
	tasks := s.pending
	s.pending = nil
	s.mu.Unlock()

	ran := 0
	for _, t := range tasks {
		if t.isStopped() {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// tick fires every live periodic task once.
func (s *manualScheduler) tick() int {
	s.mu.Lock()
	tasks := slices.Clone(s.periodic)
	s.mu.Unlock()

	ran := 0
	for _, t := range tasks {
		if t.isStopped() {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

func (s *manualScheduler) livePeriodic() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.periodic {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

func newTestEngine(host *fakeHost, padding int) (*Engine, *manualScheduler) {
	sched := &manualScheduler{}
	opts := DefaultOptions()
	opts.Padding = padding
	opts.Scheduler = sched
	return New(host, opts), sched
}

func regions(snap Snapshot) map[platform.WindowID]platform.Rect {
	out := make(map[platform.WindowID]platform.Rect, len(snap.Windows))
	for _, p := range snap.Windows {
		out[p.Window] = p.Region
	}
	return out
}

func order(snap Snapshot) []platform.WindowID {
	out := make([]platform.WindowID, 0, len(snap.Windows))
	for _, p := range snap.Windows {
		out = append(out, p.Window)
	}
	return out
}
