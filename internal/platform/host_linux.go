//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/bounce/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// DefaultGrabSettle is how long a window must stay still, with no pointer
// button down, before a burst of geometry changes is reported as a grab end.
const DefaultGrabSettle = 50 * time.Millisecond

// X11Host drives an EWMH window manager through an existing X11 connection.
//
// Window creation and destruction come from _NET_CLIENT_LIST changes on the
// root window. X11 has no grab-end notification for managed windows, so
// ConfigureNotify bursts that happened with a pointer button held are folded
// into GrabEnd once the window settles, unless the window settled where
// PlaceWindow last put it.
type X11Host struct {
	conn   *x11.Connection
	logger *slog.Logger
	settle time.Duration

	clientListAtom xproto.Atom

	mu      sync.Mutex
	events  HostEvents
	clients map[WindowID]struct{}
	last    map[WindowID]Rect
	grabs   *grabTracker
	timers  map[WindowID]*time.Timer
	closed  bool
}

var _ WindowHost = (*X11Host)(nil)

// NewX11Host starts listening on the root window. Callbacks run on the X
// event loop goroutine or on settle timers, so conn.EventLoop must be running
// for events to arrive.
func NewX11Host(conn *x11.Connection, logger *slog.Logger) (*X11Host, error) {
	if conn == nil {
		return nil, fmt.Errorf("x11 connection is nil")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	atom, err := xprop.Atm(conn.XUtil, "_NET_CLIENT_LIST")
	if err != nil {
		return nil, fmt.Errorf("failed to intern _NET_CLIENT_LIST: %w", err)
	}

	h := &X11Host{
		conn:           conn,
		logger:         logger,
		settle:         DefaultGrabSettle,
		clientListAtom: atom,
		clients:        make(map[WindowID]struct{}),
		last:           make(map[WindowID]Rect),
		grabs:          newGrabTracker(),
		timers:         make(map[WindowID]*time.Timer),
	}

	if err := xwindow.New(conn.XUtil, conn.Root).Listen(xproto.EventMaskPropertyChange); err != nil {
		return nil, fmt.Errorf("failed to listen on root window: %w", err)
	}
	xevent.PropertyNotifyFun(h.onRootProperty).Connect(conn.XUtil, conn.Root)

	// Existing clients are tracked silently; the engine lists them on enable.
	h.syncClients(false)
	return h, nil
}

// Close detaches every client listener and stops pending settle timers.
func (h *X11Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, t := range h.timers {
		t.Stop()
		delete(h.timers, id)
	}
	for id := range h.clients {
		xevent.Detach(h.conn.XUtil, xproto.Window(id))
	}
	xevent.Detach(h.conn.XUtil, h.conn.Root)
}

func (h *X11Host) ListWindows() ([]WindowID, error) {
	clients, err := h.conn.ClientsOnCurrentDesktop()
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, 0, len(clients))
	for _, c := range clients {
		out = append(out, WindowID(c))
	}
	return out, nil
}

func (h *X11Host) IsEligible(id WindowID) bool {
	win := xproto.Window(id)
	if !h.conn.IsNormalWindow(win) {
		return false
	}
	if !tileableStates(h.conn.WindowStates(win)) {
		return false
	}
	if !h.conn.IsResizable(win) || !h.conn.IsMovable(win) {
		return false
	}
	if current, err := h.conn.GetCurrentDesktop(); err == nil {
		if desktop, err := h.conn.GetWindowDesktop(win); err == nil && desktop != x11.AllDesktops && desktop != current {
			return false
		}
	}
	return true
}

func (h *X11Host) Geometry(id WindowID) (Rect, bool) {
	g, err := h.conn.FrameGeometry(xproto.Window(id))
	if err != nil {
		return Rect{}, false
	}
	return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}, true
}

// PlaceWindow ignores animate; plain X11 has no compositor-side transitions.
func (h *X11Host) PlaceWindow(id WindowID, r Rect, animate bool) {
	h.mu.Lock()
	h.last[id] = r
	h.grabs.place(id, r)
	h.mu.Unlock()

	if err := h.conn.MoveResizeWindow(xproto.Window(id), r.X, r.Y, r.Width, r.Height); err != nil {
		h.logger.Debug("place window failed", "window", id, "error", err)
	}
}

func (h *X11Host) PointerPosition() (Point, bool) {
	x, y, _, err := h.conn.QueryPointer()
	if err != nil {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

func (h *X11Host) WorkArea() (Rect, error) {
	m, err := h.conn.PrimaryWorkArea()
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}, nil
}

func (h *X11Host) GrabActive() bool {
	_, _, mask, err := h.conn.QueryPointer()
	return err == nil && x11.ButtonHeld(mask)
}

func (h *X11Host) Subscribe(events HostEvents) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = events
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.events = HostEvents{}
	}
}

func (h *X11Host) onRootProperty(_ *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	if ev.Atom != h.clientListAtom {
		return
	}
	h.syncClients(true)
}

// syncClients diffs _NET_CLIENT_LIST against the tracked set.
func (h *X11Host) syncClients(notify bool) {
	list, err := h.conn.ClientList()
	if err != nil {
		h.logger.Debug("client list unavailable", "error", err)
		return
	}
	current := make([]WindowID, 0, len(list))
	for _, w := range list {
		current = append(current, WindowID(w))
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	added, removed := diffWindows(h.clients, current)
	for _, id := range removed {
		h.untrackLocked(id)
	}
	for _, id := range added {
		h.trackLocked(id)
	}
	events := h.events
	h.mu.Unlock()

	if !notify {
		return
	}
	for _, id := range removed {
		h.logger.Debug("window destroyed", "window", id)
		if events.WindowDestroyed != nil {
			events.WindowDestroyed(id)
		}
	}
	for _, id := range added {
		h.logger.Debug("window created", "window", id)
		if events.WindowCreated != nil {
			events.WindowCreated(id)
		}
	}
}

func (h *X11Host) trackLocked(id WindowID) {
	win := xproto.Window(id)
	h.clients[id] = struct{}{}
	if g, err := h.conn.FrameGeometry(win); err == nil {
		h.last[id] = Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	}
	if err := xwindow.New(h.conn.XUtil, win).Listen(xproto.EventMaskStructureNotify); err != nil {
		h.logger.Debug("cannot listen on window", "window", id, "error", err)
		return
	}
	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		h.onConfigure(id)
	}).Connect(h.conn.XUtil, win)
}

func (h *X11Host) untrackLocked(id WindowID) {
	delete(h.clients, id)
	delete(h.last, id)
	h.grabs.drop(id)
	if t, ok := h.timers[id]; ok {
		t.Stop()
		delete(h.timers, id)
	}
	xevent.Detach(h.conn.XUtil, xproto.Window(id))
}

func (h *X11Host) onConfigure(id WindowID) {
	held := h.GrabActive()

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; !ok || h.closed {
		return
	}
	h.grabs.observe(id, h.last[id], held)
	h.armSettleLocked(id)
}

func (h *X11Host) armSettleLocked(id WindowID) {
	if t, ok := h.timers[id]; ok {
		t.Stop()
	}
	h.timers[id] = time.AfterFunc(h.settle, func() { h.settleWindow(id) })
}

func (h *X11Host) settleWindow(id WindowID) {
	if h.GrabActive() {
		// Still dragging; check again later.
		h.mu.Lock()
		if _, ok := h.clients[id]; ok && !h.closed {
			h.armSettleLocked(id)
		}
		h.mu.Unlock()
		return
	}

	geom, ok := h.Geometry(id)

	h.mu.Lock()
	delete(h.timers, id)
	if !ok || h.closed {
		h.grabs.drop(id)
		h.mu.Unlock()
		return
	}
	op, grabbed := h.grabs.settle(id, geom)
	h.last[id] = geom
	callback := h.events.GrabEnd
	h.mu.Unlock()

	if grabbed {
		h.logger.Debug("grab ended", "window", id, "op", op)
		if callback != nil {
			callback(id, op)
		}
	}
}
