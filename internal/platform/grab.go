package platform

import (
	"slices"
)

// States that make a window ineligible for tiling.
var excludedStates = []string{
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_HIDDEN",
}

// tileableStates reports whether none of the given _NET_WM_STATE atoms
// exclude the window from tiling.
func tileableStates(states []string) bool {
	for _, s := range states {
		if slices.Contains(excludedStates, s) {
			return false
		}
	}
	return true
}

// classifyGrab decides what an interactive grab did: a grab that kept the
// size was a move, anything else a resize.
func classifyGrab(start, end Rect) GrabOp {
	if start.Width == end.Width && start.Height == end.Height {
		return GrabMove
	}
	return GrabResize
}

// diffWindows compares the known set with the current list. Added windows
// keep the order of current.
func diffWindows(known map[WindowID]struct{}, current []WindowID) (added, removed []WindowID) {
	seen := make(map[WindowID]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
		if _, ok := known[id]; !ok {
			added = append(added, id)
		}
	}
	for id := range known {
		if _, ok := seen[id]; !ok {
			removed = append(removed, id)
		}
	}
	slices.Sort(removed)
	return added, removed
}

// grabTracker folds bursts of ConfigureNotify into single grab-end events.
// A burst only counts as a grab if a pointer button was down at some point
// during it and the window did not settle on the geometry we last placed it
// at. Programmatic moves and our own placements are therefore ignored, even
// when the user happens to hold a button while we retile.
type grabTracker struct {
	bursts map[WindowID]*burst
	placed map[WindowID]Rect
}

type burst struct {
	start Rect
	held  bool
}

func newGrabTracker() *grabTracker {
	return &grabTracker{
		bursts: make(map[WindowID]*burst),
		placed: make(map[WindowID]Rect),
	}
}

// place records a geometry we asked the WM for.
func (g *grabTracker) place(id WindowID, r Rect) {
	g.placed[id] = r
}

// observe records one geometry change. before is the last settled geometry.
func (g *grabTracker) observe(id WindowID, before Rect, buttonHeld bool) {
	b, ok := g.bursts[id]
	if !ok {
		b = &burst{start: before}
		g.bursts[id] = b
	}
	b.held = b.held || buttonHeld
}

// settle ends the burst for id and reports the grab it amounted to.
func (g *grabTracker) settle(id WindowID, end Rect) (GrabOp, bool) {
	b, ok := g.bursts[id]
	if !ok {
		return GrabOther, false
	}
	delete(g.bursts, id)
	if !b.held {
		return GrabOther, false
	}
	if placed, ok := g.placed[id]; ok && placed == end {
		return GrabOther, false
	}
	return classifyGrab(b.start, end), true
}

func (g *grabTracker) drop(id WindowID) {
	delete(g.bursts, id)
	delete(g.placed, id)
}
