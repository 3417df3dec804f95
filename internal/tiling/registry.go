package tiling

import "slices"

// Record pairs a handle with its last-assigned region.
type Record[H comparable] struct {
	Handle H
	Rect   Rect
}

// Registry is the authoritative map from window handle to region, plus the
// insertion order used by full re-partitions. The two are always updated
// together. A Registry is not safe for concurrent use.
type Registry[H comparable] struct {
	rects map[H]Rect
	order []H
}

// NewRegistry creates an empty registry.
func NewRegistry[H comparable]() *Registry[H] {
	return &Registry[H]{rects: make(map[H]Rect)}
}

// Add tracks h at r, appending it to the order. Returns false if h is
// already tracked.
func (g *Registry[H]) Add(h H, r Rect) bool {
	if _, ok := g.rects[h]; ok {
		return false
	}
	g.rects[h] = r
	g.order = append(g.order, h)
	return true
}

// Update replaces the rect of a tracked handle.
func (g *Registry[H]) Update(h H, r Rect) bool {
	if _, ok := g.rects[h]; !ok {
		return false
	}
	g.rects[h] = r
	return true
}

// Remove forgets h and returns its last rect. Unknown handles are a no-op.
func (g *Registry[H]) Remove(h H) (Rect, bool) {
	r, ok := g.rects[h]
	if !ok {
		return Rect{}, false
	}
	delete(g.rects, h)
	if i := slices.Index(g.order, h); i >= 0 {
		g.order = slices.Delete(g.order, i, i+1)
	}
	return r, true
}

// Rect returns the region assigned to h.
func (g *Registry[H]) Rect(h H) (Rect, bool) {
	r, ok := g.rects[h]
	return r, ok
}

// Has reports whether h is tracked.
func (g *Registry[H]) Has(h H) bool {
	_, ok := g.rects[h]
	return ok
}

// Len returns the number of tracked handles.
func (g *Registry[H]) Len() int {
	return len(g.order)
}

// Order returns a copy of the handle order.
func (g *Registry[H]) Order() []H {
	return slices.Clone(g.order)
}

// Index returns h's position in the order, or -1.
func (g *Registry[H]) Index(h H) int {
	return slices.Index(g.order, h)
}

// Records returns every tracked handle with its rect, in order.
func (g *Registry[H]) Records() []Record[H] {
	out := make([]Record[H], 0, len(g.order))
	for _, h := range g.order {
		out = append(out, Record[H]{Handle: h, Rect: g.rects[h]})
	}
	return out
}

// Clear drops every record.
func (g *Registry[H]) Clear() {
	clear(g.rects)
	g.order = g.order[:0]
}

// Reset replaces the contents with the given order and layout. Handles in
// order without a rect in layout are skipped.
func (g *Registry[H]) Reset(order []H, layout map[H]Rect) {
	g.Clear()
	for _, h := range order {
		r, ok := layout[h]
		if !ok {
			continue
		}
		g.Add(h, r)
	}
}

// MoveTo splices m out of the order and reinserts it at the position target
// held before the splice, so m takes target's former slot. Returns false if
// either handle is untracked or they are equal.
func (g *Registry[H]) MoveTo(m, target H) bool {
	if m == target {
		return false
	}
	from := slices.Index(g.order, m)
	to := slices.Index(g.order, target)
	if from < 0 || to < 0 {
		return false
	}
	g.order = slices.Delete(g.order, from, from+1)
	g.order = slices.Insert(g.order, to, m)
	return true
}

// WindowAt returns the tracked handle whose rect contains p. When several
// rects contain the point the largest wins, then the earliest in order.
// Handles listed in exclude are ignored.
func (g *Registry[H]) WindowAt(p Point, exclude ...H) (H, bool) {
	var (
		best     H
		bestArea = -1
	)
	for _, h := range g.order {
		if slices.Contains(exclude, h) {
			continue
		}
		r := g.rects[h]
		if !r.ContainsPoint(p) {
			continue
		}
		if a := r.Area(); a > bestArea {
			best = h
			bestArea = a
		}
	}
	return best, bestArea >= 0
}
