package tiling

import (
	"fmt"
	"slices"
)

// Border identifies the edge of a removed region whose neighbours absorbed it.
type Border int

const (
	BorderNone Border = iota
	BorderLeft
	BorderTop
	BorderRight
	BorderBottom
)

func (b Border) String() string {
	switch b {
	case BorderLeft:
		return "left"
	case BorderTop:
		return "top"
	case BorderRight:
		return "right"
	case BorderBottom:
		return "bottom"
	default:
		return "none"
	}
}

// reclaimOrder is the order borders are tried in.
var reclaimOrder = []Border{BorderLeft, BorderTop, BorderRight, BorderBottom}

// MatchPolicy decides when the neighbours along a border may absorb a
// removed region.
type MatchPolicy int

const (
	// MatchExactUnion requires the neighbours' spans to tile the removed
	// border exactly: no gap and no overhang past either end.
	MatchExactUnion MatchPolicy = iota
	// MatchSingleNeighbor only reclaims when one neighbour spans the removed
	// border edge to edge.
	MatchSingleNeighbor
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchExactUnion:
		return "exact"
	case MatchSingleNeighbor:
		return "single"
	default:
		return "unknown"
	}
}

// ParseMatchPolicy converts a config value into a MatchPolicy.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch s {
	case "", "exact":
		return MatchExactUnion, nil
	case "single":
		return MatchSingleNeighbor, nil
	default:
		return MatchExactUnion, fmt.Errorf("unknown reclaim policy %q (expected exact or single)", s)
	}
}

// ReclaimResult reports which border absorbed the removed region and the
// handles that grew. Border is BorderNone when the space was left vacant.
type ReclaimResult[H comparable] struct {
	Border Border
	Grown  []Record[H]
}

// Vacant reports whether no neighbour took the space.
func (r ReclaimResult[H]) Vacant() bool {
	return r.Border == BorderNone
}

// Reclaim grows the neighbours of removed into its space, trying borders
// left, top, right, bottom and stopping at the first that matches under
// policy. Matching neighbours are updated in reg. removed must already be
// gone from reg.
func Reclaim[H comparable](reg *Registry[H], removed Rect, policy MatchPolicy) ReclaimResult[H] {
	if removed.Empty() {
		return ReclaimResult[H]{Border: BorderNone}
	}
	for _, border := range reclaimOrder {
		candidates := neighbours(reg, removed, border)
		if len(candidates) == 0 {
			continue
		}
		if !coversBorder(candidates, removed, border, policy) {
			continue
		}
		grown := make([]Record[H], 0, len(candidates))
		for _, c := range candidates {
			r := grow(c.Rect, removed, border)
			reg.Update(c.Handle, r)
			grown = append(grown, Record[H]{Handle: c.Handle, Rect: r})
		}
		return ReclaimResult[H]{Border: border, Grown: grown}
	}
	return ReclaimResult[H]{Border: BorderNone}
}

// neighbours returns the records whose edge lies on the given border of
// removed and whose perpendicular span overlaps it.
func neighbours[H comparable](reg *Registry[H], removed Rect, border Border) []Record[H] {
	var out []Record[H]
	for _, rec := range reg.Records() {
		r := rec.Rect
		var touches bool
		switch border {
		case BorderLeft:
			touches = r.Right() == removed.X
		case BorderTop:
			touches = r.Bottom() == removed.Y
		case BorderRight:
			touches = r.X == removed.Right()
		case BorderBottom:
			touches = r.Y == removed.Bottom()
		}
		if !touches {
			continue
		}
		axis := perpendicular(border)
		if !r.Span(axis).Overlaps(removed.Span(axis)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// perpendicular is the axis along which a border runs.
func perpendicular(border Border) Axis {
	if border == BorderLeft || border == BorderRight {
		return Vertical
	}
	return Horizontal
}

func coversBorder[H comparable](candidates []Record[H], removed Rect, border Border, policy MatchPolicy) bool {
	axis := perpendicular(border)
	target := removed.Span(axis)

	if policy == MatchSingleNeighbor {
		return len(candidates) == 1 && candidates[0].Rect.Span(axis) == target
	}

	spans := make([]Interval, 0, len(candidates))
	for _, c := range candidates {
		spans = append(spans, c.Rect.Span(axis))
	}
	slices.SortFunc(spans, func(a, b Interval) int { return a.Start - b.Start })

	covered := target.Start
	for _, s := range spans {
		if s.Start < target.Start || s.End > target.End {
			return false
		}
		if s.Start > covered {
			return false
		}
		covered = max(covered, s.End)
	}
	return covered == target.End
}

func grow(r, removed Rect, border Border) Rect {
	switch border {
	case BorderLeft:
		r.Width += removed.Width
	case BorderTop:
		r.Height += removed.Height
	case BorderRight:
		r.X -= removed.Width
		r.Width += removed.Width
	case BorderBottom:
		r.Y -= removed.Height
		r.Height += removed.Height
	}
	return r
}
