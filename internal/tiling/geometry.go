package tiling

import "fmt"

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Point is a screen coordinate, usually the pointer position.
type Point struct {
	X int
	Y int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Right is the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom is the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns width*height, or 0 for degenerate rects.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rect has no usable surface.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the integer midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ContainsPoint uses half-open bounds so that two adjacent rects never both
// contain the point on their shared edge.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether the two rects share a positive area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersection(o).Empty()
}

// Intersection returns the overlapping rect; the result is Empty when the
// rects do not overlap.
func (r Rect) Intersection(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Inset shrinks the rect by p on every side. Width and height never drop
// below 1.
func (r Rect) Inset(p int) Rect {
	if p == 0 {
		return r
	}
	out := Rect{
		X:      r.X + p,
		Y:      r.Y + p,
		Width:  r.Width - 2*p,
		Height: r.Height - 2*p,
	}
	if out.Width < 1 {
		out.Width = 1
	}
	if out.Height < 1 {
		out.Height = 1
	}
	return out
}

// Near reports whether every component of r is within tol of o.
func (r Rect) Near(o Rect, tol int) bool {
	return absInt(r.X-o.X) <= tol &&
		absInt(r.Y-o.Y) <= tol &&
		absInt(r.Width-o.Width) <= tol &&
		absInt(r.Height-o.Height) <= tol
}

// Axis selects the horizontal or vertical dimension of a rect.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Interval is a half-open span [Start, End) along one axis.
type Interval struct {
	Start int
	End   int
}

// Len returns the span length, never negative.
func (i Interval) Len() int {
	if i.End <= i.Start {
		return 0
	}
	return i.End - i.Start
}

// Overlaps reports whether the intervals share a positive length.
func (i Interval) Overlaps(o Interval) bool {
	return min(i.End, o.End) > max(i.Start, o.Start)
}

// Span returns the rect's extent along the axis.
func (r Rect) Span(axis Axis) Interval {
	if axis == Horizontal {
		return Interval{Start: r.X, End: r.Right()}
	}
	return Interval{Start: r.Y, End: r.Bottom()}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
