package tiling

import "math"

// Sector is the half of a region the pointer is closest to.
type Sector int

const (
	SectorLeft Sector = iota
	SectorRight
	SectorTop
	SectorBottom
)

func (s Sector) String() string {
	switch s {
	case SectorLeft:
		return "left"
	case SectorRight:
		return "right"
	case SectorTop:
		return "top"
	case SectorBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// SectorFor maps a point to the side of r it leans towards, comparing the
// normalized distances from the centre on each axis. Ties resolve to
// TOP/BOTTOM; the exact centre resolves to BOTTOM.
func SectorFor(r Rect, p Point) Sector {
	cx := float64(r.X) + float64(r.Width)/2
	cy := float64(r.Y) + float64(r.Height)/2
	px := float64(p.X)
	py := float64(p.Y)

	var dx, dy float64
	if r.Width > 0 {
		dx = math.Abs(px-cx) / (float64(r.Width) / 2)
	}
	if r.Height > 0 {
		dy = math.Abs(py-cy) / (float64(r.Height) / 2)
	}

	if dx > dy {
		if px < cx {
			return SectorLeft
		}
		return SectorRight
	}
	if py < cy {
		return SectorTop
	}
	return SectorBottom
}
