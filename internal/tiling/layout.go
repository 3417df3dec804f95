package tiling

import (
	"math"

	"github.com/1broseidon/bounce/internal/config"
)

// DefaultMinRegionSize is the smallest width or height the partitioner will
// produce by splitting.
const DefaultMinRegionSize = 100

// goldenShare returns floor(dim/φ), the larger piece of a golden split.
func goldenShare(dim int) int {
	return int(math.Floor(float64(dim) / math.Phi))
}

// canSplit reports whether dim yields two golden pieces of at least minSize.
func canSplit(dim, minSize int) bool {
	if minSize < 1 {
		minSize = 1
	}
	f := goldenShare(dim)
	return f >= minSize && dim-f >= minSize
}

// splitGolden cuts area along its longer side (height on ties) and returns
// the golden piece and the remainder. ok is false when the cut would leave
// a piece smaller than minSize.
func splitGolden(area Rect, minSize int) (piece, rest Rect, ok bool) {
	if area.Width > area.Height {
		if !canSplit(area.Width, minSize) {
			return Rect{}, Rect{}, false
		}
		f := goldenShare(area.Width)
		piece = Rect{X: area.X, Y: area.Y, Width: f, Height: area.Height}
		rest = Rect{X: area.X + f, Y: area.Y, Width: area.Width - f, Height: area.Height}
		return piece, rest, true
	}
	if !canSplit(area.Height, minSize) {
		return Rect{}, Rect{}, false
	}
	f := goldenShare(area.Height)
	piece = Rect{X: area.X, Y: area.Y, Width: area.Width, Height: f}
	rest = Rect{X: area.X, Y: area.Y + f, Width: area.Width, Height: area.Height - f}
	return piece, rest, true
}

// FibonacciPositions computes n golden-ratio regions covering area.
//
// Each step gives the next window floor(dim/φ) of the longer side and
// recurses into the remainder, so for a splittable area the pieces tile it
// exactly. Once the remainder is too small to cut into two regions of at
// least minSize, every remaining window is stacked on that remainder.
func FibonacciPositions(n int, area Rect, minSize int) []Rect {
	if n <= 0 {
		return nil
	}

	positions := make([]Rect, 0, n)
	rest := area
	for len(positions) < n-1 {
		piece, next, ok := splitGolden(rest, minSize)
		if !ok {
			break
		}
		positions = append(positions, piece)
		rest = next
	}
	for len(positions) < n {
		positions = append(positions, rest)
	}
	return positions
}

// FibonacciLayout assigns a golden-ratio region of area to every handle,
// in order, using DefaultMinRegionSize.
func FibonacciLayout[H comparable](handles []H, area Rect) map[H]Rect {
	return FibonacciLayoutMin(handles, area, DefaultMinRegionSize)
}

// FibonacciLayoutMin is FibonacciLayout with an explicit minimum region
// size. Duplicate handles keep their first slot.
func FibonacciLayoutMin[H comparable](handles []H, area Rect, minSize int) map[H]Rect {
	unique := dedupe(handles)
	positions := FibonacciPositions(len(unique), area, minSize)
	out := make(map[H]Rect, len(unique))
	for i, h := range unique {
		out[h] = positions[i]
	}
	return out
}

// Centered returns a region half the width and height of area, centred in
// it. Odd leftovers go to the right and bottom margins.
func Centered(area Rect) Rect {
	w := area.Width / 2
	h := area.Height / 2
	return Rect{
		X:      area.X + (area.Width-w)/2,
		Y:      area.Y + (area.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

func dedupe[H comparable](handles []H) []H {
	seen := make(map[H]struct{}, len(handles))
	out := make([]H, 0, len(handles))
	for _, h := range handles {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// ApplyRegion applies the tile region to a work area, returning adjusted bounds
func ApplyRegion(area Rect, region config.TileRegion) Rect {
	adjusted := area

	switch region.Type {
	case config.RegionFull:
		// No change

	case config.RegionLeftHalf:
		adjusted.Width = area.Width / 2

	case config.RegionRightHalf:
		adjusted.X = area.X + area.Width/2
		adjusted.Width = area.Width - area.Width/2

	case config.RegionTopHalf:
		adjusted.Height = area.Height / 2

	case config.RegionBottomHalf:
		adjusted.Y = area.Y + area.Height/2
		adjusted.Height = area.Height - area.Height/2

	case config.RegionCustom:
		adjusted.X = area.X + (area.Width * region.XPercent / 100)
		adjusted.Y = area.Y + (area.Height * region.YPercent / 100)
		adjusted.Width = area.Width * region.WidthPercent / 100
		adjusted.Height = area.Height * region.HeightPercent / 100
	}

	if adjusted.Width < 1 {
		adjusted.Width = 1
	}
	if adjusted.Height < 1 {
		adjusted.Height = 1
	}

	return adjusted
}

// ApplyPadding shrinks area by the per-side screen padding. ok is false when
// nothing usable remains.
func ApplyPadding(area Rect, pad config.Margins) (Rect, bool) {
	out := Rect{
		X:      area.X + pad.Left,
		Y:      area.Y + pad.Top,
		Width:  area.Width - pad.Left - pad.Right,
		Height: area.Height - pad.Top - pad.Bottom,
	}
	if out.Width < 1 || out.Height < 1 {
		return area, false
	}
	return out, true
}
