package tiling

// Split divides existing along the pointer sector. The incoming window takes
// the floor(dim/φ) share on the chosen side and the existing window keeps
// the remainder.
func Split(existing Rect, sector Sector) (incoming, updated Rect) {
	switch sector {
	case SectorLeft:
		f := goldenShare(existing.Width)
		incoming = Rect{X: existing.X, Y: existing.Y, Width: f, Height: existing.Height}
		updated = Rect{X: existing.X + f, Y: existing.Y, Width: existing.Width - f, Height: existing.Height}
	case SectorRight:
		f := goldenShare(existing.Width)
		incoming = Rect{X: existing.X + existing.Width - f, Y: existing.Y, Width: f, Height: existing.Height}
		updated = Rect{X: existing.X, Y: existing.Y, Width: existing.Width - f, Height: existing.Height}
	case SectorTop:
		f := goldenShare(existing.Height)
		incoming = Rect{X: existing.X, Y: existing.Y, Width: existing.Width, Height: f}
		updated = Rect{X: existing.X, Y: existing.Y + f, Width: existing.Width, Height: existing.Height - f}
	default:
		f := goldenShare(existing.Height)
		incoming = Rect{X: existing.X, Y: existing.Y + existing.Height - f, Width: existing.Width, Height: f}
		updated = Rect{X: existing.X, Y: existing.Y, Width: existing.Width, Height: existing.Height - f}
	}
	return incoming, updated
}

// SplitFits reports whether Split(existing, sector) leaves both pieces at
// least minSize along the cut axis. A minSize below 1 still requires 1px.
func SplitFits(existing Rect, sector Sector, minSize int) bool {
	switch sector {
	case SectorLeft, SectorRight:
		return canSplit(existing.Width, minSize)
	default:
		return canSplit(existing.Height, minSize)
	}
}
