package tiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_RightGivesIncomingGoldenShare(t *testing.T) {
	incoming, existing := Split(Rect{X: 0, Y: 0, Width: 1000, Height: 600}, SectorRight)

	assert.Equal(t, Rect{X: 382, Y: 0, Width: 618, Height: 600}, incoming)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 382, Height: 600}, existing)
}

func TestSplit_PreservesUnion(t *testing.T) {
	original := Rect{X: 40, Y: 30, Width: 733, Height: 511}

	for _, sector := range []Sector{SectorLeft, SectorRight, SectorTop, SectorBottom} {
		t.Run(sector.String(), func(t *testing.T) {
			incoming, existing := Split(original, sector)

			assert.False(t, incoming.Intersects(existing))
			assert.Equal(t, original.Area(), incoming.Area()+existing.Area())
			assert.Equal(t, incoming, incoming.Intersection(original))
			assert.Equal(t, existing, existing.Intersection(original))
			assert.GreaterOrEqual(t, incoming.Area(), existing.Area())
		})
	}
}

func TestSplit_Sides(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1000, Height: 1000}

	in, ex := Split(r, SectorLeft)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 618, Height: 1000}, in)
	assert.Equal(t, Rect{X: 618, Y: 0, Width: 382, Height: 1000}, ex)

	in, ex = Split(r, SectorTop)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 1000, Height: 618}, in)
	assert.Equal(t, Rect{X: 0, Y: 618, Width: 1000, Height: 382}, ex)

	in, ex = Split(r, SectorBottom)
	assert.Equal(t, Rect{X: 0, Y: 382, Width: 1000, Height: 618}, in)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 1000, Height: 382}, ex)
}

func TestSplitFits(t *testing.T) {
	narrow := Rect{X: 618, Y: 0, Width: 382, Height: 600}

	assert.True(t, SplitFits(narrow, SectorRight, 100))
	assert.False(t, SplitFits(narrow, SectorRight, 200), "146px remainder")
	assert.False(t, SplitFits(narrow, SectorLeft, 200))
	assert.True(t, SplitFits(narrow, SectorTop, 200))
	assert.True(t, SplitFits(narrow, SectorBottom, 200))

	// Zero still refuses pieces without area.
	assert.False(t, SplitFits(Rect{Width: 1, Height: 600}, SectorLeft, 0))
	assert.True(t, SplitFits(Rect{Width: 2, Height: 600}, SectorLeft, 0))
}
