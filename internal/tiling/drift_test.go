package tiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDrift(t *testing.T) {
	reg := NewRegistry[int]()
	reg.Add(1, Rect{X: 0, Y: 0, Width: 618, Height: 600})
	reg.Add(2, Rect{X: 618, Y: 0, Width: 382, Height: 600})
	reg.Add(3, Rect{X: 0, Y: 600, Width: 100, Height: 100})

	inset := func(r Rect) Rect { return r.Inset(8) }
	actual := map[int]Rect{
		1: {X: 10, Y: 7, Width: 602, Height: 584}, // within 2px of the padded rect
		2: {X: 700, Y: 8, Width: 366, Height: 584},
	}
	geometry := func(h int) (Rect, bool) {
		r, ok := actual[h]
		return r, ok
	}

	report := DetectDrift(reg, geometry, inset, DefaultDriftTolerance)

	assert.True(t, report.HasDrift())
	assert.Equal(t, []int{2}, report.Drifted)
	assert.Equal(t, []int{3}, report.Unknown)
}

func TestDetectDrift_NoExpectCompareRaw(t *testing.T) {
	reg := NewRegistry[int]()
	reg.Add(1, Rect{X: 0, Y: 0, Width: 100, Height: 100})

	report := DetectDrift(reg, func(int) (Rect, bool) {
		return Rect{X: 0, Y: 0, Width: 103, Height: 100}, true
	}, nil, 2)
	assert.Equal(t, []int{1}, report.Drifted)
}
