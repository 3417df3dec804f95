package tiling

// DefaultDriftTolerance is how far, in pixels, a window may sit from its
// expected placement before it counts as drifted.
const DefaultDriftTolerance = 2

// DriftReport lists tracked handles whose actual geometry no longer matches
// the registry.
type DriftReport[H comparable] struct {
	// Drifted handles are off by more than the tolerance on any component.
	Drifted []H
	// Unknown handles had no geometry available and were skipped.
	Unknown []H
}

// HasDrift reports whether any handle drifted.
func (d DriftReport[H]) HasDrift() bool {
	return len(d.Drifted) > 0
}

// DetectDrift compares every tracked record, after applying expect, against
// the geometry reported for the handle. A nil expect compares the raw rect.
func DetectDrift[H comparable](
	reg *Registry[H],
	geometry func(H) (Rect, bool),
	expect func(Rect) Rect,
	tolerance int,
) DriftReport[H] {
	var report DriftReport[H]
	for _, rec := range reg.Records() {
		actual, ok := geometry(rec.Handle)
		if !ok {
			report.Unknown = append(report.Unknown, rec.Handle)
			continue
		}
		want := rec.Rect
		if expect != nil {
			want = expect(want)
		}
		if !actual.Near(want, tolerance) {
			report.Drifted = append(report.Drifted, rec.Handle)
		}
	}
	return report
}
