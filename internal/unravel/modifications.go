package unravel

import "pcb-tracer/internal/section"

// PointOverride holds the fields an operation has overridden on top of a
// SegmentPoint's baseline (x, y, z). A nil field means "use the baseline
// value" — overrides accumulate rather than replace wholesale.
type PointOverride struct {
	X *float64
	Y *float64
	Z *int
}

// Modifications is a candidate's pointModifications overlay (SPEC_FULL §3).
type Modifications map[section.SegmentPointID]PointOverride

// Clone returns a shallow copy: a new map, sharing PointOverride values.
// Safe because overrides are never mutated in place — every edit replaces
// the whole PointOverride entry with a freshly built one.
func (m Modifications) Clone() Modifications {
	out := make(Modifications, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Resolve returns id's effective (x, y, z) under mods: baseline values from
// the section, with any overridden field replaced.
func Resolve(sec *section.UnravelSection, mods Modifications, id section.SegmentPointID) (x, y float64, z int) {
	base := sec.Point(id)
	x, y, z = base.X, base.Y, base.Z
	ov, ok := mods[id]
	if !ok {
		return
	}
	if ov.X != nil {
		x = *ov.X
	}
	if ov.Y != nil {
		y = *ov.Y
	}
	if ov.Z != nil {
		z = *ov.Z
	}
	return
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
