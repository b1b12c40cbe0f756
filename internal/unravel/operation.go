package unravel

import "pcb-tracer/internal/section"

// OperationKind tags the two edit shapes a candidate may apply.
type OperationKind int

const (
	OpChangeLayer OperationKind = iota
	OpSwapPosition
)

// Operation is a local edit proposed in response to an Issue. For
// OpChangeLayer, Targets holds every point to retarget to NewZ. For
// OpSwapPosition, Targets holds exactly [X, Y].
type Operation struct {
	Kind    OperationKind
	NewZ    int
	Targets []section.SegmentPointID
}

// OperationsForIssue generates the candidate operations for a single issue,
// already filtered to those touching only mutable segments (SPEC_FULL §4.4:
// "operations that would touch immutable segments are filtered out").
func OperationsForIssue(sec *section.UnravelSection, issue Issue) []Operation {
	var ops []Operation
	switch issue.Kind {
	case IssueTransitionVia:
		ops = transitionViaOperations(sec, issue)
	case IssueSameLayerCrossing:
		ops = crossingOperations(sec, issue)
	default:
		return nil
	}
	return filterMutable(sec, ops)
}

func transitionViaOperations(sec *section.UnravelSection, issue Issue) []Operation {
	a := sec.Point(issue.A)
	b := sec.Point(issue.B)
	var ops []Operation
	if sec.IsMutableSegment(a.SegmentID) {
		ops = append(ops, Operation{Kind: OpChangeLayer, NewZ: issue.Bz, Targets: []section.SegmentPointID{issue.A}})
	}
	if sec.IsMutableSegment(b.SegmentID) {
		ops = append(ops, Operation{Kind: OpChangeLayer, NewZ: issue.Az, Targets: []section.SegmentPointID{issue.B}})
	}
	return ops
}

func crossingOperations(sec *section.UnravelSection, issue Issue) []Operation {
	a := sec.Point(issue.A)
	b := sec.Point(issue.B)
	c := sec.Point(issue.C)
	d := sec.Point(issue.D)

	var ops []Operation

	// Up to four swaps between a point on line1 and a point on line2 that
	// already share a segment.
	line1 := []*section.SegmentPoint{a, b}
	line2 := []*section.SegmentPoint{c, d}
	for _, x := range line1 {
		for _, y := range line2 {
			if x.SegmentID == y.SegmentID {
				ops = append(ops, Operation{Kind: OpSwapPosition, Targets: []section.SegmentPointID{x.ID, y.ID}})
			}
		}
	}

	// Whole-line flips.
	ops = append(ops,
		Operation{Kind: OpChangeLayer, NewZ: flip(issue.Az), Targets: []section.SegmentPointID{issue.A, issue.B}},
		Operation{Kind: OpChangeLayer, NewZ: flip(issue.Cz), Targets: []section.SegmentPointID{issue.C, issue.D}},
	)

	// Individual flips.
	ops = append(ops,
		Operation{Kind: OpChangeLayer, NewZ: flip(issue.Az), Targets: []section.SegmentPointID{issue.A}},
		Operation{Kind: OpChangeLayer, NewZ: flip(issue.Bz), Targets: []section.SegmentPointID{issue.B}},
		Operation{Kind: OpChangeLayer, NewZ: flip(issue.Cz), Targets: []section.SegmentPointID{issue.C}},
		Operation{Kind: OpChangeLayer, NewZ: flip(issue.Dz), Targets: []section.SegmentPointID{issue.D}},
	)

	return ops
}

// flip implements the board's two-layer ¬z.
func flip(z int) int {
	if z == 0 {
		return 1
	}
	return 0
}

func filterMutable(sec *section.UnravelSection, ops []Operation) []Operation {
	var out []Operation
	for _, op := range ops {
		if allTargetsMutable(sec, op.Targets) {
			out = append(out, op)
		}
	}
	return out
}

func allTargetsMutable(sec *section.UnravelSection, targets []section.SegmentPointID) bool {
	for _, id := range targets {
		sp := sec.Point(id)
		if sp == nil || !sec.IsMutableSegment(sp.SegmentID) {
			return false
		}
	}
	return true
}

// Apply produces a new modifications map implementing op on top of mods
// (SPEC_FULL §4.4 "applyOperationToPointModifications").
func Apply(sec *section.UnravelSection, mods Modifications, op Operation) Modifications {
	next := mods.Clone()
	switch op.Kind {
	case OpChangeLayer:
		for _, id := range op.Targets {
			ov := next[id]
			ov.Z = intPtr(op.NewZ)
			next[id] = ov
		}
	case OpSwapPosition:
		x, y := op.Targets[0], op.Targets[1]
		xx, xy, _ := Resolve(sec, mods, x)
		yx, yy, _ := Resolve(sec, mods, y)
		ovx := next[x]
		ovx.X, ovx.Y = floatPtr(yx), floatPtr(yy)
		next[x] = ovx
		ovy := next[y]
		ovy.X, ovy.Y = floatPtr(xx), floatPtr(xy)
		next[y] = ovy
	}
	return next
}
