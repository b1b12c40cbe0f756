package unravel

import (
	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/section"
	"pcb-tracer/pkg/geometry"
)

// IssueKind tags the variants of UnravelIssue (SPEC_FULL §3).
type IssueKind int

const (
	IssueTransitionVia IssueKind = iota
	IssueSameLayerCrossing
	IssueSingleTransitionCrossing
	IssueDoubleTransitionCrossing
	IssueSameLayerTraceImbalanceWithLowCapacity
)

func (k IssueKind) String() string {
	switch k {
	case IssueTransitionVia:
		return "transition_via"
	case IssueSameLayerCrossing:
		return "same_layer_crossing"
	case IssueSingleTransitionCrossing:
		return "single_transition_crossing"
	case IssueDoubleTransitionCrossing:
		return "double_transition_crossing"
	case IssueSameLayerTraceImbalanceWithLowCapacity:
		return "same_layer_trace_imbalance_with_low_capacity"
	default:
		return "unknown"
	}
}

// Issue is a single detected problem attached to one cell. A, B hold the
// transition_via pair (or the first crossing line's endpoints); C, D hold
// the second crossing line's endpoints and are empty SegmentPointIDs for
// every other kind. The Az..Dz fields freeze the resolved layer each point
// sat on at detection time, so operation generation never has to re-resolve
// against the modifications map that produced this issue.
type Issue struct {
	Kind   IssueKind
	NodeID mesh.CellID

	A, B         section.SegmentPointID
	C, D         section.SegmentPointID
	Az, Bz       int
	Cz, Dz       int
}

// GetIssuesInSection is a pure function of (sec, mods): calling it twice
// with identical inputs yields identical issue lists, order aside
// (SPEC_FULL §4.4, testable property "issue idempotence").
func GetIssuesInSection(sec *section.UnravelSection, mods Modifications) []Issue {
	var issues []Issue
	for _, node := range sec.AllNodeIDs {
		issues = append(issues, issuesForNode(sec, mods, node)...)
	}
	return issues
}

type resolvedLine struct {
	pair   section.PointPair
	ax, ay float64
	bx, by float64
	z      int
}

func issuesForNode(sec *section.UnravelSection, mods Modifications, node mesh.CellID) []Issue {
	var issues []Issue
	var lines []resolvedLine

	for _, pair := range sec.SegmentPairsInNode[node] {
		ax, ay, az := Resolve(sec, mods, pair.A)
		bx, by, bz := Resolve(sec, mods, pair.B)
		if az != bz {
			issues = append(issues, Issue{
				Kind: IssueTransitionVia, NodeID: node,
				A: pair.A, B: pair.B, Az: az, Bz: bz,
			})
			continue
		}
		lines = append(lines, resolvedLine{pair: pair, ax: ax, ay: ay, bx: bx, by: by, z: az})
	}

	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			l1, l2 := lines[i], lines[j]
			if l1.z != l2.z {
				continue
			}
			p1a := geometry.Point2D{X: l1.ax, Y: l1.ay}
			p1b := geometry.Point2D{X: l1.bx, Y: l1.by}
			p2a := geometry.Point2D{X: l2.ax, Y: l2.ay}
			p2b := geometry.Point2D{X: l2.bx, Y: l2.by}
			if geometry.SegmentsIntersect(p1a, p1b, p2a, p2b) {
				issues = append(issues, Issue{
					Kind: IssueSameLayerCrossing, NodeID: node,
					A: l1.pair.A, B: l1.pair.B, Az: l1.z, Bz: l1.z,
					C: l2.pair.A, D: l2.pair.B, Cz: l2.z, Dz: l2.z,
				})
			}
		}
	}

	return issues
}
