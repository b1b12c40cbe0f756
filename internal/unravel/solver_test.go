package unravel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/section"
)

// crossingSection builds a single node "n1" holding two directly-connected
// pairs (A,B) and (C,D) whose lines cross on the same layer, with A and C
// sharing a mutable segment so a single swap resolves the crossing.
func crossingSection() *section.UnravelSection {
	a := &section.SegmentPoint{ID: "A", SegmentID: "s1", X: 0, Y: 0, Z: 0, ConnectionName: "net1"}
	b := &section.SegmentPoint{ID: "B", SegmentID: "s2", X: 10, Y: 10, Z: 0, ConnectionName: "net1"}
	c := &section.SegmentPoint{ID: "C", SegmentID: "s1", X: 0, Y: 10, Z: 0, ConnectionName: "net2"}
	d := &section.SegmentPoint{ID: "D", SegmentID: "s2", X: 10, Y: 0, Z: 0, ConnectionName: "net2"}

	cell := &mesh.Cell{ID: "n1", Width: 1, AvailableZ: []int{0, 1}}

	return &section.UnravelSection{
		AllNodeIDs:      []mesh.CellID{"n1"},
		SegmentPointMap: pointMap(a, b, c, d),
		SegmentPairsInNode: map[mesh.CellID][]section.PointPair{
			"n1": {{A: "A", B: "B"}, {A: "C", B: "D"}},
		},
		MutableSegmentIDs: map[mesh.SegmentID]bool{"s1": true, "s2": true},
		Cells:             map[mesh.CellID]*mesh.Cell{"n1": cell},
		MinTraceWidth:     0.2,
	}
}

// Scenario S2 (trivial two-cell crossing): the initial candidate carries
// exactly one same_layer_crossing issue and the solver finds an
// issue-free neighbor.
func TestSolver_TrivialCrossingResolves(t *testing.T) {
	sec := crossingSection()
	model := NewCapacityModel()

	initial := NewInitialCandidate(sec, model)
	require.Len(t, initial.Issues, 1)
	assert.Equal(t, IssueSameLayerCrossing, initial.Issues[0].Kind)

	solver := NewSolver(sec, model, 200)
	best := solver.Run()

	assert.Empty(t, best.Issues)
	assert.LessOrEqual(t, best.F, initial.F)
}

// unresolvableViaSection has a single transition_via issue whose two
// endpoints both sit on immutable segments, so no operation can ever
// resolve it.
func unresolvableViaSection() *section.UnravelSection {
	a := &section.SegmentPoint{ID: "A", SegmentID: "s1", X: 0, Y: 0, Z: 0, ConnectionName: "net1"}
	b := &section.SegmentPoint{ID: "B", SegmentID: "s2", X: 1, Y: 1, Z: 1, ConnectionName: "net1"}

	cell := &mesh.Cell{ID: "n1", Width: 1, AvailableZ: []int{0, 1}}

	return &section.UnravelSection{
		AllNodeIDs:      []mesh.CellID{"n1"},
		SegmentPointMap: pointMap(a, b),
		SegmentPairsInNode: map[mesh.CellID][]section.PointPair{
			"n1": {{A: "A", B: "B"}},
		},
		MutableSegmentIDs: map[mesh.SegmentID]bool{"s1": false, "s2": false},
		Cells:             map[mesh.CellID]*mesh.Cell{"n1": cell},
		MinTraceWidth:     0.2,
	}
}

// Scenario S3 (unresolvable via): with both endpoints immutable, no
// operations are ever generated, so the solver's best candidate is
// exactly its original one.
func TestSolver_UnresolvableViaLeavesBestEqualToOriginal(t *testing.T) {
	sec := unresolvableViaSection()
	model := NewCapacityModel()

	solver := NewSolver(sec, model, 200)
	best := solver.Run()

	assert.Same(t, solver.OriginalCandidate(), best)
	assert.NotEmpty(t, best.Issues)
}

func TestSolver_DoneAfterQueueDrains(t *testing.T) {
	sec := unresolvableViaSection()
	solver := NewSolver(sec, NewCapacityModel(), 200)
	solver.Run()
	assert.True(t, solver.Done())
}

func TestSolver_RespectsMaxIterations(t *testing.T) {
	sec := crossingSection()
	solver := NewSolver(sec, NewCapacityModel(), 1)
	solver.Run()
	assert.LessOrEqual(t, solver.Iterations(), 1)
}

// Testable property 3 (section locality): every candidate reachable from
// the initial one only ever carries modifications keyed by segment points
// belonging to a segment in the section's MutableSegmentIDs.
func TestSolver_ReachableCandidatesStayWithinMutableSegments(t *testing.T) {
	sec := crossingSection()
	model := NewCapacityModel()
	solver := NewSolver(sec, model, 200)

	for !solver.Done() {
		solver.Step()
		cur := solver.LastProcessedCandidate()
		for id := range cur.Modifications {
			sp := sec.Point(id)
			require.NotNil(t, sp)
			assert.True(t, sec.IsMutableSegment(sp.SegmentID),
				"modification touches point %s on non-mutable segment %s", id, sp.SegmentID)
		}
	}
}
