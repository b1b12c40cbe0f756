package unravel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/section"
)

func twoPointSection(zA, zB int) *section.UnravelSection {
	a := &section.SegmentPoint{ID: "A", SegmentID: "s1", X: 0, Y: 0, Z: zA, ConnectionName: "net1"}
	b := &section.SegmentPoint{ID: "B", SegmentID: "s2", X: 10, Y: 10, Z: zB, ConnectionName: "net1"}
	return &section.UnravelSection{
		SegmentPointMap: pointMap(a, b),
		MutableSegmentIDs: map[mesh.SegmentID]bool{
			"s1": true, "s2": true,
		},
	}
}

// Testable property 5 (swap involution): applying swap_position_on_segment
// twice yields the baseline positions for X and Y.
func TestApply_SwapInvolution(t *testing.T) {
	sec := twoPointSection(0, 0)
	op := Operation{Kind: OpSwapPosition, Targets: []section.SegmentPointID{"A", "B"}}

	once := Apply(sec, Modifications{}, op)
	twice := Apply(sec, once, op)

	ax, ay, _ := Resolve(sec, twice, "A")
	bx, by, _ := Resolve(sec, twice, "B")
	assert.Equal(t, 0.0, ax)
	assert.Equal(t, 0.0, ay)
	assert.Equal(t, 10.0, bx)
	assert.Equal(t, 10.0, by)
}

func TestApply_SwapExchangesPositionsOnce(t *testing.T) {
	sec := twoPointSection(0, 0)
	op := Operation{Kind: OpSwapPosition, Targets: []section.SegmentPointID{"A", "B"}}
	mods := Apply(sec, Modifications{}, op)

	ax, ay, az := Resolve(sec, mods, "A")
	bx, by, bz := Resolve(sec, mods, "B")
	assert.Equal(t, 10.0, ax)
	assert.Equal(t, 10.0, ay)
	assert.Equal(t, 0.0, bx)
	assert.Equal(t, 0.0, by)
	assert.Equal(t, 0, az) // layers are unchanged by a position swap
	assert.Equal(t, 0, bz)
}

func TestApply_ChangeLayer(t *testing.T) {
	sec := twoPointSection(0, 0)
	op := Operation{Kind: OpChangeLayer, NewZ: 1, Targets: []section.SegmentPointID{"A"}}
	mods := Apply(sec, Modifications{}, op)

	_, _, z := Resolve(sec, mods, "A")
	assert.Equal(t, 1, z)
}

func TestOperationsForIssue_TransitionVia_BothMutable(t *testing.T) {
	sec := twoPointSection(0, 1)
	issue := Issue{Kind: IssueTransitionVia, NodeID: "n1", A: "A", B: "B", Az: 0, Bz: 1}

	ops := OperationsForIssue(sec, issue)
	assert.Len(t, ops, 2)
}

func TestOperationsForIssue_TransitionVia_FiltersImmutableSegment(t *testing.T) {
	sec := twoPointSection(0, 1)
	sec.MutableSegmentIDs["s2"] = false
	issue := Issue{Kind: IssueTransitionVia, NodeID: "n1", A: "A", B: "B", Az: 0, Bz: 1}

	ops := OperationsForIssue(sec, issue)
	assert.Len(t, ops, 1)
	assert.Equal(t, []section.SegmentPointID{"A"}, ops[0].Targets)
}

func TestOperationsForIssue_TransitionVia_BothImmutableYieldsNoOperations(t *testing.T) {
	sec := twoPointSection(0, 1)
	sec.MutableSegmentIDs["s1"] = false
	sec.MutableSegmentIDs["s2"] = false
	issue := Issue{Kind: IssueTransitionVia, NodeID: "n1", A: "A", B: "B", Az: 0, Bz: 1}

	assert.Empty(t, OperationsForIssue(sec, issue))
}

func TestOperationsForIssue_SameLayerCrossing_GeneratesFlipsAndSwaps(t *testing.T) {
	a := &section.SegmentPoint{ID: "A", SegmentID: "s1", X: 0, Y: 0, Z: 0, ConnectionName: "net1"}
	b := &section.SegmentPoint{ID: "B", SegmentID: "s2", X: 10, Y: 10, Z: 0, ConnectionName: "net1"}
	c := &section.SegmentPoint{ID: "C", SegmentID: "s1", X: 0, Y: 10, Z: 0, ConnectionName: "net2"}
	d := &section.SegmentPoint{ID: "D", SegmentID: "s4", X: 10, Y: 0, Z: 0, ConnectionName: "net2"}

	sec := &section.UnravelSection{
		SegmentPointMap: pointMap(a, b, c, d),
		MutableSegmentIDs: map[mesh.SegmentID]bool{
			"s1": true, "s2": true, "s4": true,
		},
	}
	issue := Issue{Kind: IssueSameLayerCrossing, NodeID: "n1", A: "A", B: "B", Az: 0, Bz: 0, C: "C", D: "D", Cz: 0, Dz: 0}

	ops := OperationsForIssue(sec, issue)

	var swaps, flips int
	for _, op := range ops {
		if op.Kind == OpSwapPosition {
			swaps++
		} else {
			flips++
		}
	}
	// A and C share segment s1, so exactly one swap should be generated.
	assert.Equal(t, 1, swaps)
	assert.Equal(t, 6, flips) // two whole-line flips + four individual flips
}
