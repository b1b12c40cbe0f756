package unravel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcb-tracer/internal/section"
)

func candidateTestSection() *section.UnravelSection {
	a := &section.SegmentPoint{ID: "A", SegmentID: "s1", X: 0, Y: 0, Z: 0, ConnectionName: "net1"}
	b := &section.SegmentPoint{ID: "B", SegmentID: "s2", X: 10, Y: 10, Z: 0, ConnectionName: "net1"}
	return &section.UnravelSection{
		SegmentPointMap: pointMap(a, b),
	}
}

// Testable property 7 / scenario S4 (deduplication): two operation
// sequences that produce identical fully-resolved point state must yield
// the same candidateFullHash, even though their modification maps differ
// in history (e.g. [flip A, flip A] vs []).
func TestCandidateFullHash_IdenticalStateSameHash(t *testing.T) {
	sec := candidateTestSection()

	empty := candidateFullHash(sec, Modifications{})

	flippedTwice := Apply(sec, Modifications{}, Operation{Kind: OpChangeLayer, NewZ: 1, Targets: []section.SegmentPointID{"A"}})
	flippedTwice = Apply(sec, flippedTwice, Operation{Kind: OpChangeLayer, NewZ: 0, Targets: []section.SegmentPointID{"A"}})

	assert.Equal(t, empty, candidateFullHash(sec, flippedTwice))
}

func TestCandidateHash_DiffersOnDifferentModifications(t *testing.T) {
	sec := candidateTestSection()
	base := candidateHash(Modifications{})
	changed := Apply(sec, Modifications{}, Operation{Kind: OpChangeLayer, NewZ: 1, Targets: []section.SegmentPointID{"A"}})
	assert.NotEqual(t, base, candidateHash(changed))
}

func TestCandidateHash_OrderIndependent(t *testing.T) {
	sec := candidateTestSection()
	m1 := Apply(sec, Modifications{}, Operation{Kind: OpChangeLayer, NewZ: 1, Targets: []section.SegmentPointID{"A"}})
	m1 = Apply(sec, m1, Operation{Kind: OpChangeLayer, NewZ: 1, Targets: []section.SegmentPointID{"B"}})

	m2 := Apply(sec, Modifications{}, Operation{Kind: OpChangeLayer, NewZ: 1, Targets: []section.SegmentPointID{"B"}})
	m2 = Apply(sec, m2, Operation{Kind: OpChangeLayer, NewZ: 1, Targets: []section.SegmentPointID{"A"}})

	assert.Equal(t, candidateHash(m1), candidateHash(m2))
}

func TestNewInitialCandidate_EmptyModificationsZeroCost(t *testing.T) {
	sec := candidateTestSection()
	c := NewInitialCandidate(sec, NewCapacityModel())
	assert.Empty(t, c.Issues)
	assert.Equal(t, 0.0, c.G)
	assert.Equal(t, 0.0, c.F)
}
