// Package section builds an UnravelSection: the local, hop-bounded view of
// the mesh and its assigned crossing points that the Unravel Solver
// searches over (SPEC_FULL §4.3).
package section

import "pcb-tracer/internal/mesh"

// SegmentPointID is a densely-assigned id ("SP0".."SPk") within one section.
type SegmentPointID string

// SegmentPoint is the concrete (x,y,z,connectionName) sample on a segment
// representing one trace's crossing (SPEC_FULL §3).
type SegmentPoint struct {
	ID                               SegmentPointID
	SegmentID                        mesh.SegmentID
	CapacityMeshNodeIDs              [2]mesh.CellID
	X, Y                             float64
	Z                                int
	ConnectionName                   string
	DirectlyConnectedSegmentPointIDs []SegmentPointID
}

// PointPair is an unordered pair of directly-connected segment points that
// share an incident cell — the atomic unit issue detection walks.
type PointPair struct {
	A, B SegmentPointID
}

// UnravelSection is the immutable baseline the Unravel Solver's candidates
// overlay modifications onto (SPEC_FULL §3, §5 "Resource ownership").
type UnravelSection struct {
	RootNodeID mesh.CellID

	AllNodeIDs       []mesh.CellID
	MutableNodeIDs   []mesh.CellID
	ImmutableNodeIDs []mesh.CellID

	MutableSegmentIDs map[mesh.SegmentID]bool

	SegmentPointMap        map[SegmentPointID]*SegmentPoint
	SegmentPointsInNode    map[mesh.CellID][]SegmentPointID
	SegmentPointsInSegment map[mesh.SegmentID][]SegmentPointID
	SegmentPairsInNode     map[mesh.CellID][]PointPair

	// Cells holds the baseline geometry for every node in AllNodeIDs, so
	// cost evaluation and visualization don't need a separate lookup into
	// the full mesh (SPEC_FULL §4.4's cost function is a function of the
	// cell's width, layer count and the board's minTraceWidth).
	Cells         map[mesh.CellID]*mesh.Cell
	MinTraceWidth float64
}

// IsMutableSegment reports whether a segment may be edited by a candidate.
func (s *UnravelSection) IsMutableSegment(id mesh.SegmentID) bool {
	return s.MutableSegmentIDs[id]
}

// Point resolves a SegmentPointID to its baseline record. Returns nil if id
// is not in this section — callers should treat that as a programmer error
// (SPEC_FULL §7), not a recoverable condition.
func (s *UnravelSection) Point(id SegmentPointID) *SegmentPoint {
	return s.SegmentPointMap[id]
}
