package section

import (
	"fmt"

	"pcb-tracer/internal/mesh"
)

// DefaultMutableHops is the Section Builder's default MUTABLE_HOPS
// (SPEC_FULL §6).
const DefaultMutableHops = 1

// Build constructs the UnravelSection rooted at rootNodeID, following the
// BFS-then-index construction order of SPEC_FULL §4.3. It is grounded on the
// same BFS-with-frontier style internal/trace's flood fill used for image
// exploration, applied here to the mesh's node/segment adjacency instead of
// image pixels.
func Build(rootNodeID mesh.CellID, cells []*mesh.Cell, minTraceWidth float64, adj *mesh.Adjacency, mutableHops int) (*UnravelSection, error) {
	if mutableHops <= 0 {
		mutableHops = DefaultMutableHops
	}
	if _, ok := adj.NodeIDToSegmentIDs[rootNodeID]; !ok {
		return nil, fmt.Errorf("section: root node %q not present in mesh adjacency", rootNodeID)
	}

	dist := bfsNodeDistances(rootNodeID, adj)

	cellByID := make(map[mesh.CellID]*mesh.Cell, len(cells))
	for _, c := range cells {
		cellByID[c.ID] = c
	}

	s := &UnravelSection{
		RootNodeID:             rootNodeID,
		MutableSegmentIDs:      map[mesh.SegmentID]bool{},
		SegmentPointMap:        map[SegmentPointID]*SegmentPoint{},
		SegmentPointsInNode:    map[mesh.CellID][]SegmentPointID{},
		SegmentPointsInSegment: map[mesh.SegmentID][]SegmentPointID{},
		SegmentPairsInNode:     map[mesh.CellID][]PointPair{},
		Cells:                  map[mesh.CellID]*mesh.Cell{},
		MinTraceWidth:          minTraceWidth,
	}

	for node, d := range dist {
		if d <= mutableHops+1 {
			s.AllNodeIDs = append(s.AllNodeIDs, node)
		}
		if d <= mutableHops {
			s.MutableNodeIDs = append(s.MutableNodeIDs, node)
		}
	}
	mutableSet := toSet(s.MutableNodeIDs)
	for _, n := range s.AllNodeIDs {
		if !mutableSet[n] {
			s.ImmutableNodeIDs = append(s.ImmutableNodeIDs, n)
		}
	}

	allNodeSet := toSet(s.AllNodeIDs)
	for _, n := range s.AllNodeIDs {
		if c, ok := cellByID[n]; ok {
			s.Cells[n] = c
		}
	}

	// Segments relevant to the section: those incident to any in-scope node.
	relevantSegs := map[mesh.SegmentID]bool{}
	for _, n := range s.AllNodeIDs {
		for _, segID := range adj.NodeIDToSegmentIDs[n] {
			relevantSegs[segID] = true
		}
	}
	for _, n := range s.MutableNodeIDs {
		for _, segID := range adj.NodeIDToSegmentIDs[n] {
			s.MutableSegmentIDs[segID] = true
		}
	}

	// Step 2: collect every assigned point on every relevant segment.
	spCounter := 0
	for segID := range relevantSegs {
		seg := adj.SegmentByID(segID)
		if seg == nil {
			continue
		}
		nodeIDs := adj.SegmentIDToNodeIDs[segID]
		for _, ap := range seg.AssignedPoints {
			// Keep points with at least one incident cell in scope; a
			// point on a segment that straddles the section boundary but
			// whose far node is out of scope is still valid (the segment
			// itself was reached from an in-scope node).
			if !allNodeSet[nodeIDs[0]] && !allNodeSet[nodeIDs[1]] {
				continue
			}
			id := SegmentPointID(fmt.Sprintf("SP%d", spCounter))
			spCounter++
			sp := &SegmentPoint{
				ID:                  id,
				SegmentID:           segID,
				CapacityMeshNodeIDs: nodeIDs,
				X:                   ap.X,
				Y:                   ap.Y,
				Z:                   ap.Z,
				ConnectionName:      ap.ConnectionName,
			}
			s.SegmentPointMap[id] = sp
			s.SegmentPointsInSegment[segID] = append(s.SegmentPointsInSegment[segID], id)
			for _, n := range nodeIDs {
				if allNodeSet[n] {
					s.SegmentPointsInNode[n] = append(s.SegmentPointsInNode[n], id)
				}
			}
		}
	}

	// Step 4: directly-connected pairs — same connection, different
	// segment, sharing at least one incident cell.
	for _, a := range s.SegmentPointMap {
		for _, b := range s.SegmentPointMap {
			if a.ID == b.ID || a.SegmentID == b.SegmentID || a.ConnectionName != b.ConnectionName {
				continue
			}
			if sharesNode(a, b) {
				a.DirectlyConnectedSegmentPointIDs = append(a.DirectlyConnectedSegmentPointIDs, b.ID)
			}
		}
	}

	// Step 5: segmentPairsInNode, deduplicated unordered pairs.
	for _, n := range s.AllNodeIDs {
		seen := map[PointPair]bool{}
		pts := s.SegmentPointsInNode[n]
		for _, aID := range pts {
			a := s.SegmentPointMap[aID]
			for _, bID := range a.DirectlyConnectedSegmentPointIDs {
				b := s.SegmentPointMap[bID]
				if !belongsToNode(b, n) {
					continue
				}
				pair := normalizePair(aID, bID)
				if seen[pair] {
					continue
				}
				seen[pair] = true
				s.SegmentPairsInNode[n] = append(s.SegmentPairsInNode[n], pair)
			}
		}
	}

	return s, nil
}

func belongsToNode(sp *SegmentPoint, n mesh.CellID) bool {
	return sp.CapacityMeshNodeIDs[0] == n || sp.CapacityMeshNodeIDs[1] == n
}

func sharesNode(a, b *SegmentPoint) bool {
	for _, na := range a.CapacityMeshNodeIDs {
		for _, nb := range b.CapacityMeshNodeIDs {
			if na == nb {
				return true
			}
		}
	}
	return false
}

func normalizePair(a, b SegmentPointID) PointPair {
	if a < b {
		return PointPair{A: a, B: b}
	}
	return PointPair{A: b, B: a}
}

func toSet(ids []mesh.CellID) map[mesh.CellID]bool {
	m := make(map[mesh.CellID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// bfsNodeDistances computes, for every node reachable from root, its hop
// distance through the segment-adjacency graph (alternating node-segment
// steps count as one hop per node, per SPEC_FULL §4.3).
func bfsNodeDistances(root mesh.CellID, adj *mesh.Adjacency) map[mesh.CellID]int {
	dist := map[mesh.CellID]int{root: 0}
	queue := []mesh.CellID{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, segID := range adj.NodeIDToSegmentIDs[n] {
			nodes := adj.SegmentIDToNodeIDs[segID]
			for _, other := range nodes {
				if other == n {
					continue
				}
				if _, seen := dist[other]; !seen {
					dist[other] = dist[n] + 1
					queue = append(queue, other)
				}
			}
		}
	}
	return dist
}
