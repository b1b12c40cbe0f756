// Package pipeline sequences the routing core's components end to end:
// Mesh Builder -> stub cell router -> Section Builder -> Unravel Solver
// (SPEC_FULL §2, §2.2). Everything except the stub router is the routing
// core itself; the stub exists only so the pipeline has something to feed
// the Section Builder without a real per-node route solver.
package pipeline

import (
	"fmt"

	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/routeio"
	"pcb-tracer/pkg/geometry"
)

// StubAssignCrossingPoints is a deliberately narrow stand-in for "the
// high-density per-node route solver" (SPEC_FULL §1, §2.2). For each
// connection, it walks the shortest node path (BFS over the mesh's segment
// graph) between every pair of consecutive endpoints and appends one
// AssignedPoint, evenly spaced in index order, to each segment the path
// crosses. It never checks for overlaps or capacity; it only produces a
// legal SegmentPoint set for the Section Builder and Unravel Solver to
// operate on, and it is the only place in this package that crosses the
// black-box boundary.
func StubAssignCrossingPoints(doc routeio.SimpleRouteJson, cells []*mesh.Cell, adj *mesh.Adjacency) error {
	for _, conn := range doc.Connections {
		for i := 0; i+1 < len(conn.PointsToConnect); i++ {
			a := conn.PointsToConnect[i]
			b := conn.PointsToConnect[i+1]

			az, ok := geometry.LayerNameToZ(a.Layer)
			if !ok {
				return fmt.Errorf("pipeline: connection %q point %d has unknown layer %q", conn.Name, i, a.Layer)
			}
			bz, ok := geometry.LayerNameToZ(b.Layer)
			if !ok {
				return fmt.Errorf("pipeline: connection %q point %d has unknown layer %q", conn.Name, i+1, b.Layer)
			}

			startCell := smallestContaining(cells, geometry.Point2D{X: a.X, Y: a.Y}, az)
			endCell := smallestContaining(cells, geometry.Point2D{X: b.X, Y: b.Y}, bz)
			if startCell == nil || endCell == nil {
				return fmt.Errorf("pipeline: connection %q has an endpoint outside the mesh", conn.Name)
			}

			path := bfsCellPath(adj, startCell.ID, endCell.ID)
			if path == nil {
				continue // unreachable pair: leave this hop unassigned rather than fail the whole document
			}

			segs := segmentsAlongPath(adj, path)
			n := len(segs)
			for idx, segID := range segs {
				seg := adj.SegmentByID(segID)
				if seg == nil {
					continue
				}
				t := float64(idx+1) / float64(n+1)
				x := seg.A.X + t*(seg.B.X-seg.A.X)
				y := seg.A.Y + t*(seg.B.Y-seg.A.Y)
				seg.AssignedPoints = append(seg.AssignedPoints, mesh.AssignedPoint{
					X: x, Y: y, Z: az, ConnectionName: conn.Name,
				})
			}
		}
	}
	return nil
}

// smallestContaining returns the smallest-width cell covering p on layer z,
// so a point that falls inside nested-but-overlapping cells resolves to the
// most specific one.
func smallestContaining(cells []*mesh.Cell, p geometry.Point2D, z int) *mesh.Cell {
	var best *mesh.Cell
	for _, c := range cells {
		if !c.HasZ(z) || !geometry.PointInRect(p, c.Rect()) {
			continue
		}
		if best == nil || c.Width < best.Width {
			best = c
		}
	}
	return best
}

// bfsCellPath finds a shortest node path from start to end over adj's
// segment graph, or nil if end is unreachable.
func bfsCellPath(adj *mesh.Adjacency, start, end mesh.CellID) []mesh.CellID {
	if start == end {
		return []mesh.CellID{start}
	}
	prev := map[mesh.CellID]mesh.CellID{start: start}
	queue := []mesh.CellID{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, segID := range adj.NodeIDToSegmentIDs[n] {
			for _, other := range adj.SegmentIDToNodeIDs[segID] {
				if other == n {
					continue
				}
				if _, seen := prev[other]; seen {
					continue
				}
				prev[other] = n
				if other == end {
					return reconstructPath(prev, start, end)
				}
				queue = append(queue, other)
			}
		}
	}
	return nil
}

func reconstructPath(prev map[mesh.CellID]mesh.CellID, start, end mesh.CellID) []mesh.CellID {
	var rev []mesh.CellID
	for n := end; ; n = prev[n] {
		rev = append(rev, n)
		if n == start {
			break
		}
	}
	path := make([]mesh.CellID, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// segmentsAlongPath maps consecutive node pairs in path to the segment id
// they share.
func segmentsAlongPath(adj *mesh.Adjacency, path []mesh.CellID) []mesh.SegmentID {
	var segs []mesh.SegmentID
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		for _, segID := range adj.NodeIDToSegmentIDs[a] {
			nodes := adj.SegmentIDToNodeIDs[segID]
			if nodes[0] == b || nodes[1] == b {
				segs = append(segs, segID)
				break
			}
		}
	}
	return segs
}
