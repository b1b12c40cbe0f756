package mesh

import (
	"fmt"
	"math"

	"pcb-tracer/pkg/geometry"
)

// SegmentID is a stable, monotonically-assigned segment identifier.
type SegmentID string

// AssignedPoint is a single trace's crossing point on a Segment: the raw
// material the external cell router (SPEC_FULL §1, §2.2) produces and the
// Section Builder consumes.
type AssignedPoint struct {
	X, Y           float64
	Z              int
	ConnectionName string
}

// Segment is a shared boundary between two adjacent cells (SPEC_FULL §3).
type Segment struct {
	ID             SegmentID
	NodeIDs        [2]CellID
	A, B           geometry.Point2D // the shared boundary sub-segment
	AssignedPoints []AssignedPoint
}

// Adjacency is the Mesh Builder's implicit edge relation, materialized as
// the bipartite maps the Section Builder expects (SPEC_FULL §4.3, §6).
type Adjacency struct {
	Segments           []*Segment
	NodeIDToSegmentIDs map[CellID][]SegmentID
	SegmentIDToNodeIDs map[SegmentID][2]CellID
}

func (a *Adjacency) SegmentByID(id SegmentID) *Segment {
	for _, s := range a.Segments {
		if s.ID == id {
			return s
		}
	}
	return nil
}

const edgeQuantum = 1e6

func edgeKey(v float64) int64 {
	return int64(math.Round(v * edgeQuantum))
}

// BuildAdjacency derives the segment graph over cells: two cells are
// adjacent iff they share an axis-aligned boundary of positive length and
// their AvailableZ sets overlap. Cells are bucketed by quantized boundary
// coordinate (vertical edges by shared x, horizontal edges by shared y)
// rather than compared pairwise, since a quad-tree's cells align on a
// comparatively small set of distinct edge coordinates.
func BuildAdjacency(cells []*Cell) *Adjacency {
	adj := &Adjacency{
		NodeIDToSegmentIDs: map[CellID][]SegmentID{},
		SegmentIDToNodeIDs: map[SegmentID][2]CellID{},
	}
	counter := 0
	nextSegID := func() SegmentID {
		id := SegmentID(fmt.Sprintf("seg_%d", counter))
		counter++
		return id
	}

	add := func(a, b *Cell, x0, y0, x1, y1 float64) {
		if !zOverlap(a, b) {
			return
		}
		s := &Segment{
			ID:      nextSegID(),
			NodeIDs: [2]CellID{a.ID, b.ID},
			A:       geometry.Point2D{X: x0, Y: y0},
			B:       geometry.Point2D{X: x1, Y: y1},
		}
		adj.Segments = append(adj.Segments, s)
		adj.SegmentIDToNodeIDs[s.ID] = s.NodeIDs
		adj.NodeIDToSegmentIDs[a.ID] = append(adj.NodeIDToSegmentIDs[a.ID], s.ID)
		adj.NodeIDToSegmentIDs[b.ID] = append(adj.NodeIDToSegmentIDs[b.ID], s.ID)
	}

	// Vertical boundaries: cells side by side sharing an x coordinate.
	leftEdge := map[int64][]*Cell{}
	rightEdge := map[int64][]*Cell{}
	for _, c := range cells {
		r := c.Rect()
		leftEdge[edgeKey(r.X)] = append(leftEdge[edgeKey(r.X)], c)
		rightEdge[edgeKey(r.X+r.Width)] = append(rightEdge[edgeKey(r.X+r.Width)], c)
	}
	for x, lefts := range leftEdge {
		rights, ok := rightEdge[x]
		if !ok {
			continue
		}
		for _, l := range lefts {
			lr := l.Rect()
			for _, r := range rights {
				if l.ID == r.ID {
					continue
				}
				rr := r.Rect()
				y0 := math.Max(lr.Y, rr.Y)
				y1 := math.Min(lr.Y+lr.Height, rr.Y+rr.Height)
				if y1-y0 <= 0 {
					continue
				}
				xf := float64(x) / edgeQuantum
				add(r, l, xf, y0, xf, y1)
			}
		}
	}

	// Horizontal boundaries: cells stacked sharing a y coordinate.
	topEdge := map[int64][]*Cell{}
	bottomEdge := map[int64][]*Cell{}
	for _, c := range cells {
		r := c.Rect()
		topEdge[edgeKey(r.Y)] = append(topEdge[edgeKey(r.Y)], c)
		bottomEdge[edgeKey(r.Y+r.Height)] = append(bottomEdge[edgeKey(r.Y+r.Height)], c)
	}
	for y, tops := range topEdge {
		bottoms, ok := bottomEdge[y]
		if !ok {
			continue
		}
		for _, t := range tops {
			tr := t.Rect()
			for _, bt := range bottoms {
				if t.ID == bt.ID {
					continue
				}
				br := bt.Rect()
				x0 := math.Max(tr.X, br.X)
				x1 := math.Min(tr.X+tr.Width, br.X+br.Width)
				if x1-x0 <= 0 {
					continue
				}
				yf := float64(y) / edgeQuantum
				add(bt, t, x0, yf, x1, yf)
			}
		}
	}

	return adj
}

func zOverlap(a, b *Cell) bool {
	for _, za := range a.AvailableZ {
		if b.HasZ(za) {
			return true
		}
	}
	return false
}
