package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcb-tracer/pkg/geometry"
)

func twoAdjacentCells(zA, zB []int) []*Cell {
	return []*Cell{
		{ID: "a", Center: geometry.Point2D{X: 25, Y: 50}, Width: 50, Height: 100, AvailableZ: zA},
		{ID: "b", Center: geometry.Point2D{X: 75, Y: 50}, Width: 50, Height: 100, AvailableZ: zB},
	}
}

func TestBuildAdjacency_CreatesSegmentForSharedEdge(t *testing.T) {
	cells := twoAdjacentCells([]int{0, 1}, []int{0, 1})
	adj := BuildAdjacency(cells)

	require.Len(t, adj.Segments, 1)
	seg := adj.Segments[0]
	nodes := adj.SegmentIDToNodeIDs[seg.ID]
	assert.ElementsMatch(t, []CellID{"a", "b"}, []CellID{nodes[0], nodes[1]})
	assert.Contains(t, adj.NodeIDToSegmentIDs["a"], seg.ID)
	assert.Contains(t, adj.NodeIDToSegmentIDs["b"], seg.ID)
}

func TestBuildAdjacency_NoSegmentWithoutLayerOverlap(t *testing.T) {
	cells := twoAdjacentCells([]int{0}, []int{1})
	adj := BuildAdjacency(cells)
	assert.Empty(t, adj.Segments)
}

func TestBuildAdjacency_NoSegmentForDisjointCells(t *testing.T) {
	cells := []*Cell{
		{ID: "a", Center: geometry.Point2D{X: 10, Y: 10}, Width: 10, Height: 10, AvailableZ: []int{0, 1}},
		{ID: "b", Center: geometry.Point2D{X: 90, Y: 90}, Width: 10, Height: 10, AvailableZ: []int{0, 1}},
	}
	adj := BuildAdjacency(cells)
	assert.Empty(t, adj.Segments)
}

func TestSegmentByID(t *testing.T) {
	cells := twoAdjacentCells([]int{0, 1}, []int{0, 1})
	adj := BuildAdjacency(cells)
	seg := adj.Segments[0]
	assert.Same(t, seg, adj.SegmentByID(seg.ID))
	assert.Nil(t, adj.SegmentByID("nonexistent"))
}
