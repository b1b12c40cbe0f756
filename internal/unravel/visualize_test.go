package unravel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/section"
	"pcb-tracer/internal/visualize"
)

func TestVisualize_ColorsMutableGreenAndImmutableRed(t *testing.T) {
	mutableCell := &mesh.Cell{ID: "m1", Center: pt(0, 0), Width: 1, Height: 1, AvailableZ: []int{0}}
	immutableCell := &mesh.Cell{ID: "i1", Center: pt(5, 5), Width: 1, Height: 1, AvailableZ: []int{0}}
	sec := &section.UnravelSection{
		AllNodeIDs:       []mesh.CellID{"m1", "i1"},
		MutableNodeIDs:   []mesh.CellID{"m1"},
		ImmutableNodeIDs: []mesh.CellID{"i1"},
		Cells: map[mesh.CellID]*mesh.Cell{
			"m1": mutableCell,
			"i1": immutableCell,
		},
		SegmentPointMap:    map[section.SegmentPointID]*section.SegmentPoint{},
		SegmentPairsInNode: map[mesh.CellID][]section.PointPair{},
	}
	c := &Candidate{Modifications: Modifications{}}

	g := Visualize(sec, c, visualize.NewColorMap())

	require.Len(t, g.Rects, 2)
	var gotMutable, gotImmutable bool
	for _, r := range g.Rects {
		switch r.Color {
		case visualize.MutableColor:
			gotMutable = true
			assert.Equal(t, mutableCell.Rect(), r.R)
		case visualize.ImmutableColor:
			gotImmutable = true
			assert.Equal(t, immutableCell.Rect(), r.R)
		}
	}
	assert.True(t, gotMutable, "expected a mutable (green) cell rect")
	assert.True(t, gotImmutable, "expected an immutable (red) cell rect")
}
