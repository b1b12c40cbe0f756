package unravel

import (
	"fmt"
	"sort"

	"pcb-tracer/internal/section"
	"pcb-tracer/internal/visualize"
	"pcb-tracer/pkg/colorutil"
	"pcb-tracer/pkg/geometry"
)

// Visualize renders a candidate's resolved section state: every cell shaded
// by its mutable/immutable ownership (SPEC_FULL §6: "mutable cells render
// green, immutable red"), every segment point as a colored dot (by
// connectionName, via colors), a line for every directly-connected pair in
// the section, and a marker for every remaining issue — implementing the
// debug interface named in SPEC_FULL §6/§6.1.
func Visualize(sec *section.UnravelSection, c *Candidate, colors *visualize.ColorMap) visualize.GraphicsObject {
	var g visualize.GraphicsObject

	for _, id := range sec.MutableNodeIDs {
		if cell := sec.Cells[id]; cell != nil {
			g.AddRect(cell.Rect(), "", visualize.MutableColor, false)
		}
	}
	for _, id := range sec.ImmutableNodeIDs {
		if cell := sec.Cells[id]; cell != nil {
			g.AddRect(cell.Rect(), "", visualize.ImmutableColor, false)
		}
	}

	for _, id := range sortedPointIDs(sec) {
		sp := sec.Point(id)
		x, y, z := Resolve(sec, c.Modifications, id)
		col := colors.Color(sp.ConnectionName)
		label := fmt.Sprintf("%s@z%d", sp.ConnectionName, z)
		g.AddPoint(pt(x, y), label, col)
	}

	for _, node := range sec.AllNodeIDs {
		for _, pair := range sec.SegmentPairsInNode[node] {
			ax, ay, _ := Resolve(sec, c.Modifications, pair.A)
			bx, by, _ := Resolve(sec, c.Modifications, pair.B)
			sp := sec.Point(pair.A)
			g.AddLine(pt(ax, ay), pt(bx, by), "", colors.Color(sp.ConnectionName))
		}
	}

	for _, iss := range c.Issues {
		ax, ay, _ := Resolve(sec, c.Modifications, iss.A)
		g.AddCircle(pt(ax, ay), 1.5, iss.Kind.String(), colorutil.Yellow)
	}

	return g
}

func sortedPointIDs(sec *section.UnravelSection) []section.SegmentPointID {
	ids := make([]section.SegmentPointID, 0, len(sec.SegmentPointMap))
	for id := range sec.SegmentPointMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }
