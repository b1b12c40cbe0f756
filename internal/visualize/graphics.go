// Package visualize implements the debug interface named in SPEC_FULL §6:
// every core component can produce a GraphicsObject (points, lines, rects,
// circles, optionally labeled and colored) and this package can rasterize
// one to a PNG for inspection outside the pipeline.
package visualize

import (
	"image/color"

	"pcb-tracer/pkg/colorutil"
	"pcb-tracer/pkg/geometry"
)

// LabeledPoint is a single point marker.
type LabeledPoint struct {
	P     geometry.Point2D
	Label string
	Color color.RGBA
}

// LabeledLine is a single line segment marker.
type LabeledLine struct {
	A, B  geometry.Point2D
	Label string
	Color color.RGBA
}

// LabeledRect is a single rectangle marker.
type LabeledRect struct {
	R      geometry.Rect
	Label  string
	Color  color.RGBA
	Filled bool
}

// LabeledCircle is a single circle marker.
type LabeledCircle struct {
	Center geometry.Point2D
	Radius float64
	Label  string
	Color  color.RGBA
}

// GraphicsObject is the debug interface's output shape (SPEC_FULL §6.1).
type GraphicsObject struct {
	Points  []LabeledPoint
	Lines   []LabeledLine
	Rects   []LabeledRect
	Circles []LabeledCircle
}

func (g *GraphicsObject) AddPoint(p geometry.Point2D, label string, c color.RGBA) {
	g.Points = append(g.Points, LabeledPoint{P: p, Label: label, Color: c})
}

func (g *GraphicsObject) AddLine(a, b geometry.Point2D, label string, c color.RGBA) {
	g.Lines = append(g.Lines, LabeledLine{A: a, B: b, Label: label, Color: c})
}

func (g *GraphicsObject) AddRect(r geometry.Rect, label string, c color.RGBA, filled bool) {
	g.Rects = append(g.Rects, LabeledRect{R: r, Label: label, Color: c, Filled: filled})
}

func (g *GraphicsObject) AddCircle(center geometry.Point2D, radius float64, label string, c color.RGBA) {
	g.Circles = append(g.Circles, LabeledCircle{Center: center, Radius: radius, Label: label, Color: c})
}

// Merge appends other's markers onto g, useful for composing per-cell or
// per-candidate visualizations into one scene.
func (g *GraphicsObject) Merge(other GraphicsObject) {
	g.Points = append(g.Points, other.Points...)
	g.Lines = append(g.Lines, other.Lines...)
	g.Rects = append(g.Rects, other.Rects...)
	g.Circles = append(g.Circles, other.Circles...)
}

// ColorMap assigns a stable, visually distinct color to each connection
// name it has seen, falling back to blue for the empty/unassigned name
// (SPEC_FULL §6: "colors are keyed by connectionName ... default fallback
// blue"). Colors come from colorutil.PaletteColor in first-seen order.
type ColorMap struct {
	byName map[string]color.RGBA
	seen   int
}

func NewColorMap() *ColorMap {
	return &ColorMap{byName: map[string]color.RGBA{}}
}

func (c *ColorMap) Color(connectionName string) color.RGBA {
	if connectionName == "" {
		return colorutil.Blue
	}
	if col, ok := c.byName[connectionName]; ok {
		return col
	}
	col := colorutil.PaletteColor(c.seen)
	c.seen++
	c.byName[connectionName] = col
	return col
}

// MutableColor and ImmutableColor implement the mutable=green/immutable=red
// convention from SPEC_FULL §6.
var (
	MutableColor   = colorutil.Green
	ImmutableColor = colorutil.Red
)
