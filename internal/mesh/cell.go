// Package mesh builds the adaptive capacity mesh: a quad-tree of routing
// cells over the board plane, subdividing further where obstacles only
// partially cover a cell and splitting by layer where an obstacle blocks
// one conductor layer but leaves the other free.
package mesh

import "pcb-tracer/pkg/geometry"

// CellID is a stable, monotonically-assigned cell identifier.
type CellID string

// Cell is a capacity mesh node: an axis-aligned routing region at a given
// subdivision depth, annotated with which layers may be routed through it
// and whether it is an obstacle or a connection endpoint ("target").
type Cell struct {
	ID     CellID
	Center geometry.Point2D
	Width  float64
	Height float64

	// AvailableZ is the nonempty set of layer indices routable in this cell.
	AvailableZ []int

	ContainsObstacle         bool
	CompletelyInsideObstacle bool
	ContainsTarget           bool
	TargetConnectionName     string

	Depth int

	// ParentID is kept for debugging/visualization only; core logic never
	// walks parents (SPEC_FULL §9 — depth removes the need to).
	ParentID CellID
}

// Rect returns the cell's footprint.
func (c *Cell) Rect() geometry.Rect {
	return geometry.NewRectFromCenter(c.Center, c.Width, c.Height)
}

// HasZ reports whether z is one of the cell's available layers.
func (c *Cell) HasZ(z int) bool {
	for _, az := range c.AvailableZ {
		if az == z {
			return true
		}
	}
	return false
}

// SingleLayer reports whether the cell is the leaf result of z-subdivision.
func (c *Cell) SingleLayer() bool {
	return len(c.AvailableZ) == 1
}

// ShouldBeInGraph implements the mesh's retention invariant: a cell is kept
// iff it is not completely obstructed on all its available layers, or it
// contains a connection endpoint regardless of obstruction.
func (c *Cell) ShouldBeInGraph() bool {
	return !c.CompletelyInsideObstacle || c.ContainsTarget
}
