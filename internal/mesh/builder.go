package mesh

import (
	"fmt"

	"pcb-tracer/internal/routeio"
	"pcb-tracer/pkg/geometry"
)

// Target is a connection endpoint that pins a cell's available layer set to
// the target's own layer when the cell lies fully inside an obstacle on at
// least one of its layers.
type Target struct {
	Point          geometry.Point2D
	Z              int
	ConnectionName string
}

type obstacleRecord struct {
	rect        geometry.Rect
	availableZ  map[int]bool
	connectedTo []string
}

func (o obstacleRecord) coversZ(z int) bool {
	return o.availableZ[z]
}

// DefaultMaxDepth is used when the caller has no board-derived depth budget.
// It is deep enough that a 100x100 unit board reaches sub-unit cell sizes.
const DefaultMaxDepth = 8

// Builder performs the stepwise adaptive quad-tree subdivision described in
// SPEC_FULL §4.2. Each call to Step pops one unfinished cell from the
// worklist and produces its children, mirroring the flood-fill/BFS "explicit
// frontier, not recursion" style used elsewhere in this codebase for
// resumable, cancellable traversals.
type Builder struct {
	MaxDepth int

	obstacles []obstacleRecord
	targets   []Target

	idCounter int
	worklist  []*Cell
	finished  []*Cell

	bounds geometry.Rect
}

// NewBuilder constructs a Builder rooted at doc's bounds. maxDepth caps xy
// subdivision; the caller is expected to derive it from minTraceWidth (the
// core treats it as an opaque, already-decided integer, per SPEC_FULL §4.2).
func NewBuilder(doc routeio.SimpleRouteJson, maxDepth int) *Builder {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}

	b := &Builder{
		MaxDepth: maxDepth,
		bounds:   doc.Bounds.Rect(),
	}

	for _, obs := range doc.Obstacles {
		rec := obstacleRecord{
			rect:        obs.Rect(),
			availableZ:  map[int]bool{},
			connectedTo: obs.ConnectedTo,
		}
		for _, l := range obs.Layers {
			if z, ok := geometry.LayerNameToZ(l); ok {
				rec.availableZ[z] = true
			}
		}
		b.obstacles = append(b.obstacles, rec)
	}

	for _, conn := range doc.Connections {
		for _, p := range conn.PointsToConnect {
			z, ok := geometry.LayerNameToZ(p.Layer)
			if !ok {
				continue
			}
			b.targets = append(b.targets, Target{
				Point:          geometry.Point2D{X: p.X, Y: p.Y},
				Z:              z,
				ConnectionName: conn.Name,
			})
		}
	}

	root := &Cell{
		ID:         b.nextID(),
		Center:     b.bounds.Center(),
		Width:      b.bounds.Width,
		Height:     b.bounds.Height,
		AvailableZ: []int{0, 1},
		Depth:      0,
	}
	b.annotate(root)
	b.worklist = append(b.worklist, root)

	return b
}

func (b *Builder) nextID() CellID {
	id := CellID(fmt.Sprintf("cell_%d", b.idCounter))
	b.idCounter++
	return id
}

// Done reports whether the worklist is empty (SPEC_FULL §4.2 termination).
func (b *Builder) Done() bool {
	return len(b.worklist) == 0
}

// Finished returns the finalized leaf cells built so far.
func (b *Builder) Finished() []*Cell {
	return b.finished
}

// Build runs Step until Done, then returns the finished cells. Callers that
// want cooperative stepping (SPEC_FULL §5) should call Step directly instead.
func (b *Builder) Build() []*Cell {
	for !b.Done() {
		b.Step()
	}
	return b.finished
}

// Step pops one unfinished cell and produces its children, per SPEC_FULL
// §4.2's "Child generation" algorithm. It performs no I/O and returns
// immediately once the worklist item has been processed, so a driver can
// interleave Step calls with visualization or timeboxing (SPEC_FULL §5).
func (b *Builder) Step() {
	if b.Done() {
		return
	}

	n := len(b.worklist) - 1
	parent := b.worklist[n]
	b.worklist = b.worklist[:n]

	children := b.quadrantChildren(parent)

	var retained []*Cell
	for _, c := range children {
		b.annotate(c)
		if c.ShouldBeInGraph() {
			retained = append(retained, c)
			continue
		}
		if len(c.AvailableZ) > 1 {
			retained = append(retained, b.zSubdivisionChildren(c)...)
		}
		// else: fully obstructed, single layer, no target — discard.
	}

	for _, c := range retained {
		b.resolveChild(c)
	}
}

// quadrantChildren computes the four half-size quadrant children of parent,
// each inheriting both layers.
func (b *Builder) quadrantChildren(parent *Cell) []*Cell {
	hw, hh := parent.Width/2, parent.Height/2
	qw, qh := hw/2, hh/2
	cx, cy := parent.Center.X, parent.Center.Y

	offsets := [4]geometry.Point2D{
		{X: -qw, Y: -qh}, // top-left
		{X: qw, Y: -qh},  // top-right
		{X: -qw, Y: qh},  // bottom-left
		{X: qw, Y: qh},   // bottom-right
	}

	children := make([]*Cell, 4)
	for i, off := range offsets {
		children[i] = &Cell{
			ID:         b.nextID(),
			Center:     geometry.Point2D{X: cx + off.X, Y: cy + off.Y},
			Width:      hw,
			Height:     hh,
			AvailableZ: []int{0, 1},
			Depth:      parent.Depth + 1,
			ParentID:   parent.ID,
		}
	}
	return children
}

// zSubdivisionChildren emits one single-layer cell per layer currently
// available in c, filtered to those that should remain in the graph
// (SPEC_FULL §4.2 "Z-subdivision").
func (b *Builder) zSubdivisionChildren(c *Cell) []*Cell {
	var out []*Cell
	for _, z := range c.AvailableZ {
		sub := &Cell{
			ID:         b.nextID(),
			Center:     c.Center,
			Width:      c.Width,
			Height:     c.Height,
			AvailableZ: []int{z},
			Depth:      c.Depth,
			ParentID:   c.ParentID,
		}
		b.annotate(sub)
		if sub.ShouldBeInGraph() {
			out = append(out, sub)
		}
	}
	return out
}

// annotate fills in the obstacle/target-derived fields of c from scratch,
// based on c's current geometry and AvailableZ.
func (b *Builder) annotate(c *Cell) {
	rect := c.Rect()

	c.ContainsObstacle = false
	for _, o := range b.obstacles {
		if geometry.RectsOverlap(rect, o.rect) {
			c.ContainsObstacle = true
			break
		}
	}

	c.CompletelyInsideObstacle = true
	for _, z := range c.AvailableZ {
		if !b.layerFullyObstructed(rect, z) {
			c.CompletelyInsideObstacle = false
			break
		}
	}

	c.ContainsTarget = false
	c.TargetConnectionName = ""
	for _, t := range b.targets {
		if geometry.PointInRect(t.Point, rect) {
			c.ContainsTarget = true
			c.TargetConnectionName = t.ConnectionName
			pinned := c.CompletelyInsideObstacle
			for _, z := range c.AvailableZ {
				if b.layerFullyObstructed(rect, z) {
					pinned = true
					break
				}
			}
			if pinned {
				c.AvailableZ = []int{t.Z}
				c.CompletelyInsideObstacle = b.layerFullyObstructed(rect, t.Z)
			}
			break
		}
	}
}

// layerFullyObstructed reports whether rect is entirely covered by a single
// obstacle present on layer z. Obstacles in this domain are non-overlapping
// component footprints, so single-obstacle containment is the correct test
// once the quad-tree has subdivided down to an obstacle's boundary; a cell
// straddling two obstacles' union without either individually covering it
// is, by construction, not yet fully obstructed and gets subdivided further.
func (b *Builder) layerFullyObstructed(rect geometry.Rect, z int) bool {
	for _, o := range b.obstacles {
		if o.coversZ(z) && geometry.RectContainsRect(o.rect, rect) {
			return true
		}
	}
	return false
}

// resolveChild applies SPEC_FULL §4.2 step 3's disposition to a single
// retained child: subdivide further, or finalize (possibly after a final
// z-split when depth is exhausted mid-obstacle).
func (b *Builder) resolveChild(c *Cell) {
	shouldXYSubdivide := c.Depth < b.MaxDepth &&
		(c.ContainsTarget ||
			(c.ContainsObstacle && !c.CompletelyInsideObstacle) ||
			c.SingleLayer())

	if shouldXYSubdivide {
		b.worklist = append(b.worklist, c)
		return
	}

	switch {
	case !c.ContainsObstacle:
		b.finished = append(b.finished, c)
	case c.ContainsTarget:
		b.finished = append(b.finished, c)
	case len(c.AvailableZ) > 1:
		// Depth exhausted while still straddling an obstacle: fall back to
		// per-layer resolution instead of leaving a multi-layer cell that
		// falsely claims both layers are equally routable here.
		for _, sub := range b.zSubdivisionChildren(c) {
			b.finished = append(b.finished, sub)
		}
	default:
		b.finished = append(b.finished, c)
	}
}
