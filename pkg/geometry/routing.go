package geometry

// PointInRect reports whether p lies inside r, inclusive of the boundary.
// This is the same test as Rect.Contains; it is exposed as a free function
// to match the vocabulary routing code expects (point_in_rect).
func PointInRect(p Point2D, r Rect) bool {
	return r.Contains(p)
}

// RectsOverlap reports whether a and b overlap on a region of positive area.
// Rectangles that only share an edge or a corner do not overlap.
func RectsOverlap(a, b Rect) bool {
	return a.Intersects(b)
}

// NewRectFromCenter builds a Rect from a center point and full width/height,
// the representation capacity-mesh cells are specified in.
func NewRectFromCenter(center Point2D, width, height float64) Rect {
	return Rect{
		X:      center.X - width/2,
		Y:      center.Y - height/2,
		Width:  width,
		Height: height,
	}
}

// RectContainsRect reports whether b is fully covered by a.
func RectContainsRect(a, b Rect) bool {
	return b.X >= a.X && b.Y >= a.Y &&
		b.X+b.Width <= a.X+a.Width &&
		b.Y+b.Height <= a.Y+a.Height
}

// onSegment reports whether point q, known to be collinear with p and r,
// lies within the bounding box of segment p-r.
func onSegment(p, q, r Point2D) bool {
	return q.X <= max(p.X, r.X) && q.X >= min(p.X, r.X) &&
		q.Y <= max(p.Y, r.Y) && q.Y >= min(p.Y, r.Y)
}

func orientation(p, q, r Point2D) float64 {
	return crossProduct(p, q, r)
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// SegmentsIntersect reports whether segment a1-a2 strictly crosses segment
// b1-b2 in their shared interior. Segments that merely touch at a shared
// endpoint (the common case for two traces that cross a cell through the
// same SegmentPoint) do NOT count as intersecting — only a transversal
// crossing of the open segments does.
//
// Uses the standard orientation-based bounds check so that collinear-overlap
// and touching-endpoint cases are correctly excluded rather than reported as
// crossings.
func SegmentsIntersect(a1, a2, b1, b2 Point2D) bool {
	o1 := sign(orientation(a1, a2, b1))
	o2 := sign(orientation(a1, a2, b2))
	o3 := sign(orientation(b1, b2, a1))
	o4 := sign(orientation(b1, b2, a2))

	if o1 != o2 && o3 != o4 && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return true
	}

	// Collinear special cases: a touching/overlapping configuration along a
	// shared line is never a "crossing" in the routing sense, so it reports
	// no intersection.
	return false
}

func samePoint(a, b Point2D) bool {
	return a.X == b.X && a.Y == b.Y
}

// Layer names for the two-layer board this core supports (Non-goals, SPEC_FULL §1).
const (
	LayerNameTop    = "top"
	LayerNameBottom = "bottom"
)

// LayerNameToZ maps a declared layer name to its z index. Only "top" (z=0)
// and "bottom" (z=1) are recognized, matching the two-layer Non-goal.
func LayerNameToZ(name string) (int, bool) {
	switch name {
	case LayerNameTop:
		return 0, true
	case LayerNameBottom:
		return 1, true
	default:
		return 0, false
	}
}

// ZToLayerName is the inverse of LayerNameToZ.
func ZToLayerName(z int) (string, bool) {
	switch z {
	case 0:
		return LayerNameTop, true
	case 1:
		return LayerNameBottom, true
	default:
		return "", false
	}
}
