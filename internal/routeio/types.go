// Package routeio defines the SimpleRouteJson input format and loads/validates it.
// Parsing itself is out of scope for the routing core (SPEC_FULL §1); this
// package exists only to give the core something concrete to build against,
// following the same load/validate shape internal/board used for board specs.
package routeio

import "pcb-tracer/pkg/geometry"

// Bounds is the board's rectangular routing region.
type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// Rect returns the bounds as a geometry.Rect.
func (b Bounds) Rect() geometry.Rect {
	return geometry.Rect{
		X:      b.MinX,
		Y:      b.MinY,
		Width:  b.MaxX - b.MinX,
		Height: b.MaxY - b.MinY,
	}
}

// Point is a board-space coordinate paired with a layer name.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Layer string  `json:"layer,omitempty"`
}

// Obstacle is an axis-aligned rectangular keep-out, tagged with the layers
// it occupies and the connections (if any) it is electrically part of.
type Obstacle struct {
	Center      Point    `json:"center"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Type        string   `json:"type"`
	Layers      []string `json:"layers"`
	ConnectedTo []string `json:"connectedTo,omitempty"`
}

// Rect returns the obstacle's footprint as a geometry.Rect.
func (o Obstacle) Rect() geometry.Rect {
	return geometry.NewRectFromCenter(geometry.Point2D{X: o.Center.X, Y: o.Center.Y}, o.Width, o.Height)
}

// HasLayer reports whether the obstacle occupies the named layer.
func (o Obstacle) HasLayer(name string) bool {
	for _, l := range o.Layers {
		if l == name {
			return true
		}
	}
	return false
}

// Connection is a named net with two or more endpoints to connect.
type Connection struct {
	Name            string  `json:"name"`
	PointsToConnect []Point `json:"pointsToConnect"`
}

// SimpleRouteJson is the routing core's only input format.
type SimpleRouteJson struct {
	Bounds        Bounds       `json:"bounds"`
	LayerCount    int          `json:"layerCount"`
	MinTraceWidth float64      `json:"minTraceWidth"`
	Obstacles     []Obstacle   `json:"obstacles"`
	Connections   []Connection `json:"connections"`
}
