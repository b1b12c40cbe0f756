package routeio

import (
	"encoding/json"
	"fmt"
	"os"

	"pcb-tracer/pkg/geometry"
)

// Load reads and validates a SimpleRouteJson document from path.
func Load(path string) (SimpleRouteJson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SimpleRouteJson{}, fmt.Errorf("read route file: %w", err)
	}

	var doc SimpleRouteJson
	if err := json.Unmarshal(data, &doc); err != nil {
		return SimpleRouteJson{}, fmt.Errorf("unmarshal route file: %w", err)
	}

	if err := Validate(doc); err != nil {
		return SimpleRouteJson{}, fmt.Errorf("invalid route file: %w", err)
	}

	return doc, nil
}

// Validate rejects malformed input up front (SPEC_FULL §7): an unsupported
// layer count, obstacles or connections naming a layer the board doesn't
// declare, and connection points that fall outside bounds. The core does not
// attempt to recover from any of these; the caller must fix the input.
func Validate(doc SimpleRouteJson) error {
	if doc.LayerCount != 2 {
		return fmt.Errorf("layerCount must be 2, got %d", doc.LayerCount)
	}

	bounds := doc.Bounds.Rect()
	if doc.Bounds.MaxX <= doc.Bounds.MinX || doc.Bounds.MaxY <= doc.Bounds.MinY {
		return fmt.Errorf("bounds must have positive width and height")
	}

	for i, obs := range doc.Obstacles {
		if len(obs.Layers) == 0 {
			return fmt.Errorf("obstacle %d: must declare at least one layer", i)
		}
		for _, l := range obs.Layers {
			if _, ok := geometry.LayerNameToZ(l); !ok {
				return fmt.Errorf("obstacle %d: unknown layer %q", i, l)
			}
		}
	}

	for _, conn := range doc.Connections {
		if len(conn.PointsToConnect) < 2 {
			return fmt.Errorf("connection %q: needs at least 2 points, got %d", conn.Name, len(conn.PointsToConnect))
		}
		for j, p := range conn.PointsToConnect {
			if _, ok := geometry.LayerNameToZ(p.Layer); !ok {
				return fmt.Errorf("connection %q point %d: unknown layer %q", conn.Name, j, p.Layer)
			}
			pt := geometry.Point2D{X: p.X, Y: p.Y}
			if !geometry.PointInRect(pt, bounds) {
				return fmt.Errorf("connection %q point %d: (%g,%g) outside bounds", conn.Name, j, p.X, p.Y)
			}
		}
	}

	return nil
}
