package mesh

import (
	"fmt"

	"pcb-tracer/internal/visualize"
	"pcb-tracer/pkg/colorutil"
)

// Visualize renders every finished cell as a rect (obstacle-touching cells
// shaded, target cells labeled with their connection name), implementing
// the per-component debug interface from SPEC_FULL §6/§6.1.
func Visualize(cells []*Cell) visualize.GraphicsObject {
	var g visualize.GraphicsObject
	for _, c := range cells {
		col := colorutil.White
		filled := false
		switch {
		case c.ContainsTarget:
			col = colorutil.Cyan
		case c.CompletelyInsideObstacle:
			col = colorutil.Black
			filled = true
		case c.ContainsObstacle:
			col = colorutil.Yellow
		}
		label := ""
		if c.ContainsTarget {
			label = c.TargetConnectionName
		}
		g.AddRect(c.Rect(), label, col, filled)
		if c.ContainsTarget {
			g.AddPoint(c.Center, fmt.Sprintf("%s@z%v", c.TargetConnectionName, c.AvailableZ), colorutil.Magenta)
		}
	}
	return g
}
