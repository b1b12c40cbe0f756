package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/routeio"
	"pcb-tracer/internal/section"
	"pcb-tracer/internal/unravel"
)

// SectionResult pairs one Section Builder output with the solver run over
// it, for callers that want per-section detail (e.g. cmd/unraveldebug).
type SectionResult struct {
	RootNodeID mesh.CellID
	Section    *section.UnravelSection
	Solver     *unravel.Solver
}

// Result is the end-to-end debug driver's output (SPEC_FULL §2.2
// "pipeline.Run").
type Result struct {
	RunID     string
	Cells     []*mesh.Cell
	Adjacency *mesh.Adjacency
	Sections  []SectionResult
}

// Options configures a Run. Zero values select the packages' own defaults.
type Options struct {
	MaxDepth      int
	MutableHops   int
	MaxIterations int
	Cost          unravel.CostConstants
}

// Run sequences Mesh Builder -> stub cell router -> Section Builder (rooted
// at every mesh node that borders an obstacle-adjacent target) -> Unravel
// Solver (run to completion or MAX_ITERATIONS), matching the data flow in
// SPEC_FULL §2 and the root-selection policy in §2.2.
func Run(doc routeio.SimpleRouteJson, opts Options) (*Result, error) {
	builder := mesh.NewBuilder(doc, opts.MaxDepth)
	cells := builder.Build()
	adj := mesh.BuildAdjacency(cells)

	if err := StubAssignCrossingPoints(doc, cells, adj); err != nil {
		return nil, fmt.Errorf("pipeline: stub cell router: %w", err)
	}

	model := unravel.NewCapacityModelWithCostConstants(opts.Cost)

	res := &Result{
		RunID:     uuid.NewString(),
		Cells:     cells,
		Adjacency: adj,
	}

	for _, root := range obstacleAdjacentTargetRoots(cells, adj) {
		sec, err := section.Build(root, cells, doc.MinTraceWidth, adj, opts.MutableHops)
		if err != nil {
			continue // root not actually present in adj (shouldn't happen); skip rather than fail the run
		}
		solver := unravel.NewSolver(sec, model, opts.MaxIterations)
		solver.Run()
		res.Sections = append(res.Sections, SectionResult{RootNodeID: root, Section: sec, Solver: solver})
	}

	return res, nil
}

// obstacleAdjacentTargetRoots implements the heuristic root-selection
// policy named in SPEC_FULL §2.2: every cell that both contains a
// connection endpoint and touches an obstacle, together with every mesh
// node sharing a segment with it.
func obstacleAdjacentTargetRoots(cells []*mesh.Cell, adj *mesh.Adjacency) []mesh.CellID {
	seen := map[mesh.CellID]bool{}
	var roots []mesh.CellID
	for _, c := range cells {
		if !c.ContainsTarget || !c.ContainsObstacle {
			continue
		}
		for _, segID := range adj.NodeIDToSegmentIDs[c.ID] {
			for _, n := range adj.SegmentIDToNodeIDs[segID] {
				if !seen[n] {
					seen[n] = true
					roots = append(roots, n)
				}
			}
		}
	}
	return roots
}
