package unravel

import (
	"math"

	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/section"
)

const logEpsilon = 1e-6

// CostConstants is the weight/exponent tuple computeG applies when turning
// per-cell issue counts into an estimated via count and used capacity
// (SPEC_FULL §4.4 "Cost function computeG(issues)"). Calibrated against the
// same reference scenarios as the capacity model itself; exposed so a config
// file can retune it without touching the solver.
type CostConstants struct {
	SameLayerCrossingWeight  float64 `toml:"same_layer_crossing_weight"`
	TransitionCrossingWeight float64 `toml:"transition_crossing_weight"`
	ViaWeight                float64 `toml:"via_weight"`
	CapacityExponent         float64 `toml:"capacity_exponent"`
}

// DefaultCostConstants matches the original fixed-constant cost function.
var DefaultCostConstants = CostConstants{
	SameLayerCrossingWeight:  0.82,
	TransitionCrossingWeight: 0.41,
	ViaWeight:                0.2,
	CapacityExponent:         1.1,
}

// computeG sums the per-cell probabilistic congestion cost over every cell
// that issues reference (SPEC_FULL §4.4 "Cost function computeG(issues)").
// h is always zero in this design, so f == g.
func computeG(sec *section.UnravelSection, issues []Issue, model *CapacityModel) float64 {
	type counts struct{ Tc, Sc, Ec int }
	byCell := map[mesh.CellID]*counts{}

	touch := func(id mesh.CellID) *counts {
		c := byCell[id]
		if c == nil {
			c = &counts{}
			byCell[id] = c
		}
		return c
	}

	for _, iss := range issues {
		switch iss.Kind {
		case IssueTransitionVia:
			touch(iss.NodeID).Tc++
		case IssueSameLayerCrossing:
			touch(iss.NodeID).Sc++
		case IssueSingleTransitionCrossing, IssueDoubleTransitionCrossing:
			touch(iss.NodeID).Ec++
		}
	}

	var g float64
	for nodeID, c := range byCell {
		cell := sec.Cells[nodeID]
		if cell == nil {
			continue
		}
		cc := model.costConstants
		estVias := cc.SameLayerCrossingWeight*float64(c.Sc) + cc.TransitionCrossingWeight*float64(c.Ec) + cc.ViaWeight*float64(c.Tc)
		estUsedCapacity := math.Pow(estVias/2, cc.CapacityExponent)
		cap := model.TunedTotalCapacity(cell, sec.MinTraceWidth)
		estPf := estUsedCapacity / cap
		g += logProbability(estPf)
	}
	return g
}

// logProbability is the single fixed cost-contribution function required
// by SPEC_FULL §4.4: monotonic increasing in estPf, clipped at zero so a
// cell with no issues contributes nothing (Testable Property 6).
func logProbability(estPf float64) float64 {
	v := math.Log(math.Max(logEpsilon, estPf))
	return math.Max(0, v)
}
