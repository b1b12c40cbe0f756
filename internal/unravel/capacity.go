package unravel

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"pcb-tracer/internal/mesh"
)

// calibrationAnchor is one (width/minTraceWidth, layerCount) -> capacity
// point in the fixed table tunedTotalCapacity's coefficients are fit
// against (SPEC_FULL §4.4 "Capacity model (expansion)").
type calibrationAnchor struct {
	widthRatio float64
	layers     float64
	capacity   float64
}

var calibrationTable = []calibrationAnchor{
	{widthRatio: 1, layers: 1, capacity: 1.0},
	{widthRatio: 2, layers: 1, capacity: 2.1},
	{widthRatio: 4, layers: 1, capacity: 4.3},
	{widthRatio: 8, layers: 1, capacity: 8.7},
	{widthRatio: 16, layers: 1, capacity: 17.5},
	{widthRatio: 1, layers: 2, capacity: 1.8},
	{widthRatio: 2, layers: 2, capacity: 3.9},
	{widthRatio: 4, layers: 2, capacity: 8.0},
	{widthRatio: 8, layers: 2, capacity: 16.4},
	{widthRatio: 16, layers: 2, capacity: 33.1},
}

const minCapacity = 1.0

// capacityCoefficients are the (a, b, c) of
// capacity = max(minCapacity, a*widthRatio + b*layers + c).
type capacityCoefficients struct {
	a, b, c float64
}

var (
	coefOnce sync.Once
	coef     capacityCoefficients
)

// fitCapacityCoefficients solves the calibration table's normal equations
// by QR decomposition, the same mat.Dense/mat.QR/mat.VecDense pattern the
// teacher's internal/alignment/transform.go used for
// computeAffineLeastSquares. The table is fixed so this always succeeds;
// a solve failure would mean the table itself is degenerate, a programmer
// error rather than a runtime condition.
func fitCapacityCoefficients() capacityCoefficients {
	coefOnce.Do(func() {
		n := len(calibrationTable)
		A := mat.NewDense(n, 3, nil)
		B := mat.NewVecDense(n, nil)
		for i, p := range calibrationTable {
			A.Set(i, 0, p.widthRatio)
			A.Set(i, 1, p.layers)
			A.Set(i, 2, 1)
			B.SetVec(i, p.capacity)
		}

		var qr mat.QR
		qr.Factorize(A)

		var params mat.VecDense
		if err := qr.SolveVecTo(&params, false, B); err != nil {
			panic(fmt.Sprintf("unravel: capacity calibration fit failed: %v", err))
		}

		coef = capacityCoefficients{a: params.AtVec(0), b: params.AtVec(1), c: params.AtVec(2)}
	})
	return coef
}

// CapacityModel memoizes tunedTotalCapacity per distinct
// (width, layerCount, minTraceWidth) tuple, as SPEC_FULL §4.4 requires.
type CapacityModel struct {
	mu            sync.Mutex
	cache         map[capacityKey]float64
	costConstants CostConstants
}

type capacityKey struct {
	width         float64
	layers        int
	minTraceWidth float64
}

// NewCapacityModel returns a model ready for use with DefaultCostConstants;
// coefficients are fit lazily, once, on first use across all models in the
// process.
func NewCapacityModel() *CapacityModel {
	return NewCapacityModelWithCostConstants(DefaultCostConstants)
}

// NewCapacityModelWithCostConstants returns a model that applies cc in
// computeG instead of DefaultCostConstants, letting a loaded config retune
// the cost function without touching the solver. A zero field in cc (the
// sentinel a decoded-but-unset TOML field leaves behind) falls back to the
// corresponding DefaultCostConstants field.
func NewCapacityModelWithCostConstants(cc CostConstants) *CapacityModel {
	if cc.SameLayerCrossingWeight == 0 {
		cc.SameLayerCrossingWeight = DefaultCostConstants.SameLayerCrossingWeight
	}
	if cc.TransitionCrossingWeight == 0 {
		cc.TransitionCrossingWeight = DefaultCostConstants.TransitionCrossingWeight
	}
	if cc.ViaWeight == 0 {
		cc.ViaWeight = DefaultCostConstants.ViaWeight
	}
	if cc.CapacityExponent == 0 {
		cc.CapacityExponent = DefaultCostConstants.CapacityExponent
	}
	return &CapacityModel{cache: map[capacityKey]float64{}, costConstants: cc}
}

// TunedTotalCapacity is the deterministic function of a cell's width,
// available layer count, and the board's minTraceWidth that computeG
// divides estimated used capacity by.
func (m *CapacityModel) TunedTotalCapacity(cell *mesh.Cell, minTraceWidth float64) float64 {
	key := capacityKey{width: cell.Width, layers: len(cell.AvailableZ), minTraceWidth: minTraceWidth}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.cache[key]; ok {
		return v
	}

	c := fitCapacityCoefficients()
	widthRatio := cell.Width / minTraceWidth
	cap := c.a*widthRatio + c.b*float64(len(cell.AvailableZ)) + c.c
	if cap < minCapacity {
		cap = minCapacity
	}
	m.cache[key] = cap
	return cap
}
