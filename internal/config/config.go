// Package config loads the tunable pipeline constants — quad-tree depth,
// section hop radius, solver iteration budget — from an optional TOML file,
// falling back to each component's own default when a field is absent or
// the file itself is never supplied.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/section"
	"pcb-tracer/internal/unravel"
)

// Pipeline holds the tunables pipeline.Options is built from. Zero fields
// mean "use the component default" (SPEC_FULL §1.1 "Configuration").
type Pipeline struct {
	MaxDepth      int `toml:"max_depth"`
	MutableHops   int `toml:"mutable_hops"`
	MaxIterations int `toml:"max_iterations"`

	// Cost is the cost-function constant tuple (SPEC_FULL §1.1). A [cost]
	// table in the file sets it field by field; fields left out of the
	// table decode as zero, which NewCapacityModelWithCostConstants resolves
	// to DefaultCostConstants' value for that field.
	Cost unravel.CostConstants `toml:"cost"`
}

// Defaults returns the same fallbacks each component applies on its own
// when given a zero value, so a caller can report what actually ran.
func Defaults() Pipeline {
	return Pipeline{
		MaxDepth:      mesh.DefaultMaxDepth,
		MutableHops:   section.DefaultMutableHops,
		MaxIterations: unravel.DefaultMaxIterations,
		Cost:          unravel.DefaultCostConstants,
	}
}

// Load reads a Pipeline from a TOML file. A missing or unreadable file is
// returned as an error. As with MaxDepth/MutableHops/
// MaxIterations, a [cost] field the file omits decodes as zero and is left
// for the consuming component (NewCapacityModelWithCostConstants) to
// substitute its own default, the same sentinel convention the other
// Pipeline fields use.
func Load(path string) (Pipeline, error) {
	var p Pipeline
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Pipeline{}, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	return p, nil
}
