package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcb-tracer/internal/unravel"
)

func TestDefaults_MatchComponentDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 8, d.MaxDepth)
	assert.Equal(t, 1, d.MutableHops)
	assert.Equal(t, 2000, d.MaxIterations)
	assert.Equal(t, unravel.DefaultCostConstants, d.Cost)
}

func TestLoad_ParsesPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth = 10\nmax_iterations = 500\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, p.MaxDepth)
	assert.Equal(t, 0, p.MutableHops)
	assert.Equal(t, 500, p.MaxIterations)
}

func TestLoad_ParsesCostTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"[cost]\nsame_layer_crossing_weight = 1.5\ncapacity_exponent = 1.2\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, p.Cost.SameLayerCrossingWeight)
	assert.Equal(t, 1.2, p.Cost.CapacityExponent)
	assert.Equal(t, 0.0, p.Cost.ViaWeight)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
