package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
scalar: complex
evaluator: breakup
verbose: true
h: 8
m: 2
hamiltonianConnection: [1, 1, 1, 1, 1, 1, 1, 1]
tensors:
  - {name: u, id: 0, ins: 1, dims: [5], init: identity}
  - {name: m, id: 0, ins: 1, dims: [2, 2], init: values, values: [1, 2, 3, 4], imag: [0, 1, 0, -1]}
  - {name: r, id: 1, ins: 2, dims: [2, 2], init: random, seed: 3}
  - {name: z, dims: [3]}
`

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ScalarReal, cfg.Scalar)
	assert.Equal(t, EvaluatorSlow, cfg.Evaluator)
	assert.Equal(t, 2, cfg.M)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, ScalarComplex, cfg.Scalar)
	assert.Equal(t, EvaluatorBreakup, cfg.Evaluator)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 8, cfg.H)
	assert.Len(t, cfg.HamiltonianConnection, 8)
	require.Len(t, cfg.Tensors, 4)
	assert.Equal(t, []float64{0, 1, 0, -1}, cfg.Tensors[1].Imag)
	assert.Equal(t, uint64(3), cfg.Tensors[2].Seed)
	assert.Equal(t, InitZero, cfg.Tensors[3].Init, "missing init defaults to zero")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", "scalr: real"},
		{"bad scalar", "scalar: quaternion"},
		{"bad evaluator", "evaluator: fast"},
		{"negative m", "m: -1"},
		{"malformed yaml", "tensors: [1, 2"},
		{"missing name", "tensors: [{dims: [2]}]"},
		{"zero dimension", "tensors: [{name: a, dims: [2, 0]}]"},
		{"ins out of range", "tensors: [{name: a, ins: 3, dims: [2]}]"},
		{"value count", "tensors: [{name: a, dims: [2], init: values, values: [1]}]"},
		{"imag on real", "tensors: [{name: a, dims: [1], init: values, values: [1], imag: [1]}]"},
		{"unknown init", "tensors: [{name: a, dims: [2], init: gaussian}]"},
		{"duplicate", "tensors: [{name: a, dims: [2]}, {name: a, dims: [3]}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ScalarComplex, cfg.Scalar)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scalar: x"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
