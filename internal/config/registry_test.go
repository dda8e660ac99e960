package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mera/internal/eval"
	"github.com/born-ml/mera/internal/serialization"
	"github.com/born-ml/mera/internal/tensor"
)

func TestNewTensor(t *testing.T) {
	tests := []struct {
		name string
		tc   TensorConfig
		want []float64
	}{
		{"zero", TensorConfig{Name: "a", Ins: 1, Dims: []int{2}, Init: InitZero}, []float64{0, 0}},
		{"ones", TensorConfig{Name: "a", Ins: 1, Dims: []int{2}, Init: InitOnes}, []float64{1, 1}},
		{"identity", TensorConfig{Name: "a", Ins: 1, Dims: []int{2, 2}, Init: InitIdentity}, []float64{1, 0, 0, 1}},
		{"values", TensorConfig{Name: "a", Ins: 0, Dims: []int{3}, Init: InitValues, Values: []float64{1, 2, 3}}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewTensor[float64](tt.tc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Data())
			assert.Equal(t, tt.tc.Ins, d.Ins())
		})
	}
}

func TestNewTensorRandom(t *testing.T) {
	tc := TensorConfig{Name: "a", Ins: 1, Dims: []int{2, 3}, Init: InitRandom, Seed: 9}
	a, err := NewTensor[complex128](tc)
	require.NoError(t, err)
	b, err := NewTensor[complex128](tc)
	require.NoError(t, err)
	assert.Equal(t, a.Data(), b.Data())
	assert.Equal(t, tensor.Shape{2, 3}, a.Shape())

	_, err = NewTensor[float64](TensorConfig{Name: "a", Dims: []int{0}, Init: InitRandom})
	assert.Error(t, err)
}

func TestBuildRegistry(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	reg, err := BuildRegistry[complex128](cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, reg.Len())

	h, ok := reg.Lookup("m", 0)
	require.True(t, ok)
	assert.Equal(t, []complex128{1, 2 + 1i, 3, 4 - 1i}, reg.Tensor(h).Data())

	out, err := eval.Eval("e0()=u0(s0)u0(s0)", reg, eval.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, complex128(5), out.Data()[0])
}

func TestBuildRegistryError(t *testing.T) {
	cfg := Default()
	cfg.Tensors = []TensorConfig{{Name: "a", Dims: []int{2}, Init: InitValues, Values: []float64{1}}}

	_, err := BuildRegistry[float64](&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tensor a0")
}

func TestNewTensorFromFile(t *testing.T) {
	src := eval.NewRegistry[float64]()
	w, err := tensor.FromValues[float64](tensor.Shape{2, 2}, 1, []float64{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	_, err = src.Add("w", 2, w)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prev.mera")
	require.NoError(t, serialization.Save(path, src, nil))

	cfg, err := Parse(strings.NewReader("tensors: [{name: w, id: 2, init: file, file: " + path + "}]"))
	require.NoError(t, err)
	reg, err := BuildRegistry[complex128](cfg)
	require.NoError(t, err)

	h, ok := reg.Lookup("w", 2)
	require.True(t, ok)
	assert.Equal(t, []complex128{1, 2, 3, 4}, reg.Tensor(h).Data())
	assert.Equal(t, 1, reg.Tensor(h).Ins())

	_, err = Parse(strings.NewReader("tensors: [{name: w, init: file}]"))
	assert.Error(t, err)

	_, err = NewTensor[float64](TensorConfig{Name: "x", Init: InitFile, File: path})
	assert.ErrorIs(t, err, eval.ErrLookup)
}
