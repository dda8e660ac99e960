package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestToMatrix(t *testing.T) {
	d, err := FromValues[float64](Shape{2, 3}, 1, []float64{1, 2, 3, 4, 5, 6}, nil)
	require.NoError(t, err)

	m, err := ToMatrix(d)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, m.At(1, 2))
	assert.Equal(t, 2.0, m.At(0, 1))

	m.Set(0, 0, 100)
	assert.Equal(t, 1.0, d.At([]int{0, 0}), "matrix must not alias tensor storage")
}

func TestToMatrixRank(t *testing.T) {
	_, err := ToMatrix(Zeros[float64](Shape{2, 2, 2}, 1))
	assert.Error(t, err)
}

func TestFromMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	d := FromMatrix(m)

	assert.Equal(t, Shape{2, 2}, d.Shape())
	assert.Equal(t, 1, d.Ins())
	assert.Equal(t, []float64{1, 2, 3, 4}, d.Data())

	back, err := ToMatrix(d)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, back))
}
