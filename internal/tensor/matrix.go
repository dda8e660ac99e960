package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToMatrix copies a rank-2 real tensor into a gonum matrix, rows indexed by
// leg 0 and columns by leg 1.
func ToMatrix(d *Dense[float64]) (*mat.Dense, error) {
	if d.Args() != 2 {
		return nil, fmt.Errorf("tensor has %d legs, matrix view needs 2", d.Args())
	}
	data := make([]float64, len(d.data))
	copy(data, d.data)
	return mat.NewDense(d.shape[0], d.shape[1], data), nil
}

// FromMatrix copies a gonum matrix into a tensor with one input leg (rows)
// and one output leg (columns).
func FromMatrix(m mat.Matrix) *Dense[float64] {
	r, c := m.Dims()
	d := Zeros[float64](Shape{r, c}, 1)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.data[i*c+j] = m.At(i, j)
		}
	}
	return d
}
