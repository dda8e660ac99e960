package tensor

import (
	"fmt"
	"math/rand/v2"
)

// Zeros creates a zero-filled tensor. It panics on an invalid shape.
//
// Example:
//
//	t := tensor.Zeros[float64](Shape{3, 4}, 1)
func Zeros[T Scalar](dims Shape, ins int) *Dense[T] {
	d, err := New[T](dims, ins)
	if err != nil {
		panic(err)
	}
	return d
}

// Ones creates a tensor filled with ones.
func Ones[T Scalar](dims Shape, ins int) *Dense[T] {
	return Full[T](dims, ins, One[T]())
}

// Full creates a tensor filled with a specific value.
func Full[T Scalar](dims Shape, ins int, value T) *Dense[T] {
	d := Zeros[T](dims, ins)
	d.Fill(value)
	return d
}

// Identity creates a tensor with ones where all index components are equal.
//
// Example:
//
//	i5 := tensor.Identity[float64](Shape{5}, 1) // all ones
//	i2 := tensor.Identity[float64](Shape{2, 2}, 1) // 2x2 identity
func Identity[T Scalar](dims Shape, ins int) *Dense[T] {
	d := Zeros[T](dims, ins)
	d.SetToIdentity(One[T]())
	return d
}

// FromValues creates a tensor from real (and, for complex types, imaginary)
// parts in storage order. imagParts may be nil.
func FromValues[T Scalar](dims Shape, ins int, realParts, imagParts []float64) (*Dense[T], error) {
	d, err := New[T](dims, ins)
	if err != nil {
		return nil, err
	}
	if len(realParts) != len(d.data) {
		return nil, fmt.Errorf("got %d values for %d elements", len(realParts), len(d.data))
	}
	if imagParts != nil && len(imagParts) != len(d.data) {
		return nil, fmt.Errorf("got %d imaginary parts for %d elements", len(imagParts), len(d.data))
	}
	for i, re := range realParts {
		im := 0.0
		if imagParts != nil {
			im = imagParts[i]
		}
		d.data[i] = fromParts[T](re, im)
	}
	return d, nil
}

// Rand creates a tensor with values drawn uniformly from [-1, 1) using a
// seeded generator, so runs are reproducible.
// Note: Uses math/rand (not crypto/rand) - values are test data, not secrets.
func Rand[T Scalar](dims Shape, ins int, seed uint64) *Dense[T] {
	d := Zeros[T](dims, ins)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // G404: reproducible test data
	complexType := d.DType().IsComplex()
	for i := range d.data {
		re := 2*rng.Float64() - 1
		im := 0.0
		if complexType {
			im = 2*rng.Float64() - 1
		}
		d.data[i] = fromParts[T](re, im)
	}
	return d
}

func fromParts[T Scalar](re, im float64) T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(float32(re)).(T)
	case float64:
		return any(re).(T)
	case complex64:
		return any(complex64(complex(re, im))).(T)
	case complex128:
		return any(complex(re, im)).(T)
	default:
		panic("unsupported type")
	}
}
