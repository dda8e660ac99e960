// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mera/internal/tensor"
)

// Type aliases for public API

// Scalar is a constraint for tensor element types.
// Supported types: float32, float64, complex64, complex128.
type Scalar = tensor.Scalar

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32    DataType = tensor.Float32
	Float64    DataType = tensor.Float64
	Complex64  DataType = tensor.Complex64
	Complex128 DataType = tensor.Complex128
)

// Shape represents the per-leg dimensions of a tensor, input legs first.
// Example: Shape{2, 2, 4} with 2 inputs is u(a,b|c).
type Shape = tensor.Shape

// Dense is a dense tensor with input legs followed by output legs.
type Dense[T Scalar] = tensor.Dense[T]

// New creates a zero-filled tensor whose first ins legs are inputs.
func New[T Scalar](dims Shape, ins int) (*Dense[T], error) {
	return tensor.New[T](dims, ins)
}

// NewScalar creates a tensor without legs.
func NewScalar[T Scalar]() *Dense[T] {
	return tensor.NewScalar[T]()
}

// Zeros creates a zero-filled tensor. It panics on an invalid shape.
func Zeros[T Scalar](dims Shape, ins int) *Dense[T] {
	return tensor.Zeros[T](dims, ins)
}

// Ones creates a tensor filled with ones.
func Ones[T Scalar](dims Shape, ins int) *Dense[T] {
	return tensor.Ones[T](dims, ins)
}

// Identity creates a tensor with ones where all index components are equal.
//
// Example:
//
//	i5 := tensor.Identity[float64](tensor.Shape{5}, 1) // all ones
func Identity[T Scalar](dims Shape, ins int) *Dense[T] {
	return tensor.Identity[T](dims, ins)
}

// FromValues creates a tensor from real and imaginary parts in storage order.
func FromValues[T Scalar](dims Shape, ins int, realParts, imagParts []float64) (*Dense[T], error) {
	return tensor.FromValues[T](dims, ins, realParts, imagParts)
}

// Rand creates a tensor with reproducible uniform values in [-1, 1).
func Rand[T Scalar](dims Shape, ins int, seed uint64) *Dense[T] {
	return tensor.Rand[T](dims, ins, seed)
}

// Conj returns the complex conjugate of v; real values are unchanged.
func Conj[T Scalar](v T) T {
	return tensor.Conj(v)
}

// ToMatrix copies a rank-2 real tensor into a gonum matrix.
func ToMatrix(d *Dense[float64]) (*mat.Dense, error) {
	return tensor.ToMatrix(d)
}

// FromMatrix copies a gonum matrix into a tensor with one input and one output leg.
func FromMatrix(m mat.Matrix) *Dense[float64] {
	return tensor.FromMatrix(m)
}
