// Package tensor provides the dense numeric storage behind srep evaluation.
package tensor

import (
	"math/cmplx"
)

// Scalar is a constraint for supported tensor element types.
// Complex types carry conjugation semantics; real types treat it as a no-op.
type Scalar interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Complex64
	Complex128
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// IsComplex reports whether conjugation changes values of this type.
func (dt DataType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// TypeOf returns the DataType of T.
func TypeOf[T Scalar]() DataType {
	var dummy T
	return inferDataType(dummy)
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T Scalar](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic("unsupported type")
	}
}

// Conj returns the complex conjugate of v. Real values are returned unchanged.
func Conj[T Scalar](v T) T {
	switch x := any(v).(type) {
	case complex64:
		return any(complex64(cmplx.Conj(complex128(x)))).(T)
	case complex128:
		return any(cmplx.Conj(x)).(T)
	default:
		return v
	}
}

// One returns the multiplicative identity of T.
func One[T Scalar]() T {
	return T(1)
}
