package tensor

import (
	"fmt"
	"strings"
)

// Dense is a dense tensor whose legs are split into inputs followed by outputs.
//
// An element is addressed by one multi-index holding a component per leg,
// the input components first. Storage is row-major over that multi-index.
type Dense[T Scalar] struct {
	shape   Shape
	strides []int
	ins     int
	data    []T
}

// New creates a zero-filled tensor with the given per-leg dimensions,
// the first ins of which are input legs.
//
// Example:
//
//	u, _ := tensor.New[float64](tensor.Shape{2, 2, 4}, 2) // u(a,b|c)
func New[T Scalar](dims Shape, ins int) (*Dense[T], error) {
	d := &Dense[T]{}
	if err := d.SetSizes(dims, ins); err != nil {
		return nil, err
	}
	return d, nil
}

// NewScalar creates a tensor with no legs holding a single zero value.
func NewScalar[T Scalar]() *Dense[T] {
	return &Dense[T]{shape: Shape{}, strides: []int{}, data: make([]T, 1)}
}

// SetSizes reshapes the tensor to dims with ins input legs. All values are
// reset to zero; storage is reused when dims are unchanged.
func (d *Dense[T]) SetSizes(dims Shape, ins int) error {
	if err := dims.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}
	if ins < 0 || ins > len(dims) {
		return fmt.Errorf("invalid input leg count %d for %d legs", ins, len(dims))
	}

	d.ins = ins
	if d.data != nil && d.shape.Equal(dims) {
		clear(d.data)
		return nil
	}
	d.shape = dims.Clone()
	d.strides = d.shape.ComputeStrides()
	d.data = make([]T, d.shape.NumElements())
	return nil
}

// Shape returns the tensor's per-leg dimensions.
func (d *Dense[T]) Shape() Shape {
	return d.shape
}

// Args returns the number of legs.
func (d *Dense[T]) Args() int {
	return len(d.shape)
}

// Ins returns the number of input legs.
func (d *Dense[T]) Ins() int {
	return d.ins
}

// Outs returns the number of output legs.
func (d *Dense[T]) Outs() int {
	return len(d.shape) - d.ins
}

// ArgSize returns the dimension of leg i.
func (d *Dense[T]) ArgSize(i int) int {
	return d.shape[i]
}

// DType returns the runtime element type.
func (d *Dense[T]) DType() DataType {
	return TypeOf[T]()
}

// NumElements returns the number of stored values.
func (d *Dense[T]) NumElements() int {
	return len(d.data)
}

// Data returns the backing slice. Mutations are visible to the tensor.
func (d *Dense[T]) Data() []T {
	return d.data
}

// Index returns the flattened storage offset of a multi-index.
// It panics if the index has the wrong length or a component is out of range.
func (d *Dense[T]) Index(idx []int) int {
	if len(idx) != len(d.shape) {
		panic(fmt.Sprintf("tensor: index has %d components, tensor has %d legs", len(idx), len(d.shape)))
	}
	offset := 0
	for i, v := range idx {
		if v < 0 || v >= d.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for leg %d of size %d", v, i, d.shape[i]))
		}
		offset += v * d.strides[i]
	}
	return offset
}

// At returns the value at a multi-index.
func (d *Dense[T]) At(idx []int) T {
	return d.data[d.Index(idx)]
}

// Set stores v at a multi-index.
func (d *Dense[T]) Set(idx []int, v T) {
	d.data[d.Index(idx)] = v
}

// AtInOut returns the value addressed by an input-index vector followed by
// an output-index vector.
func (d *Dense[T]) AtInOut(in, out []int) T {
	if len(in) != d.ins {
		panic(fmt.Sprintf("tensor: %d input components for %d input legs", len(in), d.ins))
	}
	idx := make([]int, 0, len(in)+len(out))
	idx = append(idx, in...)
	idx = append(idx, out...)
	return d.At(idx)
}

// Fill sets every value to v.
func (d *Dense[T]) Fill(v T) {
	for i := range d.data {
		d.data[i] = v
	}
}

// SetToIdentity zeroes the tensor and stores v wherever all index components
// are equal. A rank-0 or rank-1 tensor is therefore filled with v.
func (d *Dense[T]) SetToIdentity(v T) {
	if len(d.shape) <= 1 {
		d.Fill(v)
		return
	}

	d.Fill(0)
	n := d.shape[0]
	for _, dim := range d.shape[1:] {
		n = min(n, dim)
	}
	diag := 0
	for _, s := range d.strides {
		diag += s
	}
	for k := 0; k < n; k++ {
		d.data[k*diag] = v
	}
}

// Clone returns a deep copy.
func (d *Dense[T]) Clone() *Dense[T] {
	c := &Dense[T]{
		shape:   d.shape.Clone(),
		strides: append([]int(nil), d.strides...),
		ins:     d.ins,
		data:    make([]T, len(d.data)),
	}
	copy(c.data, d.data)
	return c
}

// Each calls fn for every element in storage order with its flattened offset
// and multi-index. The index slice is reused between calls.
func (d *Dense[T]) Each(fn func(offset int, idx []int, v T)) {
	idx := make([]int, len(d.shape))
	for offset, v := range d.data {
		fn(offset, idx, v)
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < d.shape[i] {
				break
			}
			idx[i] = 0
		}
	}
}

// String renders the shape and data, for debugging.
func (d *Dense[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dense[%s]%v ins=%d", d.DType(), []int(d.shape), d.ins)
	if len(d.data) <= 16 {
		fmt.Fprintf(&b, " %v", d.data)
	}
	return b.String()
}
