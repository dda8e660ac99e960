// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package eval provides the public API of the srep evaluator.
//
// Example:
//
//	reg := eval.NewRegistry[float64]()
//	reg.Add("u", 0, tensor.Identity[float64](tensor.Shape{5}, 1))
//	reg.Add("u", 1, tensor.Identity[float64](tensor.Shape{5}, 1))
//	out, err := eval.Eval("e0()=u0(s0)u1(s0)", reg, eval.DefaultConfig())
package eval

import (
	"github.com/born-ml/mera/internal/eval"
	"github.com/born-ml/mera/internal/srep"
	"github.com/born-ml/mera/internal/tensor"
)

// Config configures an Evaluator.
type Config = eval.Config

// Key identifies a tensor by name and id.
type Key = eval.Key

// Handle is a storage index into a Registry.
type Handle = eval.Handle

// Registry maps (name, id) keys to tensors.
type Registry[T tensor.Scalar] = eval.Registry[T]

// Evaluator computes the output tensor of an equation.
type Evaluator[T tensor.Scalar] = eval.Evaluator[T]

// LookupError reports a (name, id) pair missing from the registry.
type LookupError = eval.LookupError

// UnsupportedShapeError reports an operand the evaluator cannot handle.
type UnsupportedShapeError = eval.UnsupportedShapeError

// Sentinel errors.
var (
	ErrLookup           = eval.ErrLookup
	ErrUnsupportedShape = eval.ErrUnsupportedShape
	ErrDuplicate        = eval.ErrDuplicate
)

// DefaultConfig returns a leaf-mode configuration without logging.
func DefaultConfig() Config {
	return eval.DefaultConfig()
}

// NewRegistry creates an empty registry.
func NewRegistry[T tensor.Scalar]() *Registry[T] {
	return eval.NewRegistry[T]()
}

// New creates an evaluator for eq against reg.
func New[T tensor.Scalar](eq *srep.Equation, reg *Registry[T], cfg Config) (*Evaluator[T], error) {
	return eval.New(eq, reg, cfg)
}

// Eval parses text, evaluates it and returns the output tensor.
func Eval[T tensor.Scalar](text string, reg *Registry[T], cfg Config) (*tensor.Dense[T], error) {
	return eval.Eval(text, reg, cfg)
}
