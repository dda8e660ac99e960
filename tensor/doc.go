// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense tensors for srep evaluation.
//
// # Overview
//
// A Dense[T] tensor has per-leg dimensions split into input legs followed by
// output legs, mirroring a stanza such as u0(f0,f1|s0). Elements are
// addressed by one multi-index, inputs first, stored row-major.
//
// # Basic Usage
//
//	import "github.com/born-ml/mera/tensor"
//
//	func main() {
//	    u := tensor.Identity[float64](tensor.Shape{2, 2}, 1)
//	    u.Set([]int{0, 1}, 0.5)
//	    m, _ := tensor.ToMatrix(u) // gonum interop for rank-2 real tensors
//	}
//
// # Supported Data Types
//
// The Scalar constraint admits float32, float64, complex64 and complex128.
// Conjugated stanzas read complex values through Conj; for real types it is a
// no-op.
package tensor
