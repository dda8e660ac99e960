// Package srep implements the symbolic tensor-network notation used by the
// evaluator.
//
// A network is written as concatenated stanzas, one per tensor:
//
//	u0(f0,f1|s0)u1(f2,f3|s1,s2)w0(s0,s1|s3)w1(s2|s4)r(s3,s4)
//
// Each leg tag is free ("f3": shared with the output signature), summed
// ("s0": contracted, present on exactly two legs) or dummy ("7": always
// evaluated at index 0). An Equation names the output tensor on its left:
//
//	e0(f0|f1)=a0(f0|s0)b0(s0|f1)
//
// The package provides parsing, rendering, contraction, conjugation, tag
// simplification, canonicalization and the Breakup planner that turns a
// long product into pairwise steps.
package srep
