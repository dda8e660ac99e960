// Package eval evaluates srep equations against concrete dense tensors.
//
// Example:
//
//	reg := eval.NewRegistry[float64]()
//	reg.Add("u", 0, tensor.Identity[float64](tensor.Shape{5}, 1))
//	reg.Add("u", 1, tensor.Identity[float64](tensor.Shape{5}, 1))
//	out, err := eval.Eval("e0()=u0(s0)u1(s0)", reg, eval.DefaultConfig())
//	// out.Data()[0] == 5
//
// Evaluation is brute force: cost grows with the product of the dimensions of
// all summed legs. Config.Breakup trades temporary storage for a bounded index
// space per step.
package eval
