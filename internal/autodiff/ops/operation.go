// Package ops defines the scalar operations recorded on a trace.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: computes the output value from the input values
//   - Backward pass: computes input adjoints given the output adjoint
//
// Supported operations:
//   - AddOp, SubOp, MulOp, DivOp: binary arithmetic
//   - AddScalarOp, MulScalarOp: affine maps with a fixed constant
//   - NegOp, PowOp, SquareOp: unary algebra
//   - ExpOp, LogOp, SqrtOp: exponentials and roots
//   - SinOp, CosOp, TanOp, AtanOp, TanhOp: trigonometric functions
//   - AbsOp: absolute value (subgradient 0 at the kink)
package ops

// Operation represents a differentiable scalar operation in the trace.
// Operations are stateless with respect to the values they see: the trace
// passes input values in on both passes, so the same operation can be
// replayed at any point.
type Operation interface {
	// Forward computes the output value for the given input values.
	Forward(in []float64) float64

	// Backward computes adjoints for the inputs given the output adjoint.
	// Returns a slice with one entry per input.
	//
	// Example for MulOp:
	//   in: [a, b]
	//   grad: dL/d(a*b)
	//   returns: [grad*b, grad*a]
	Backward(in []float64, out, grad float64) []float64

	// Name returns a short operator name used when rendering traces.
	Name() string
}
