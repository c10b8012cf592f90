package ops

import "math"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type ExpOp struct{}

// NewExpOp creates a new ExpOp.
func NewExpOp() *ExpOp {
	return &ExpOp{}
}

// Forward returns exp(x).
func (op *ExpOp) Forward(in []float64) float64 {
	return math.Exp(in[0])
}

// Backward reuses the forward output since d(exp(x))/dx = exp(x).
func (op *ExpOp) Backward(_ []float64, out, grad float64) []float64 {
	return []float64{grad * out}
}

// Name returns "exp".
func (op *ExpOp) Name() string {
	return "exp"
}
