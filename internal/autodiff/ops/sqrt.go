package ops

import "math"

// SqrtOp represents the square root: y = sqrt(x).
//
// Backward pass:
//   - d(sqrt(x))/dx = 1 / (2 * sqrt(x)) = 1 / (2y)
type SqrtOp struct{}

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp() *SqrtOp {
	return &SqrtOp{}
}

// Forward returns sqrt(x).
func (op *SqrtOp) Forward(in []float64) float64 {
	return math.Sqrt(in[0])
}

// Backward returns [grad / (2y)]. The derivative is +Inf at x = 0.
func (op *SqrtOp) Backward(_ []float64, out, grad float64) []float64 {
	return []float64{grad / (2 * out)}
}

// Name returns "sqrt".
func (op *SqrtOp) Name() string {
	return "sqrt"
}
