package ops

import "math"

// TanhOp represents the hyperbolic tangent: y = tanh(x).
//
// Backward pass:
//   - d(tanh(x))/dx = 1 - tanh²(x) = 1 - y²
type TanhOp struct{}

// NewTanhOp creates a new TanhOp.
func NewTanhOp() *TanhOp {
	return &TanhOp{}
}

// Forward returns tanh(x).
func (op *TanhOp) Forward(in []float64) float64 {
	return math.Tanh(in[0])
}

// Backward returns [grad * (1 - y²)].
func (op *TanhOp) Backward(_ []float64, out, grad float64) []float64 {
	return []float64{grad * (1 - out*out)}
}

// Name returns "tanh".
func (op *TanhOp) Name() string {
	return "tanh"
}
