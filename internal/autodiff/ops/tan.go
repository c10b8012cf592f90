package ops

import "math"

// TanOp represents the tangent operation: y = tan(x).
//
// Backward pass:
//   - d(tan(x))/dx = 1 + tan²(x) = 1 + y²
type TanOp struct{}

// NewTanOp creates a new TanOp.
func NewTanOp() *TanOp {
	return &TanOp{}
}

// Forward returns tan(x).
func (op *TanOp) Forward(in []float64) float64 {
	return math.Tan(in[0])
}

// Backward returns [grad * (1 + y²)].
func (op *TanOp) Backward(_ []float64, out, grad float64) []float64 {
	return []float64{grad * (1 + out*out)}
}

// Name returns "tan".
func (op *TanOp) Name() string {
	return "tan"
}

// AtanOp represents the arctangent: y = atan(x).
//
// Backward pass:
//   - d(atan(x))/dx = 1 / (1 + x²)
type AtanOp struct{}

// NewAtanOp creates a new AtanOp.
func NewAtanOp() *AtanOp {
	return &AtanOp{}
}

// Forward returns atan(x).
func (op *AtanOp) Forward(in []float64) float64 {
	return math.Atan(in[0])
}

// Backward returns [grad / (1 + x²)].
func (op *AtanOp) Backward(in []float64, _, grad float64) []float64 {
	x := in[0]
	return []float64{grad / (1 + x*x)}
}

// Name returns "atan".
func (op *AtanOp) Name() string {
	return "atan"
}
