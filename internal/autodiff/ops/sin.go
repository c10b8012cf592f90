package ops

import "math"

// SinOp represents the sine operation: y = sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
type SinOp struct{}

// NewSinOp creates a new SinOp.
func NewSinOp() *SinOp {
	return &SinOp{}
}

// Forward returns sin(x).
func (op *SinOp) Forward(in []float64) float64 {
	return math.Sin(in[0])
}

// Backward returns [grad * cos(x)].
func (op *SinOp) Backward(in []float64, _, grad float64) []float64 {
	return []float64{grad * math.Cos(in[0])}
}

// Name returns "sin".
func (op *SinOp) Name() string {
	return "sin"
}
