package ops

import "math"

// CosOp represents the cosine operation: y = cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
//   - grad_input = grad_output * (-sin(input))
type CosOp struct{}

// NewCosOp creates a new CosOp.
func NewCosOp() *CosOp {
	return &CosOp{}
}

// Forward returns cos(x).
func (op *CosOp) Forward(in []float64) float64 {
	return math.Cos(in[0])
}

// Backward returns [-grad * sin(x)].
func (op *CosOp) Backward(in []float64, _, grad float64) []float64 {
	return []float64{-grad * math.Sin(in[0])}
}

// Name returns "cos".
func (op *CosOp) Name() string {
	return "cos"
}
