package ops

import "math"

// PowOp represents a power with a constant exponent: y = x^p.
//
// Backward pass:
//   - d(x^p)/dx = p * x^(p-1)
type PowOp struct {
	exponent float64
}

// NewPowOp creates a new PowOp.
func NewPowOp(exponent float64) *PowOp {
	return &PowOp{exponent: exponent}
}

// Forward returns x^p.
func (op *PowOp) Forward(in []float64) float64 {
	return math.Pow(in[0], op.exponent)
}

// Backward computes p * x^(p-1) * grad.
func (op *PowOp) Backward(in []float64, _, grad float64) []float64 {
	switch op.exponent {
	case 0:
		return []float64{0}
	case 1:
		return []float64{grad}
	case 2:
		return []float64{2 * in[0] * grad}
	}
	return []float64{op.exponent * math.Pow(in[0], op.exponent-1) * grad}
}

// Name returns "pow".
func (op *PowOp) Name() string {
	return "pow"
}

// Exponent returns the constant exponent.
func (op *PowOp) Exponent() float64 {
	return op.exponent
}

// SquareOp represents y = x².
type SquareOp struct{}

// NewSquareOp creates a new SquareOp.
func NewSquareOp() *SquareOp {
	return &SquareOp{}
}

// Forward returns x*x.
func (op *SquareOp) Forward(in []float64) float64 {
	return in[0] * in[0]
}

// Backward returns [2*x*grad].
func (op *SquareOp) Backward(in []float64, _, grad float64) []float64 {
	return []float64{2 * in[0] * grad}
}

// Name returns "square".
func (op *SquareOp) Name() string {
	return "square"
}
