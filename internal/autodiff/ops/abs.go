package ops

import "math"

// AbsOp represents the absolute value: y = |x|.
//
// Backward pass:
//   - d|x|/dx = sign(x), taken as 0 at x = 0
type AbsOp struct{}

// NewAbsOp creates a new AbsOp.
func NewAbsOp() *AbsOp {
	return &AbsOp{}
}

// Forward returns |x|.
func (op *AbsOp) Forward(in []float64) float64 {
	return math.Abs(in[0])
}

// Backward returns [grad * sign(x)].
func (op *AbsOp) Backward(in []float64, _, grad float64) []float64 {
	switch {
	case in[0] > 0:
		return []float64{grad}
	case in[0] < 0:
		return []float64{-grad}
	}
	return []float64{0}
}

// Name returns "abs".
func (op *AbsOp) Name() string {
	return "abs"
}
