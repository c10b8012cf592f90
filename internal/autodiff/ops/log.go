package ops

import "math"

// LogOp represents the natural logarithm: y = log(x).
//
// Backward pass:
//   - d(log(x))/dx = 1/x
type LogOp struct{}

// NewLogOp creates a new LogOp.
func NewLogOp() *LogOp {
	return &LogOp{}
}

// Forward returns log(x).
func (op *LogOp) Forward(in []float64) float64 {
	return math.Log(in[0])
}

// Backward returns [grad / x].
func (op *LogOp) Backward(in []float64, _, grad float64) []float64 {
	return []float64{grad / in[0]}
}

// Name returns "log".
func (op *LogOp) Name() string {
	return "log"
}
