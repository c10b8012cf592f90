package ops

// SubOp represents scalar subtraction: y = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1
//   - d(a-b)/db = -1
type SubOp struct{}

// NewSubOp creates a new SubOp.
func NewSubOp() *SubOp {
	return &SubOp{}
}

// Forward returns a - b.
func (op *SubOp) Forward(in []float64) float64 {
	return in[0] - in[1]
}

// Backward returns [grad, -grad].
func (op *SubOp) Backward(_ []float64, _, grad float64) []float64 {
	return []float64{grad, -grad}
}

// Name returns "-".
func (op *SubOp) Name() string {
	return "-"
}
