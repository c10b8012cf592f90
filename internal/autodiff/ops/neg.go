package ops

// NegOp represents negation: y = -x.
type NegOp struct{}

// NewNegOp creates a new NegOp.
func NewNegOp() *NegOp {
	return &NegOp{}
}

// Forward returns -x.
func (op *NegOp) Forward(in []float64) float64 {
	return -in[0]
}

// Backward returns [-grad].
func (op *NegOp) Backward(_ []float64, _, grad float64) []float64 {
	return []float64{-grad}
}

// Name returns "neg".
func (op *NegOp) Name() string {
	return "neg"
}
