package ops

// DivOp represents scalar division: y = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = grad / b
//   - d(a/b)/db = -a/b², so grad_b = -grad * y / b
type DivOp struct{}

// NewDivOp creates a new DivOp.
func NewDivOp() *DivOp {
	return &DivOp{}
}

// Forward returns a / b.
func (op *DivOp) Forward(in []float64) float64 {
	return in[0] / in[1]
}

// Backward computes input gradients for division.
func (op *DivOp) Backward(in []float64, out, grad float64) []float64 {
	b := in[1]
	return []float64{grad / b, -grad * out / b}
}

// Name returns "/".
func (op *DivOp) Name() string {
	return "/"
}
