package ops

// MulOp represents scalar multiplication: y = a * b.
//
// Backward pass:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
type MulOp struct{}

// NewMulOp creates a new MulOp.
func NewMulOp() *MulOp {
	return &MulOp{}
}

// Forward returns a * b.
func (op *MulOp) Forward(in []float64) float64 {
	return in[0] * in[1]
}

// Backward returns [grad*b, grad*a].
func (op *MulOp) Backward(in []float64, _, grad float64) []float64 {
	return []float64{grad * in[1], grad * in[0]}
}

// Name returns "*".
func (op *MulOp) Name() string {
	return "*"
}

// MulScalarOp represents multiplication by a constant: y = c * x.
type MulScalarOp struct {
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(scalar float64) *MulScalarOp {
	return &MulScalarOp{scalar: scalar}
}

// Forward returns c * x.
func (op *MulScalarOp) Forward(in []float64) float64 {
	return op.scalar * in[0]
}

// Backward returns [c*grad].
func (op *MulScalarOp) Backward(_ []float64, _, grad float64) []float64 {
	return []float64{op.scalar * grad}
}

// Name returns "*c".
func (op *MulScalarOp) Name() string {
	return "*c"
}

// Scalar returns the constant factor.
func (op *MulScalarOp) Scalar() float64 {
	return op.scalar
}
