package ops

// AddOp represents scalar addition: y = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, d(a+b)/db = 1
type AddOp struct{}

// NewAddOp creates a new AddOp.
func NewAddOp() *AddOp {
	return &AddOp{}
}

// Forward returns a + b.
func (op *AddOp) Forward(in []float64) float64 {
	return in[0] + in[1]
}

// Backward passes the gradient through unchanged to both inputs.
func (op *AddOp) Backward(_ []float64, _, grad float64) []float64 {
	return []float64{grad, grad}
}

// Name returns "+".
func (op *AddOp) Name() string {
	return "+"
}

// AddScalarOp represents addition of a constant: y = x + c.
type AddScalarOp struct {
	scalar float64
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(scalar float64) *AddScalarOp {
	return &AddScalarOp{scalar: scalar}
}

// Forward returns x + c.
func (op *AddScalarOp) Forward(in []float64) float64 {
	return in[0] + op.scalar
}

// Backward returns the gradient unchanged.
func (op *AddScalarOp) Backward(_ []float64, _, grad float64) []float64 {
	return []float64{grad}
}

// Name returns "+c".
func (op *AddScalarOp) Name() string {
	return "+c"
}

// Scalar returns the constant offset.
func (op *AddScalarOp) Scalar() float64 {
	return op.scalar
}
