package autodiff

import "github.com/born-ml/opti/internal/autodiff/ops"

// Expr is a handle to a node on a tape.
//
// Expressions are immutable: every method records a new node and returns a
// handle to it. Combining expressions from different tapes panics.
type Expr struct {
	tape *Tape
	id   int
}

// Tape returns the tape that owns the expression.
func (e *Expr) Tape() *Tape {
	return e.tape
}

// ID returns the node index on the tape.
func (e *Expr) ID() int {
	return e.id
}

// Add returns e + other.
func (e *Expr) Add(other *Expr) *Expr {
	return e.tape.apply(ops.NewAddOp(), e, other)
}

// Sub returns e - other.
func (e *Expr) Sub(other *Expr) *Expr {
	return e.tape.apply(ops.NewSubOp(), e, other)
}

// Mul returns e * other.
func (e *Expr) Mul(other *Expr) *Expr {
	return e.tape.apply(ops.NewMulOp(), e, other)
}

// Div returns e / other.
func (e *Expr) Div(other *Expr) *Expr {
	return e.tape.apply(ops.NewDivOp(), e, other)
}

// AddScalar returns e + c.
func (e *Expr) AddScalar(c float64) *Expr {
	return e.tape.apply(ops.NewAddScalarOp(c), e)
}

// SubScalar returns e - c.
func (e *Expr) SubScalar(c float64) *Expr {
	return e.tape.apply(ops.NewAddScalarOp(-c), e)
}

// MulScalar returns c * e.
func (e *Expr) MulScalar(c float64) *Expr {
	return e.tape.apply(ops.NewMulScalarOp(c), e)
}

// DivScalar returns e / c.
func (e *Expr) DivScalar(c float64) *Expr {
	return e.tape.apply(ops.NewMulScalarOp(1/c), e)
}

// Neg returns -e.
func (e *Expr) Neg() *Expr {
	return e.tape.apply(ops.NewNegOp(), e)
}

// Pow returns e^p for a constant exponent p.
func (e *Expr) Pow(p float64) *Expr {
	if p == 2 {
		return e.Square()
	}
	return e.tape.apply(ops.NewPowOp(p), e)
}

// Square returns e².
func (e *Expr) Square() *Expr {
	return e.tape.apply(ops.NewSquareOp(), e)
}

// Exp returns exp(e).
func (e *Expr) Exp() *Expr {
	return e.tape.apply(ops.NewExpOp(), e)
}

// Log returns the natural logarithm of e.
func (e *Expr) Log() *Expr {
	return e.tape.apply(ops.NewLogOp(), e)
}

// Sqrt returns sqrt(e).
func (e *Expr) Sqrt() *Expr {
	return e.tape.apply(ops.NewSqrtOp(), e)
}

// Sin returns sin(e).
func (e *Expr) Sin() *Expr {
	return e.tape.apply(ops.NewSinOp(), e)
}

// Cos returns cos(e).
func (e *Expr) Cos() *Expr {
	return e.tape.apply(ops.NewCosOp(), e)
}

// Tan returns tan(e).
func (e *Expr) Tan() *Expr {
	return e.tape.apply(ops.NewTanOp(), e)
}

// Atan returns atan(e).
func (e *Expr) Atan() *Expr {
	return e.tape.apply(ops.NewAtanOp(), e)
}

// Tanh returns tanh(e).
func (e *Expr) Tanh() *Expr {
	return e.tape.apply(ops.NewTanhOp(), e)
}

// Abs returns |e|.
func (e *Expr) Abs() *Expr {
	return e.tape.apply(ops.NewAbsOp(), e)
}
