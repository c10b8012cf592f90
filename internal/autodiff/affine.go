package autodiff

import (
	"math"

	"github.com/born-ml/opti/internal/autodiff/ops"
)

// Affine reports whether e equals a*x + b for a single variable x built only
// from scalar shifts, scalar products and negation, and returns x's slot.
func (t *Tape) Affine(e *Expr) (slot int, a, b float64, ok bool) {
	t.check(e)
	return t.affine(e.id)
}

func (t *Tape) affine(id int) (int, float64, float64, bool) {
	n := t.nodes[id]
	switch n.kind {
	case variableNode:
		return n.slot, 1, 0, true
	case opNode:
	default:
		return 0, 0, 0, false
	}

	slot, a, b, ok := 0, 0.0, 0.0, false
	switch op := n.op.(type) {
	case *ops.AddScalarOp:
		slot, a, b, ok = t.affine(n.inputs[0])
		b += op.Scalar()
	case *ops.MulScalarOp:
		slot, a, b, ok = t.affine(n.inputs[0])
		a, b = a*op.Scalar(), b*op.Scalar()
	case *ops.NegOp:
		slot, a, b, ok = t.affine(n.inputs[0])
		a, b = -a, -b
	}
	return slot, a, b, ok
}

// SimpleBound reports whether c bounds a single variable, returning the
// variable's slot and the bound interval. One side of the interval is
// infinite. Equalities are not simple bounds.
func (c Constraint) SimpleBound() (slot int, lower, upper float64, ok bool) {
	if c.Kind != Inequality {
		return 0, 0, 0, false
	}
	slot, a, b, ok := c.Expr.tape.Affine(c.Expr)
	if !ok || a == 0 {
		return 0, 0, 0, false
	}
	// a*x + b <= 0
	if a > 0 {
		return slot, math.Inf(-1), -b / a, true
	}
	return slot, -b / a, math.Inf(1), true
}
