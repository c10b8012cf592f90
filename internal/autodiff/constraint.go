package autodiff

import "fmt"

// Kind classifies a normalized constraint.
type Kind uint8

const (
	// Inequality constraints are normalized to g(x) <= 0.
	Inequality Kind = iota
	// Equality constraints are normalized to h(x) == 0.
	Equality
)

// String returns the relation symbol of the normalized form.
func (k Kind) String() string {
	switch k {
	case Inequality:
		return "<="
	case Equality:
		return "=="
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Constraint is a relation between two expressions, normalized so that the
// right-hand side is zero.
type Constraint struct {
	Expr  *Expr
	Kind  Kind
	Label string
}

// String renders the constraint in normalized form.
func (c Constraint) String() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("%s %s 0", c.Expr.tape.Graph(c.Expr), c.Kind)
}

// Named returns a copy of the constraint carrying a label for diagnostics.
func (c Constraint) Named(label string) Constraint {
	c.Label = label
	return c
}

// Le returns the constraint e <= other.
func (e *Expr) Le(other *Expr) Constraint {
	return Constraint{Expr: e.Sub(other), Kind: Inequality}
}

// Ge returns the constraint e >= other.
func (e *Expr) Ge(other *Expr) Constraint {
	return Constraint{Expr: other.Sub(e), Kind: Inequality}
}

// Eq returns the constraint e == other.
func (e *Expr) Eq(other *Expr) Constraint {
	return Constraint{Expr: e.Sub(other), Kind: Equality}
}

// LeScalar returns the constraint e <= c.
func (e *Expr) LeScalar(c float64) Constraint {
	return Constraint{Expr: e.SubScalar(c), Kind: Inequality}
}

// GeScalar returns the constraint e >= c.
func (e *Expr) GeScalar(c float64) Constraint {
	return Constraint{Expr: e.Neg().AddScalar(c), Kind: Inequality}
}

// EqScalar returns the constraint e == c.
func (e *Expr) EqScalar(c float64) Constraint {
	return Constraint{Expr: e.SubScalar(c), Kind: Equality}
}
