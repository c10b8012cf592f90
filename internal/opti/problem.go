package opti

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/opti/internal/autodiff"
)

// nlp adapts a problem's trace to optim.Problem. The solver sees scaled
// coordinates z with x = scale * z.
type nlp struct {
	tape      *autodiff.Tape
	objective *autodiff.Expr
	sense     float64
	cons      []autodiff.Constraint
	kinds     []autodiff.Kind
	scale     []float64

	x   []float64
	row []float64
}

func newNLP(o *Opti) *nlp {
	n := o.tape.NumVariables()
	kinds := make([]autodiff.Kind, len(o.constraints))
	for i, c := range o.constraints {
		kinds[i] = c.Kind
	}
	return &nlp{
		tape:      o.tape,
		objective: o.objective,
		sense:     o.sense,
		cons:      append([]autodiff.Constraint(nil), o.constraints...),
		kinds:     kinds,
		scale:     append([]float64(nil), o.scales...),
		x:         make([]float64, n),
		row:       make([]float64, n),
	}
}

func (p *nlp) Dim() int {
	return len(p.scale)
}

func (p *nlp) Kinds() []autodiff.Kind {
	return p.kinds
}

func (p *nlp) Eval(z, c []float64) float64 {
	values := p.tape.Forward(p.unscale(z))
	for i, con := range p.cons {
		c[i] = p.tape.Value(values, con.Expr)
	}
	if p.objective == nil {
		return 0
	}
	return p.sense * p.tape.Value(values, p.objective)
}

func (p *nlp) Grad(z, g []float64, jac *mat.Dense) {
	values := p.tape.Forward(p.unscale(z))
	if p.objective == nil {
		for i := range g {
			g[i] = 0
		}
	} else {
		p.tape.Gradient(values, p.objective, g)
		for i := range g {
			g[i] *= p.sense * p.scale[i]
		}
	}
	for i, con := range p.cons {
		p.tape.Gradient(values, con.Expr, p.row)
		for j := range p.row {
			p.row[j] *= p.scale[j]
		}
		jac.SetRow(i, p.row)
	}
}

// Bounds collects simple bound constraints in solver coordinates. They stay
// ordinary constraints; the solver only uses them to place the start.
func (p *nlp) Bounds() (lower, upper []float64) {
	n := len(p.scale)
	lower = make([]float64, n)
	upper = make([]float64, n)
	for i := range lower {
		lower[i], upper[i] = math.Inf(-1), math.Inf(1)
	}
	for _, con := range p.cons {
		slot, lo, hi, ok := con.SimpleBound()
		if !ok {
			continue
		}
		lower[slot] = math.Max(lower[slot], lo/p.scale[slot])
		upper[slot] = math.Min(upper[slot], hi/p.scale[slot])
	}
	return lower, upper
}

func (p *nlp) unscale(z []float64) []float64 {
	for i, zi := range z {
		p.x[i] = zi * p.scale[i]
	}
	return p.x
}

// toSolver maps problem coordinates to solver coordinates.
func (p *nlp) toSolver(x []float64) []float64 {
	z := make([]float64, len(x))
	for i, xi := range x {
		z[i] = xi / p.scale[i]
	}
	return z
}

// fromSolver maps solver coordinates to a fresh slice of problem coordinates.
func (p *nlp) fromSolver(z []float64) []float64 {
	return append([]float64(nil), p.unscale(z)...)
}
