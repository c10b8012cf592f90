// Package opti provides a problem context for posing and solving nonlinear
// programs over traced expressions.
//
// A problem collects decision variables, constraints and an objective, all
// recorded on one autodiff tape, and hands them to an augmented Lagrangian
// solver:
//
//	o := opti.New()
//	x := o.Variable(1)
//	o.Minimize(np.Exp(np.Cos(x)))
//	o.SubjectTo(x.GeScalar(0), x.LeScalar(math.Pi/2))
//
//	sol, err := o.Solve(ctx, opti.Verbose(false))
//	if err != nil {
//	    last := o.Debug() // last attempted iterate
//	}
//	fmt.Println(sol.Value(x))
package opti

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/born-ml/opti/internal/autodiff"
	"github.com/born-ml/opti/internal/optim"
)

// ErrNoVariables is returned when solving a problem without decision variables.
var ErrNoVariables = errors.New("opti: problem has no decision variables")

// Opti is a nonlinear program under construction.
//
// Opti is not safe for concurrent use; build and solve a problem from one
// goroutine.
type Opti struct {
	tape        *autodiff.Tape
	objective   *autodiff.Expr
	sense       float64
	constraints []autodiff.Constraint
	scales      []float64

	cfg     optim.Config
	logger  *slog.Logger
	out     io.Writer
	verbose bool

	debug *Solution
}

// Option configures an Opti.
type Option func(*Opti)

// WithLogger sets the structured logger used by the problem and its solver.
func WithLogger(l *slog.Logger) Option {
	return func(o *Opti) {
		o.logger = l
	}
}

// WithConfig sets the solver configuration.
func WithConfig(cfg optim.Config) Option {
	return func(o *Opti) {
		o.cfg = cfg
	}
}

// WithOutput sets where verbose solver output is written (default: stdout).
func WithOutput(w io.Writer) Option {
	return func(o *Opti) {
		o.out = w
	}
}

// WithVerbose sets the default verbosity of Solve (default: true).
func WithVerbose(v bool) Option {
	return func(o *Opti) {
		o.verbose = v
	}
}

// New creates an empty problem.
func New(opts ...Option) *Opti {
	o := &Opti{
		tape:    autodiff.NewTape(),
		sense:   1,
		out:     os.Stdout,
		verbose: true,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Tape returns the trace that records the problem's expressions.
func (o *Opti) Tape() *autodiff.Tape {
	return o.tape
}

// Variable declares a decision variable with an initial guess.
func (o *Opti) Variable(init float64, opts ...VariableOption) *autodiff.Expr {
	vo := variableOptions{scale: 1}
	for _, opt := range opts {
		opt(&vo)
	}
	if vo.freeze {
		return o.tape.Parameter(init)
	}
	if vo.scale <= 0 {
		panic(fmt.Sprintf("opti: variable scale must be positive, got %g", vo.scale))
	}

	v := o.tape.Variable(init)
	o.scales = append(o.scales, vo.scale)
	slot := o.tape.Slot(v)
	if vo.lower != nil {
		o.constraints = append(o.constraints,
			v.GeScalar(*vo.lower).Named(fmt.Sprintf("x%d >= %g", slot, *vo.lower)))
	}
	if vo.upper != nil {
		o.constraints = append(o.constraints,
			v.LeScalar(*vo.upper).Named(fmt.Sprintf("x%d <= %g", slot, *vo.upper)))
	}
	return v
}

// Variables declares n decision variables sharing an initial guess and options.
func (o *Opti) Variables(n int, init float64, opts ...VariableOption) []*autodiff.Expr {
	vs := make([]*autodiff.Expr, n)
	for i := range vs {
		vs[i] = o.Variable(init, opts...)
	}
	return vs
}

// Parameter declares a value that is fixed during a solve but can be changed
// with SetParameter between solves.
func (o *Opti) Parameter(value float64) *autodiff.Expr {
	return o.tape.Parameter(value)
}

// SetParameter changes the value of a parameter.
func (o *Opti) SetParameter(p *autodiff.Expr, value float64) {
	o.tape.SetParameter(p, value)
}

// Const records a constant so it can be combined with traced expressions.
func (o *Opti) Const(v float64) *autodiff.Expr {
	return o.tape.Constant(v)
}

// Minimize sets the objective to minimize. A later Minimize or Maximize
// replaces it.
func (o *Opti) Minimize(e *autodiff.Expr) {
	o.own(e)
	o.objective, o.sense = e, 1
}

// Maximize sets the objective to maximize.
func (o *Opti) Maximize(e *autodiff.Expr) {
	o.own(e)
	o.objective, o.sense = e, -1
}

// Objective returns the current objective, or nil for a feasibility problem.
func (o *Opti) Objective() *autodiff.Expr {
	return o.objective
}

// SubjectTo registers one or more constraints.
func (o *Opti) SubjectTo(cs ...autodiff.Constraint) {
	for _, c := range cs {
		o.own(c.Expr)
	}
	o.constraints = append(o.constraints, cs...)
}

// SubjectToAll registers a collection of constraints.
func (o *Opti) SubjectToAll(cs []autodiff.Constraint) {
	o.SubjectTo(cs...)
}

// Constraints returns the registered constraints, bounds included.
func (o *Opti) Constraints() []autodiff.Constraint {
	out := make([]autodiff.Constraint, len(o.constraints))
	copy(out, o.constraints)
	return out
}

// Debug returns the last iterate of the most recent solve, successful or
// not. It is nil before the first solve.
func (o *Opti) Debug() *Solution {
	return o.debug
}

func (o *Opti) own(e *autodiff.Expr) {
	if e == nil {
		panic("opti: nil expression")
	}
	if e.Tape() != o.tape {
		panic("opti: expression belongs to a different problem")
	}
}
