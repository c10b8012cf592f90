package opti

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/born-ml/opti/internal/optim"
)

// SolveOption configures a single Solve call.
type SolveOption func(*solveOptions)

type solveOptions struct {
	verbose   bool
	out       io.Writer
	maxIter   int
	method    optim.Method
	tolerance float64
}

// Verbose enables or suppresses the solver's iteration table and exit message.
func Verbose(v bool) SolveOption {
	return func(o *solveOptions) {
		o.verbose = v
	}
}

// Output redirects verbose output for this solve.
func Output(w io.Writer) SolveOption {
	return func(o *solveOptions) {
		o.out = w
	}
}

// MaxIterations overrides the outer iteration limit.
func MaxIterations(n int) SolveOption {
	return func(o *solveOptions) {
		o.maxIter = n
	}
}

// Method overrides the inner minimizer.
func Method(m optim.Method) SolveOption {
	return func(o *solveOptions) {
		o.method = m
	}
}

// Tolerance overrides both the stationarity and the constraint tolerance.
func Tolerance(tol float64) SolveOption {
	return func(o *solveOptions) {
		o.tolerance = tol
	}
}

// SolveError reports a solve that ended without an optimum. The last iterate
// is available from (*Opti).Debug.
type SolveError struct {
	Status     optim.Status
	Diagnostic string
	Err        error
}

// Error returns the status followed by the solver diagnostic text.
func (e *SolveError) Error() string {
	return fmt.Sprintf("opti: solve failed (%s)\n%s", e.Status, e.Diagnostic)
}

// Unwrap returns the solver's sentinel error.
func (e *SolveError) Unwrap() error {
	return e.Err
}

// Solve runs the solver from the variables' initial guesses.
//
// On success it returns the solution at the optimum. On failure it returns a
// *SolveError and Debug() holds the last attempted iterate.
func (o *Opti) Solve(ctx context.Context, opts ...SolveOption) (*Solution, error) {
	so := solveOptions{verbose: o.verbose, out: o.out}
	for _, opt := range opts {
		opt(&so)
	}

	if o.tape.NumVariables() == 0 {
		return nil, ErrNoVariables
	}

	p := newNLP(o)
	cfg := o.cfg
	cfg.Logger = o.logger
	if so.maxIter > 0 {
		cfg.MaxIterations = so.maxIter
	}
	if so.method != "" {
		cfg.Method = so.method
	}
	if so.tolerance > 0 {
		cfg.Tolerance = so.tolerance
		cfg.ConstraintTolerance = so.tolerance
	}

	var table *iterationTable
	if so.verbose {
		table = newIterationTable(p.Dim(), len(p.cons))
		cfg.Observer = table.observe
	}

	solver := optim.NewAugLag(cfg)
	o.logger.Info("solving",
		"variables", p.Dim(),
		"constraints", len(p.cons),
		"solver", solver.Name(),
	)

	res, err := solver.Minimize(ctx, p, p.toSolver(o.tape.Initial()))
	if res == nil {
		return nil, fmt.Errorf("opti: %w", err)
	}

	sol := newSolution(o, p.fromSolver(res.X), res)
	o.debug = sol
	o.logger.Info("solve finished",
		"status", res.Status.String(),
		"iterations", res.Iterations,
		"objective", res.Objective*p.sense,
		"violation", res.Violation,
	)

	if table != nil {
		table.render(so.out, res, p.sense)
	}
	if err != nil {
		return nil, &SolveError{
			Status:     res.Status,
			Diagnostic: diagnostic(res, p.sense),
			Err:        err,
		}
	}
	return sol, nil
}

// diagnostic renders the solver's exit report.
func diagnostic(res *optim.Result, sense float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "EXIT: %s\n", res.Message())
	fmt.Fprintf(&sb, "Number of Iterations....: %d\n", res.Iterations)
	fmt.Fprintf(&sb, "Objective...............: %.16e\n", res.Objective*sense)
	fmt.Fprintf(&sb, "Constraint violation....: %.16e\n", res.Violation)
	fmt.Fprintf(&sb, "Dual infeasibility......: %.16e\n", res.Stationarity)
	fmt.Fprintf(&sb, "Function evaluations....: %d\n", res.FuncEvaluations)
	fmt.Fprintf(&sb, "Gradient evaluations....: %d", res.GradEvaluations)
	return sb.String()
}
