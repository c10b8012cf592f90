// Package catalog holds the reference problems from the optimization
// walkthroughs: a bounded NLP, a nonlinear system solved from two initial
// guesses, an infeasible problem that exercises the debug view, and a
// constrained Rosenbrock benchmark.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/born-ml/opti/internal/autodiff"
	"github.com/born-ml/opti/internal/np"
	"github.com/born-ml/opti/internal/opti"
	"github.com/born-ml/opti/internal/parallel"
)

// ErrUnknownExample is returned by Lookup for names not in the catalog.
var ErrUnknownExample = errors.New("catalog: unknown example")

// Output is a labeled expression reported after a solve.
type Output struct {
	Label string
	Expr  *autodiff.Expr
}

// Example is a named, reproducible problem.
type Example struct {
	Name        string
	Description string

	// Build poses the problem on o and returns the expressions to report.
	Build func(o *opti.Opti) []Output

	// ExpectFailure marks problems that demonstrate the failure path.
	ExpectFailure bool
}

var examples = map[string]Example{
	"exp-cos": {
		Name:        "exp-cos",
		Description: "minimize exp(cos(x)) subject to 0 <= x <= pi/2",
		Build: func(o *opti.Opti) []Output {
			x := o.Variable(0)
			o.Minimize(np.Exp(np.Cos(x)))
			o.SubjectTo(
				x.GeScalar(0),
				x.LeScalar(math.Pi/2),
			)
			return []Output{{"x", x}, {"exp(cos(x))", o.Objective()}}
		},
	},
	"system-positive": {
		Name:        "system-positive",
		Description: "solve y = x^2, y^2 = 18 - x from (1.5, 3)",
		Build: func(o *opti.Opti) []Output {
			return nonlinearSystem(o, 1.5, 3)
		},
	},
	"system-negative": {
		Name:        "system-negative",
		Description: "solve y = x^2, y^2 = 18 - x from (-1.5, 3)",
		Build: func(o *opti.Opti) []Output {
			return nonlinearSystem(o, -1.5, 3)
		},
	},
	"infeasible": {
		Name:        "infeasible",
		Description: "find x with x >= 1 and x <= 0; inspect the last iterate",
		Build: func(o *opti.Opti) []Output {
			x := o.Variable(3)
			o.SubjectTo(
				x.GeScalar(1).Named("x >= 1"),
				x.LeScalar(0).Named("x <= 0"),
			)
			return []Output{{"x", x}}
		},
		ExpectFailure: true,
	},
	"rosenbrock-disk": {
		Name:        "rosenbrock-disk",
		Description: "minimize the Rosenbrock function inside the unit disk",
		Build: func(o *opti.Opti) []Output {
			x := o.Variable(0)
			y := o.Variable(0)
			f := np.Add(
				np.Square(o.Const(1).Sub(x)),
				np.Scale(100, np.Square(y.Sub(np.Square(x)))),
			)
			o.Minimize(f)
			o.SubjectTo(np.Sum(np.Map([]*autodiff.Expr{x, y}, np.Square[*autodiff.Expr])).LeScalar(1))
			return []Output{{"x", x}, {"y", y}, {"f", f}}
		},
	},
}

func nonlinearSystem(o *opti.Opti, x0, y0 float64) []Output {
	x := o.Variable(x0)
	y := o.Variable(y0)
	o.SubjectToAll([]autodiff.Constraint{
		y.Eq(np.Square(x)),
		np.Square(y).Eq(o.Const(18).Sub(x)),
	})
	return []Output{{"x", x}, {"y", y}}
}

// All returns every example sorted by name.
func All() []Example {
	out := make([]Example, 0, len(examples))
	for _, ex := range examples {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the example with the given name.
func Lookup(name string) (Example, error) {
	ex, ok := examples[name]
	if !ok {
		return Example{}, fmt.Errorf("%w: %q", ErrUnknownExample, name)
	}
	return ex, nil
}

// Report is the outcome of running an example.
type Report struct {
	Example Example
	Outputs []Output
	Values  []float64
	Stats   opti.Stats

	// Err is the solve failure, if any. Values then come from the debug view.
	Err error

	// Log holds the verbose solver output captured by RunAll.
	Log string
}

// Failed reports whether the solve ended without an optimum.
func (r *Report) Failed() bool {
	return r.Err != nil
}

// Unexpected reports whether the outcome contradicts ExpectFailure.
func (r *Report) Unexpected() bool {
	return r.Failed() != r.Example.ExpectFailure
}

// Run builds and solves an example. Solver failures are recorded in the
// report; other errors are returned.
func Run(ctx context.Context, ex Example, opts []opti.Option, solveOpts ...opti.SolveOption) (*Report, error) {
	o := opti.New(opts...)
	outputs := ex.Build(o)

	report := &Report{Example: ex, Outputs: outputs}
	sol, err := o.Solve(ctx, solveOpts...)
	if err != nil {
		var solveErr *opti.SolveError
		if !errors.As(err, &solveErr) {
			return nil, fmt.Errorf("catalog: run %s: %w", ex.Name, err)
		}
		report.Err = err
		sol = o.Debug()
	}

	report.Values = make([]float64, len(outputs))
	for i, out := range outputs {
		report.Values[i] = sol.Value(out.Expr)
	}
	report.Stats = sol.Stats()
	return report, nil
}

// RunAll runs the examples on up to cfg.NumWorkers goroutines. Each solve
// writes its verbose output into its report's Log; reports keep the order
// of examples.
func RunAll(ctx context.Context, examples []Example, opts []opti.Option, cfg parallel.Config) ([]*Report, error) {
	reports := make([]*Report, len(examples))
	err := parallel.For(ctx, len(examples), func(ctx context.Context, i int) error {
		var buf bytes.Buffer
		runOpts := append(append([]opti.Option(nil), opts...), opti.WithOutput(&buf))
		report, err := Run(ctx, examples[i], runOpts)
		if err != nil {
			return err
		}
		report.Log = buf.String()
		reports[i] = report
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return reports, nil
}
