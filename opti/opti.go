// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package opti poses and solves nonlinear programs over traced expressions.
//
// A problem is built incrementally: declare variables with initial guesses,
// set an objective written with the np functions, add constraints, then
// solve. The same Solution evaluates any expression at the optimum.
//
//	o := opti.New()
//	x := o.Variable(1)
//	o.Minimize(np.Exp(np.Cos(x)))
//	o.SubjectTo(x.GeScalar(0), x.LeScalar(math.Pi/2))
//
//	sol, err := o.Solve(ctx, opti.Verbose(false))
//	if err != nil {
//	    fmt.Println(err)                  // includes the solver diagnostic
//	    fmt.Println(o.Debug().Value(x))   // last attempted iterate
//	    return
//	}
//	fmt.Println(sol.Value(x))
//
// Equation systems are feasibility problems without an objective:
//
//	x, y := o.Variable(1.5), o.Variable(3)
//	o.SubjectToAll([]autodiff.Constraint{
//	    y.Eq(np.Square(x)),
//	    np.Square(y).Eq(o.Const(18).Sub(x)),
//	})
package opti

import (
	"io"
	"log/slog"

	"github.com/born-ml/opti/internal/opti"
	"github.com/born-ml/opti/optim"
)

// Opti is a nonlinear program under construction.
type Opti = opti.Opti

// Solution evaluates expressions at a solver iterate.
type Solution = opti.Solution

// Stats summarizes a solve.
type Stats = opti.Stats

// SolveError is returned when a solve ends without an optimum.
type SolveError = opti.SolveError

// ErrNoVariables is returned when solving a problem without variables.
var ErrNoVariables = opti.ErrNoVariables

// Option configures an Opti.
type Option = opti.Option

// New creates an empty problem.
func New(opts ...Option) *Opti {
	return opti.New(opts...)
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return opti.WithLogger(l)
}

// WithConfig replaces the solver settings.
func WithConfig(cfg optim.Config) Option {
	return opti.WithConfig(cfg)
}

// WithOutput sets where verbose solves print their iteration log.
func WithOutput(w io.Writer) Option {
	return opti.WithOutput(w)
}

// WithVerbose sets the default verbosity of Solve.
func WithVerbose(v bool) Option {
	return opti.WithVerbose(v)
}

// VariableOption configures a decision variable.
type VariableOption = opti.VariableOption

// LowerBound adds the constraint x >= lb.
func LowerBound(lb float64) VariableOption {
	return opti.LowerBound(lb)
}

// UpperBound adds the constraint x <= ub.
func UpperBound(ub float64) VariableOption {
	return opti.UpperBound(ub)
}

// Scale sets the variable's typical magnitude.
func Scale(s float64) VariableOption {
	return opti.Scale(s)
}

// Freeze fixes the variable at its initial value.
func Freeze() VariableOption {
	return opti.Freeze()
}

// SolveOption adjusts a single solve.
type SolveOption = opti.SolveOption

// Verbose enables or suppresses the iteration log and exit report.
func Verbose(v bool) SolveOption {
	return opti.Verbose(v)
}

// Output redirects the iteration log.
func Output(w io.Writer) SolveOption {
	return opti.Output(w)
}

// MaxIterations overrides the outer iteration limit.
func MaxIterations(n int) SolveOption {
	return opti.MaxIterations(n)
}

// Method overrides the inner minimizer.
func Method(m optim.Method) SolveOption {
	return opti.Method(m)
}

// Tolerance overrides the stationarity and feasibility tolerances.
func Tolerance(tol float64) SolveOption {
	return opti.Tolerance(tol)
}
