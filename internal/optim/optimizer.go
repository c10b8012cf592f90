// Package optim implements solvers for constrained nonlinear programs.
//
// This package provides:
//   - Problem interface: objective, constraints and their derivatives
//   - Optimizer interface: base interface for all solvers
//   - AugLag: augmented Lagrangian method with gonum inner minimizers
//
// Problems are posed as
//
//	minimize f(x)  subject to  g(x) <= 0,  h(x) == 0
//
// Example usage:
//
//	solver := optim.NewAugLag(optim.Config{
//	    Tolerance: 1e-8,
//	    Method:    optim.MethodBFGS,
//	})
//
//	result, err := solver.Minimize(ctx, problem, x0)
//	if errors.Is(err, optim.ErrLocalInfeasibility) {
//	    // result.X holds the last iterate
//	}
package optim

import (
	"context"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/opti/internal/autodiff"
)

// Problem is a nonlinear program with first derivatives.
type Problem interface {
	// Dim returns the number of decision variables.
	Dim() int

	// Kinds returns the kind of every constraint. Its length is the number
	// of constraints.
	Kinds() []autodiff.Kind

	// Eval returns the objective at x and writes constraint values into c.
	Eval(x, c []float64) float64

	// Grad writes the objective gradient into g and the constraint Jacobian
	// (one row per constraint) into jac. jac is nil when the problem has no
	// constraints.
	Grad(x, g []float64, jac *mat.Dense)
}

// Bounded is implemented by problems that know simple bounds on their
// variables. Infinite entries mean unbounded. The solver moves the initial
// point strictly inside these bounds before the first iteration.
type Bounded interface {
	Bounds() (lower, upper []float64)
}

// Optimizer is the base interface for all solvers.
//
// Minimize always returns a non-nil Result once it has evaluated the problem,
// including on failure: the result then describes the last iterate.
type Optimizer interface {
	Minimize(ctx context.Context, p Problem, x0 []float64) (*Result, error)
	Name() string
}

// Config holds solver settings. Zero fields take their defaults.
type Config struct {
	Tolerance              float64 // Stationarity tolerance (default: 1e-8)
	ConstraintTolerance    float64 // Maximum accepted violation (default: 1e-8)
	AcceptableTolerance    float64 // Stationarity accepted after inner failures (default: 1e-4)
	InfeasibilityTolerance float64 // Ratio |J^T c+| / |c+| treated as stationary (default: 1e-6)
	MaxIterations          int     // Outer iterations (default: 100)
	MaxInnerIterations     int     // Major iterations per inner solve (default: 1000)
	InitialPenalty         float64 // Starting penalty (default: 10)
	PenaltyGrowth          float64 // Penalty multiplier on slow progress (default: 10)
	MaxPenalty             float64 // Penalty cap (default: 1e10)
	Method                 Method  // Inner minimizer (default: MethodBFGS)

	// Logger receives per-iteration debug records. Defaults to a discarding logger.
	Logger *slog.Logger

	// Observer, if set, is called after every outer iteration.
	Observer func(Iteration)
}

// DefaultConfig returns the configuration used for zero fields.
func DefaultConfig() Config {
	return Config{
		Tolerance:              1e-8,
		ConstraintTolerance:    1e-8,
		AcceptableTolerance:    1e-4,
		InfeasibilityTolerance: 1e-6,
		MaxIterations:          100,
		MaxInnerIterations:     1000,
		InitialPenalty:         10,
		PenaltyGrowth:          10,
		MaxPenalty:             1e10,
		Method:                 MethodBFGS,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Tolerance == 0 {
		c.Tolerance = d.Tolerance
	}
	if c.ConstraintTolerance == 0 {
		c.ConstraintTolerance = d.ConstraintTolerance
	}
	if c.AcceptableTolerance == 0 {
		c.AcceptableTolerance = d.AcceptableTolerance
	}
	if c.InfeasibilityTolerance == 0 {
		c.InfeasibilityTolerance = d.InfeasibilityTolerance
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.MaxInnerIterations == 0 {
		c.MaxInnerIterations = d.MaxInnerIterations
	}
	if c.InitialPenalty == 0 {
		c.InitialPenalty = d.InitialPenalty
	}
	if c.PenaltyGrowth == 0 {
		c.PenaltyGrowth = d.PenaltyGrowth
	}
	if c.MaxPenalty == 0 {
		c.MaxPenalty = d.MaxPenalty
	}
	if c.Method == "" {
		c.Method = d.Method
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
