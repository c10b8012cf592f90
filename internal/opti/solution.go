package opti

import (
	"github.com/born-ml/opti/internal/autodiff"
	"github.com/born-ml/opti/internal/optim"
)

// Solution evaluates traced expressions at a solver iterate.
type Solution struct {
	tape        *autodiff.Tape
	x           []float64
	values      []float64
	result      *optim.Result
	sense       float64
	constraints []autodiff.Constraint
}

// Stats summarizes how a solve went.
type Stats struct {
	Status          optim.Status
	Message         string
	Iterations      int
	InnerIterations int
	FuncEvaluations int
	GradEvaluations int
	Objective       float64
	Violation       float64
	Stationarity    float64
	Penalty         float64
}

func newSolution(o *Opti, x []float64, res *optim.Result) *Solution {
	s := &Solution{
		tape:        o.tape,
		x:           x,
		result:      res,
		sense:       o.sense,
		constraints: append([]autodiff.Constraint(nil), o.constraints...),
	}
	s.values = s.tape.Forward(s.point())
	return s
}

// Value returns the value of e at the solution.
//
// Expressions recorded after the solve are evaluated too; variables declared
// after the solve take their initial guess.
func (s *Solution) Value(e *autodiff.Expr) float64 {
	if e.Tape() != s.tape {
		panic("opti: expression belongs to a different problem")
	}
	if e.ID() >= len(s.values) {
		s.values = s.tape.Forward(s.point())
	}
	return s.tape.Value(s.values, e)
}

// Values evaluates several expressions at the solution.
func (s *Solution) Values(es []*autodiff.Expr) []float64 {
	out := make([]float64, len(es))
	for i, e := range es {
		out[i] = s.Value(e)
	}
	return out
}

// X returns a copy of the decision variables at the solution, by slot.
func (s *Solution) X() []float64 {
	return append([]float64(nil), s.x...)
}

// Status returns the solver status that produced this solution.
func (s *Solution) Status() optim.Status {
	return s.result.Status
}

// Dual returns the Lagrange multiplier of a registered constraint.
// The second result is false if the constraint was not part of the solve.
func (s *Solution) Dual(c autodiff.Constraint) (float64, bool) {
	for i, registered := range s.constraints {
		if registered.Expr == c.Expr {
			return s.result.Multipliers[i], true
		}
	}
	return 0, false
}

// Stats returns solver statistics.
func (s *Solution) Stats() Stats {
	r := s.result
	return Stats{
		Status:          r.Status,
		Message:         r.Message(),
		Iterations:      r.Iterations,
		InnerIterations: r.InnerIterations,
		FuncEvaluations: r.FuncEvaluations,
		GradEvaluations: r.GradEvaluations,
		Objective:       r.Objective * s.sense,
		Violation:       r.Violation,
		Stationarity:    r.Stationarity,
		Penalty:         r.Penalty,
	}
}

// point returns the variable values, padded with initial guesses for
// variables declared after the solve.
func (s *Solution) point() []float64 {
	n := s.tape.NumVariables()
	if len(s.x) == n {
		return s.x
	}
	init := s.tape.Initial()
	out := make([]float64, n)
	copy(out, s.x)
	copy(out[len(s.x):], init[len(s.x):])
	return out
}
