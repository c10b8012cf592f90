package optim

import (
	"errors"
	"fmt"
)

// Status describes how a solve ended.
type Status int

const (
	// Running is the status of an unfinished solve.
	Running Status = iota
	// Converged means all tolerances were met.
	Converged
	// Acceptable means the iterate is feasible and nearly stationary, but the
	// inner minimizer could not reach the requested stationarity.
	Acceptable
	// LocalInfeasibility means the iterate minimizes the constraint violation
	// locally without reaching feasibility.
	LocalInfeasibility
	// MaxIterations means the outer iteration limit was reached.
	MaxIterations
	// Canceled means the context was done.
	Canceled
	// NumericalFailure means a NaN or infinity appeared or the inner
	// minimizer failed outright.
	NumericalFailure
)

// Sentinel errors returned alongside a failed Result.
var (
	ErrLocalInfeasibility = errors.New("optim: converged to a point of local infeasibility")
	ErrMaxIterations      = errors.New("optim: maximum number of iterations exceeded")
	ErrNumerical          = errors.New("optim: invalid number in function or derivative")
	ErrCanceled           = errors.New("optim: solve canceled")
	ErrDimension          = errors.New("optim: dimension mismatch")
)

// String returns a short status name.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Acceptable:
		return "acceptable"
	case LocalInfeasibility:
		return "local_infeasibility"
	case MaxIterations:
		return "max_iterations"
	case Canceled:
		return "canceled"
	case NumericalFailure:
		return "numerical_failure"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Success reports whether the status carries a usable optimum.
func (s Status) Success() bool {
	return s == Converged || s == Acceptable
}

// Message returns the solver exit message for the status.
func (s Status) Message() string {
	switch s {
	case Converged:
		return "Optimal Solution Found."
	case Acceptable:
		return "Solved To Acceptable Level."
	case LocalInfeasibility:
		return "Converged to a point of local infeasibility. Problem may be infeasible."
	case MaxIterations:
		return "Maximum Number of Iterations Exceeded."
	case Canceled:
		return "Stopping optimization at current point as requested by user."
	case NumericalFailure:
		return "Invalid number in NLP function or derivative detected."
	default:
		return "Solve in progress."
	}
}

// Err returns the sentinel error for a failed status, or nil.
func (s Status) Err() error {
	switch s {
	case LocalInfeasibility:
		return ErrLocalInfeasibility
	case MaxIterations:
		return ErrMaxIterations
	case Canceled:
		return ErrCanceled
	case NumericalFailure:
		return ErrNumerical
	default:
		return nil
	}
}
