// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim exposes the constrained solver settings and outcomes.
//
// The solver is an augmented Lagrangian method. Each outer iteration
// minimizes the Lagrangian merit function with one of gonum's unconstrained
// methods, then updates multipliers and the penalty:
//
//	cfg := optim.DefaultConfig()
//	cfg.Method = optim.MethodLBFGS
//	cfg.MaxIterations = 50
//	o := opti.New(opti.WithConfig(cfg))
//
// A failed solve wraps one of the sentinel errors below, so callers can
// test for it with errors.Is.
package optim

import "github.com/born-ml/opti/internal/optim"

// Config holds solver tolerances, limits and the penalty schedule.
type Config = optim.Config

// DefaultConfig returns the default solver settings.
func DefaultConfig() Config {
	return optim.DefaultConfig()
}

// Method names the inner unconstrained minimizer.
type Method = optim.Method

// Inner methods.
const (
	MethodBFGS            = optim.MethodBFGS
	MethodLBFGS           = optim.MethodLBFGS
	MethodCG              = optim.MethodCG
	MethodGradientDescent = optim.MethodGradientDescent
	MethodNelderMead      = optim.MethodNelderMead
)

// ParseMethod parses a method name, ignoring case.
func ParseMethod(s string) (Method, error) {
	return optim.ParseMethod(s)
}

// Status is the outcome of a solve.
type Status = optim.Status

// Solve outcomes.
const (
	Running            = optim.Running
	Converged          = optim.Converged
	Acceptable         = optim.Acceptable
	LocalInfeasibility = optim.LocalInfeasibility
	MaxIterations      = optim.MaxIterations
	Canceled           = optim.Canceled
	NumericalFailure   = optim.NumericalFailure
)

// Iteration is one row of the solver log.
type Iteration = optim.Iteration

// Sentinel errors wrapped by failed solves.
var (
	ErrLocalInfeasibility = optim.ErrLocalInfeasibility
	ErrMaxIterations      = optim.ErrMaxIterations
	ErrNumerical          = optim.ErrNumerical
	ErrCanceled           = optim.ErrCanceled
	ErrDimension          = optim.ErrDimension
)
