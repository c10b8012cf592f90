// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff exposes the scalar computation trace behind opti.
//
// Every decision variable, parameter and constant lives on a Tape, and every
// arithmetic or elementary operation on an Expr appends a node. The tape can
// then be evaluated at any point and differentiated in reverse mode:
//
//	tape := autodiff.NewTape()
//	x := tape.Variable(1)
//	f := x.Cos().Exp()
//
//	values := tape.Forward([]float64{0.5})
//	grad := make([]float64, tape.NumVariables())
//	tape.Gradient(values, f, grad)
//
// Relations between expressions produce normalized constraints:
//
//	x.GeScalar(0)            // -x + 0 <= 0
//	y.Eq(x.Square())         // y - x^2 == 0
package autodiff

import "github.com/born-ml/opti/internal/autodiff"

// Tape records the nodes of a computation.
type Tape = autodiff.Tape

// Expr is a node on a Tape.
type Expr = autodiff.Expr

// Constraint is a relation normalized to g(x) <= 0 or h(x) == 0.
type Constraint = autodiff.Constraint

// Kind classifies a constraint.
type Kind = autodiff.Kind

// Constraint kinds.
const (
	Inequality = autodiff.Inequality
	Equality   = autodiff.Equality
)

// NewTape creates an empty tape.
func NewTape() *Tape {
	return autodiff.NewTape()
}
