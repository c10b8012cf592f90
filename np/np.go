// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package np provides math functions that accept plain numbers or traced
// expressions with the same call syntax.
//
//	np.Exp(np.Cos(0.3))       // float64
//	np.Exp(np.Cos(x))         // *autodiff.Expr, differentiable
//
// Reductions take slices of either kind:
//
//	np.Sum([]float64{1, 2, 3})
//	np.Dot(weights, xs)
package np

import (
	"github.com/born-ml/opti/autodiff"
	"github.com/born-ml/opti/internal/np"
)

// Number is float64 or *autodiff.Expr.
type Number interface {
	float64 | *autodiff.Expr
}

// Exp returns e**x.
func Exp[T Number](x T) T { return np.Exp(x) }

// Log returns the natural logarithm of x.
func Log[T Number](x T) T { return np.Log(x) }

// Sqrt returns the square root of x.
func Sqrt[T Number](x T) T { return np.Sqrt(x) }

// Sin returns the sine of x.
func Sin[T Number](x T) T { return np.Sin(x) }

// Cos returns the cosine of x.
func Cos[T Number](x T) T { return np.Cos(x) }

// Tan returns the tangent of x.
func Tan[T Number](x T) T { return np.Tan(x) }

// Atan returns the arctangent of x.
func Atan[T Number](x T) T { return np.Atan(x) }

// Tanh returns the hyperbolic tangent of x.
func Tanh[T Number](x T) T { return np.Tanh(x) }

// Abs returns the absolute value of x.
func Abs[T Number](x T) T { return np.Abs(x) }

// Square returns x*x.
func Square[T Number](x T) T { return np.Square(x) }

// Pow returns x**p.
func Pow[T Number](x T, p float64) T { return np.Pow(x, p) }

// Add returns a+b.
func Add[T Number](a, b T) T { return np.Add(a, b) }

// Sub returns a-b.
func Sub[T Number](a, b T) T { return np.Sub(a, b) }

// Mul returns a*b.
func Mul[T Number](a, b T) T { return np.Mul(a, b) }

// Div returns a/b.
func Div[T Number](a, b T) T { return np.Div(a, b) }

// Scale returns c*x.
func Scale[T Number](c float64, x T) T { return np.Scale(c, x) }

// Shift returns x+c.
func Shift[T Number](x T, c float64) T { return np.Shift(x, c) }

// Map applies fn to every element.
func Map[T Number](xs []T, fn func(T) T) []T { return np.Map(xs, fn) }

// Sum adds the elements.
func Sum[T Number](xs []T) T { return np.Sum(xs) }

// Prod multiplies the elements.
func Prod[T Number](xs []T) T { return np.Prod(xs) }

// Mean averages the elements.
func Mean[T Number](xs []T) T { return np.Mean(xs) }

// Dot returns the inner product of a and b.
func Dot[T Number](a, b []T) T { return np.Dot(a, b) }

// Norm returns the Euclidean norm.
func Norm[T Number](xs []T) T { return np.Norm(xs) }
