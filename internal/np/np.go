// Package np provides elementwise and reduction math that works the same on
// plain numbers and on traced expressions.
//
// Every function is generic over Number. Called with float64 it behaves
// exactly like the math package; called with *autodiff.Expr it records the
// operation on the expression's tape, so the result stays differentiable:
//
//	np.Exp(np.Cos(1.0))  // float64: 1.7165...
//	np.Exp(np.Cos(x))    // *autodiff.Expr: exp(cos(x0))
package np

import (
	"math"

	"github.com/born-ml/opti/internal/autodiff"
)

// Number is the set of operand types accepted by this package.
type Number interface {
	float64 | *autodiff.Expr
}

// unary dispatches to the plain or traced implementation.
func unary[T Number](x T, plain func(float64) float64, traced func(*autodiff.Expr) *autodiff.Expr) T {
	switch v := any(x).(type) {
	case float64:
		return any(plain(v)).(T)
	case *autodiff.Expr:
		return any(traced(v)).(T)
	}
	panic("np: unsupported operand type")
}

// binary dispatches a two-operand function.
func binary[T Number](a, b T, plain func(float64, float64) float64, traced func(*autodiff.Expr, *autodiff.Expr) *autodiff.Expr) T {
	switch v := any(a).(type) {
	case float64:
		return any(plain(v, any(b).(float64))).(T)
	case *autodiff.Expr:
		return any(traced(v, any(b).(*autodiff.Expr))).(T)
	}
	panic("np: unsupported operand type")
}

// Exp returns e**x.
func Exp[T Number](x T) T {
	return unary(x, math.Exp, (*autodiff.Expr).Exp)
}

// Log returns the natural logarithm of x.
func Log[T Number](x T) T {
	return unary(x, math.Log, (*autodiff.Expr).Log)
}

// Sqrt returns the square root of x.
func Sqrt[T Number](x T) T {
	return unary(x, math.Sqrt, (*autodiff.Expr).Sqrt)
}

// Sin returns the sine of x (radians).
func Sin[T Number](x T) T {
	return unary(x, math.Sin, (*autodiff.Expr).Sin)
}

// Cos returns the cosine of x (radians).
func Cos[T Number](x T) T {
	return unary(x, math.Cos, (*autodiff.Expr).Cos)
}

// Tan returns the tangent of x (radians).
func Tan[T Number](x T) T {
	return unary(x, math.Tan, (*autodiff.Expr).Tan)
}

// Atan returns the arctangent of x.
func Atan[T Number](x T) T {
	return unary(x, math.Atan, (*autodiff.Expr).Atan)
}

// Tanh returns the hyperbolic tangent of x.
func Tanh[T Number](x T) T {
	return unary(x, math.Tanh, (*autodiff.Expr).Tanh)
}

// Abs returns |x|.
func Abs[T Number](x T) T {
	return unary(x, math.Abs, (*autodiff.Expr).Abs)
}

// Square returns x*x.
func Square[T Number](x T) T {
	return unary(x, func(v float64) float64 { return v * v }, (*autodiff.Expr).Square)
}

// Pow returns x**p for a constant exponent.
func Pow[T Number](x T, p float64) T {
	return unary(x,
		func(v float64) float64 { return math.Pow(v, p) },
		func(e *autodiff.Expr) *autodiff.Expr { return e.Pow(p) })
}

// Add returns a + b.
func Add[T Number](a, b T) T {
	return binary(a, b, func(x, y float64) float64 { return x + y }, (*autodiff.Expr).Add)
}

// Sub returns a - b.
func Sub[T Number](a, b T) T {
	return binary(a, b, func(x, y float64) float64 { return x - y }, (*autodiff.Expr).Sub)
}

// Mul returns a * b.
func Mul[T Number](a, b T) T {
	return binary(a, b, func(x, y float64) float64 { return x * y }, (*autodiff.Expr).Mul)
}

// Div returns a / b.
func Div[T Number](a, b T) T {
	return binary(a, b, func(x, y float64) float64 { return x / y }, (*autodiff.Expr).Div)
}

// Scale returns c * x.
func Scale[T Number](c float64, x T) T {
	return unary(x,
		func(v float64) float64 { return c * v },
		func(e *autodiff.Expr) *autodiff.Expr { return e.MulScalar(c) })
}

// Shift returns x + c.
func Shift[T Number](x T, c float64) T {
	return unary(x,
		func(v float64) float64 { return v + c },
		func(e *autodiff.Expr) *autodiff.Expr { return e.AddScalar(c) })
}
