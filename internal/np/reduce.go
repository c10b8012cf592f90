package np

import (
	"fmt"
	"math"
)

// Map applies fn to every element of xs.
func Map[T Number](xs []T, fn func(T) T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = fn(x)
	}
	return out
}

// Sum returns the sum of xs.
//
// The sum of an empty []float64 is 0. An empty slice of expressions has no
// tape to record a result on, so Sum panics.
func Sum[T Number](xs []T) T {
	return fold(xs, "sum", 0, Add[T])
}

// Prod returns the product of xs; 1 for an empty []float64.
func Prod[T Number](xs []T) T {
	return fold(xs, "prod", 1, Mul[T])
}

// Mean returns the arithmetic mean of xs; NaN for an empty []float64.
func Mean[T Number](xs []T) T {
	if len(xs) == 0 {
		return empty[T]("mean", math.NaN())
	}
	return Scale(1/float64(len(xs)), Sum(xs))
}

// Dot returns the inner product of a and b, which must have equal length.
func Dot[T Number](a, b []T) T {
	if len(a) != len(b) {
		panic(fmt.Sprintf("np: dot of lengths %d and %d", len(a), len(b)))
	}
	terms := make([]T, len(a))
	for i := range a {
		terms[i] = Mul(a[i], b[i])
	}
	return Sum(terms)
}

// Norm returns the Euclidean norm of xs.
func Norm[T Number](xs []T) T {
	return Sqrt(Sum(Map(xs, Square[T])))
}

func fold[T Number](xs []T, name string, identity float64, op func(T, T) T) T {
	if len(xs) == 0 {
		return empty[T](name, identity)
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = op(acc, x)
	}
	return acc
}

func empty[T Number](name string, identity float64) T {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return any(identity).(T)
	}
	panic("np: " + name + " of empty expression slice")
}
