package ops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/num/dual"

	"github.com/born-ml/opti/internal/autodiff/ops"
)

// TestUnaryOps_MatchDual checks every unary backward rule against
// forward-mode dual numbers.
func TestUnaryOps_MatchDual(t *testing.T) {
	tests := []struct {
		name string
		op   ops.Operation
		fn   func(dual.Number) dual.Number
		at   []float64
	}{
		{"exp", ops.NewExpOp(), dual.Exp, []float64{-2, 0, 0.7, 3}},
		{"log", ops.NewLogOp(), dual.Log, []float64{0.1, 1, 4.5}},
		{"sin", ops.NewSinOp(), dual.Sin, []float64{-1, 0, 1.3}},
		{"cos", ops.NewCosOp(), dual.Cos, []float64{-1, 0, 1.3}},
		{"tan", ops.NewTanOp(), dual.Tan, []float64{-1, 0, 1.3}},
		{"atan", ops.NewAtanOp(), dual.Atan, []float64{-3, 0, 2}},
		{"tanh", ops.NewTanhOp(), dual.Tanh, []float64{-2, 0, 0.5}},
		{"sqrt", ops.NewSqrtOp(), dual.Sqrt, []float64{0.25, 1, 9}},
		{"neg", ops.NewNegOp(), func(x dual.Number) dual.Number { return dual.Scale(-1, x) }, []float64{-2, 3}},
		{"square", ops.NewSquareOp(), func(x dual.Number) dual.Number { return dual.Mul(x, x) }, []float64{-2, 0, 3}},
		{"pow", ops.NewPowOp(3.5), func(x dual.Number) dual.Number { return dual.PowReal(x, 3.5) }, []float64{0.5, 2}},
		{"mulscalar", ops.NewMulScalarOp(-4), func(x dual.Number) dual.Number { return dual.Scale(-4, x) }, []float64{1, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range tt.at {
				in := []float64{x}
				out := tt.op.Forward(in)
				want := tt.fn(dual.Number{Real: x, Emag: 1})

				assert.InDelta(t, want.Real, out, 1e-12, "forward at %v", x)
				got := tt.op.Backward(in, out, 1)
				assert.Len(t, got, 1)
				assert.InDelta(t, want.Emag, got[0], 1e-9, "backward at %v", x)
			}
		})
	}
}

// TestBinaryOps_MatchDual checks the partial derivatives of binary ops.
func TestBinaryOps_MatchDual(t *testing.T) {
	tests := []struct {
		name string
		op   ops.Operation
		fn   func(a, b dual.Number) dual.Number
	}{
		{"add", ops.NewAddOp(), dual.Add},
		{"sub", ops.NewSubOp(), dual.Sub},
		{"mul", ops.NewMulOp(), dual.Mul},
		{"div", ops.NewDivOp(), func(a, b dual.Number) dual.Number { return dual.Mul(a, dual.Inv(b)) }},
	}

	a, b := 1.7, -0.6
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []float64{a, b}
			out := tt.op.Forward(in)
			got := tt.op.Backward(in, out, 2)

			da := tt.fn(dual.Number{Real: a, Emag: 1}, dual.Number{Real: b})
			db := tt.fn(dual.Number{Real: a}, dual.Number{Real: b, Emag: 1})

			assert.InDelta(t, da.Real, out, 1e-12)
			assert.InDelta(t, 2*da.Emag, got[0], 1e-9)
			assert.InDelta(t, 2*db.Emag, got[1], 1e-9)
		})
	}
}

// TestAbsOp_Subgradient checks the sign rule and the zero choice at the kink.
func TestAbsOp_Subgradient(t *testing.T) {
	op := ops.NewAbsOp()

	assert.Equal(t, 3.0, op.Forward([]float64{-3}))
	assert.Equal(t, []float64{-1}, op.Backward([]float64{-3}, 3, 1))
	assert.Equal(t, []float64{2}, op.Backward([]float64{5}, 5, 2))
	assert.Equal(t, []float64{0}, op.Backward([]float64{0}, 0, 1))
}

func TestSqrtOp_InfiniteSlopeAtZero(t *testing.T) {
	op := ops.NewSqrtOp()
	got := op.Backward([]float64{0}, 0, 1)
	assert.True(t, math.IsInf(got[0], 1))
}

func TestPowOp_SpecialExponents(t *testing.T) {
	assert.Equal(t, []float64{0}, ops.NewPowOp(0).Backward([]float64{0}, 1, 1))
	assert.Equal(t, []float64{5}, ops.NewPowOp(1).Backward([]float64{3}, 3, 5))
	assert.Equal(t, []float64{12}, ops.NewPowOp(2).Backward([]float64{3}, 9, 2))
	assert.Equal(t, 2.5, ops.NewPowOp(2.5).Exponent())
}
