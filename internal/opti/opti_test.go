package opti_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/opti/internal/autodiff"
	"github.com/born-ml/opti/internal/np"
	"github.com/born-ml/opti/internal/opti"
	"github.com/born-ml/opti/internal/optim"
	"github.com/born-ml/opti/internal/testutil"
)

func newOpti(t *testing.T, opts ...opti.Option) *opti.Opti {
	t.Helper()
	opts = append([]opti.Option{opti.WithLogger(testutil.NewTestLogger(t)), opti.WithVerbose(false)}, opts...)
	return opti.New(opts...)
}

// TestSolve_ExpCos minimizes exp(cos(x)) subject to 0 <= x <= π/2.
func TestSolve_ExpCos(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(1)
	upper := x.LeScalar(math.Pi / 2)
	o.Minimize(np.Exp(np.Cos(x)))
	o.SubjectTo(x.GeScalar(0), upper)

	sol, err := o.Solve(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, math.Pi/2, sol.Value(x), 1e-6)
	assert.InDelta(t, 1.0, sol.Value(o.Objective()), 1e-6)
	assert.Equal(t, optim.Converged, sol.Status())

	dual, ok := sol.Dual(upper)
	require.True(t, ok)
	assert.InDelta(t, 1.0, dual, 1e-4)

	stats := sol.Stats()
	assert.Positive(t, stats.Iterations)
	assert.Equal(t, "Optimal Solution Found.", stats.Message)
	assert.Same(t, sol, o.Debug())
}

// TestSolve_ExpCosFromLowerBound starts on the lower bound, where the
// objective is flat.
func TestSolve_ExpCosFromLowerBound(t *testing.T) {
	tests := []struct {
		name  string
		build func(o *opti.Opti) *autodiff.Expr
	}{
		{"constraints", func(o *opti.Opti) *autodiff.Expr {
			x := o.Variable(0)
			o.SubjectTo(x.GeScalar(0), x.LeScalar(math.Pi/2))
			return x
		}},
		{"variable bounds", func(o *opti.Opti) *autodiff.Expr {
			return o.Variable(0, opti.LowerBound(0), opti.UpperBound(math.Pi/2))
		}},
		{"scaled", func(o *opti.Opti) *autodiff.Expr {
			return o.Variable(0, opti.LowerBound(0), opti.UpperBound(math.Pi/2), opti.Scale(10))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOpti(t)
			x := tt.build(o)
			o.Minimize(np.Exp(np.Cos(x)))

			sol, err := o.Solve(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, math.Pi/2, sol.Value(x), 1e-6)
			assert.InDelta(t, 1.0, sol.Value(o.Objective()), 1e-6)
			assert.InDelta(t, 0.0, o.Tape().Initial()[0], 0, "initial guess unchanged")
		})
	}
}

// TestSolve_NonlinearSystem solves y = x², y² = 18 - x from two guesses.
func TestSolve_NonlinearSystem(t *testing.T) {
	tests := []struct {
		name   string
		x0, y0 float64
		wantX  float64
		wantY  float64
	}{
		{"positive", 1.5, 3, 2, 4},
		{"negative", -1.5, 3, -2.1179, 4.4853},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOpti(t)
			x := o.Variable(tt.x0)
			y := o.Variable(tt.y0)
			o.SubjectToAll([]autodiff.Constraint{
				y.Eq(np.Square(x)),
				np.Square(y).Eq(o.Const(18).Sub(x)),
			})

			sol, err := o.Solve(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, tt.wantX, sol.Value(x), 1e-3)
			assert.InDelta(t, tt.wantY, sol.Value(y), 1e-3)
			assert.Nil(t, o.Objective())
		})
	}
}

// TestSolve_InfeasibleKeepsDebug checks the failure path and the debug view.
func TestSolve_InfeasibleKeepsDebug(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(3)
	o.SubjectTo(x.GeScalar(1), x.LeScalar(0))

	sol, err := o.Solve(context.Background())
	require.Error(t, err)
	assert.Nil(t, sol)

	var solveErr *opti.SolveError
	require.True(t, errors.As(err, &solveErr))
	assert.Equal(t, optim.LocalInfeasibility, solveErr.Status)
	assert.True(t, errors.Is(err, optim.ErrLocalInfeasibility))
	assert.Contains(t, err.Error(), "Converged to a point of local infeasibility")

	debug := o.Debug()
	require.NotNil(t, debug)
	assert.InDelta(t, 0.5, debug.Value(x), 1e-6)
	assert.Equal(t, optim.LocalInfeasibility, debug.Status())
}

func TestSolve_VerboseOutput(t *testing.T) {
	var buf bytes.Buffer
	o := newOpti(t, opti.WithOutput(&buf))
	x := o.Variable(0.5)
	o.Minimize(np.Square(x.SubScalar(2)))

	_, err := o.Solve(context.Background(), opti.Verbose(true))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Number of variables: 1, constraints: 0")
	assert.Contains(t, out, "inf_pr")
	assert.NotContains(t, out, "INF_PR")
	assert.Contains(t, out, "EXIT: Optimal Solution Found.")

	buf.Reset()
	_, err = o.Solve(context.Background(), opti.Verbose(false))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestSolve_Maximize(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(1, opti.LowerBound(0), opti.UpperBound(math.Pi))
	o.Maximize(np.Sin(x))

	sol, err := o.Solve(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, sol.Value(x), 1e-5)
	assert.InDelta(t, 1.0, sol.Stats().Objective, 1e-9)
	assert.Len(t, o.Constraints(), 2)
}

func TestSolve_BoundsActive(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(0, opti.UpperBound(1))
	o.Minimize(np.Square(x.SubScalar(3)))

	sol, err := o.Solve(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sol.Value(x), 1e-6)
	assert.Equal(t, "x0 <= 1", o.Constraints()[0].String())
}

func TestSolve_Scale(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(0, opti.Scale(1000))
	o.Minimize(np.Square(x.SubScalar(1000)).MulScalar(1e-6))

	sol, err := o.Solve(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, sol.Value(x), 1e-4)
	assert.InDelta(t, 1000.0, sol.X()[0], 1e-4)
}

func TestSolve_FreezeAndParameter(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(0)
	frozen := o.Variable(4, opti.Freeze())
	p := o.Parameter(2)
	o.Minimize(np.Square(x.Sub(p)).Add(frozen))

	sol, err := o.Solve(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sol.Value(x), 1e-6)
	assert.InDelta(t, 4.0, sol.Value(o.Objective()), 1e-6)
	assert.Equal(t, 1, o.Tape().NumVariables())

	o.SetParameter(p, 5)
	sol, err = o.Solve(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 5.0, sol.Value(x), 1e-6)
}

func TestSolution_LateExpressions(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(0)
	o.Minimize(np.Square(x.SubScalar(3)))

	sol, err := o.Solve(context.Background())
	require.NoError(t, err)

	later := np.Exp(x)
	y := o.Variable(7)
	assert.InDelta(t, math.Exp(3), sol.Value(later), 1e-4)
	assert.Equal(t, 7.0, sol.Value(y))
	assert.InDeltaSlice(t, []float64{3, 9}, sol.Values([]*autodiff.Expr{x, np.Square(x)}), 1e-4)

	_, ok := sol.Dual(x.LeScalar(1))
	assert.False(t, ok)
}

func TestSolve_NoVariables(t *testing.T) {
	o := newOpti(t)
	_, err := o.Solve(context.Background())
	assert.ErrorIs(t, err, opti.ErrNoVariables)
	assert.Nil(t, o.Debug())
}

func TestSolve_MaxIterationsOption(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(1)
	o.Minimize(np.Exp(np.Cos(x)))
	o.SubjectTo(x.LeScalar(math.Pi / 2))

	_, err := o.Solve(context.Background(), opti.MaxIterations(1))
	require.ErrorIs(t, err, optim.ErrMaxIterations)
	assert.Equal(t, 1, o.Debug().Stats().Iterations)
}

func TestSolve_MethodOption(t *testing.T) {
	o := newOpti(t)
	x := o.Variable(-1.2)
	y := o.Variable(1)
	one := o.Const(1)
	o.Minimize(np.Add(np.Square(one.Sub(x)), np.Square(y.Sub(np.Square(x))).MulScalar(100)))

	sol, err := o.Solve(context.Background(), opti.Method(optim.MethodLBFGS), opti.Tolerance(1e-9))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sol.Value(x), 1e-3)
	assert.InDelta(t, 1.0, sol.Value(y), 1e-3)
}

func TestOpti_ForeignExpressionPanics(t *testing.T) {
	a := newOpti(t)
	b := newOpti(t)
	x := b.Variable(0)

	assert.Panics(t, func() { a.Minimize(x) })
	assert.Panics(t, func() { a.SubjectTo(x.LeScalar(1)) })
	assert.Panics(t, func() { a.Variable(1, opti.Scale(0)) })
}

func TestVariables(t *testing.T) {
	o := newOpti(t)
	xs := o.Variables(3, 1, opti.LowerBound(0))
	o.Minimize(np.Sum(np.Map(xs, func(e *autodiff.Expr) *autodiff.Expr { return np.Square(e.SubScalar(2)) })))

	sol, err := o.Solve(context.Background())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2, 2}, sol.Values(xs), 1e-6)
	assert.Len(t, o.Constraints(), 3)
}
