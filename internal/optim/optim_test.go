package optim_test

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/opti/internal/autodiff"
	"github.com/born-ml/opti/internal/optim"
	"github.com/born-ml/opti/internal/testutil"
)

type constraint struct {
	kind autodiff.Kind
	fn   func(x []float64) float64
	grad func(x, g []float64)
}

// funcProblem is a hand-written Problem for solver tests.
type funcProblem struct {
	n    int
	f    func(x []float64) float64
	df   func(x, g []float64)
	cons []constraint
}

func (p *funcProblem) Dim() int { return p.n }

func (p *funcProblem) Kinds() []autodiff.Kind {
	kinds := make([]autodiff.Kind, len(p.cons))
	for i, c := range p.cons {
		kinds[i] = c.kind
	}
	return kinds
}

func (p *funcProblem) Eval(x, c []float64) float64 {
	for i, con := range p.cons {
		c[i] = con.fn(x)
	}
	if p.f == nil {
		return 0
	}
	return p.f(x)
}

func (p *funcProblem) Grad(x, g []float64, jac *mat.Dense) {
	for i := range g {
		g[i] = 0
	}
	if p.df != nil {
		p.df(x, g)
	}
	row := make([]float64, p.n)
	for i, con := range p.cons {
		for j := range row {
			row[j] = 0
		}
		con.grad(x, row)
		jac.SetRow(i, row)
	}
}

func expCosProblem() *funcProblem {
	return &funcProblem{
		n:  1,
		f:  func(x []float64) float64 { return math.Exp(math.Cos(x[0])) },
		df: func(x, g []float64) { g[0] = -math.Sin(x[0]) * math.Exp(math.Cos(x[0])) },
		cons: []constraint{
			{autodiff.Inequality, func(x []float64) float64 { return -x[0] }, func(_, g []float64) { g[0] = -1 }},
			{autodiff.Inequality, func(x []float64) float64 { return x[0] - math.Pi/2 }, func(_, g []float64) { g[0] = 1 }},
		},
	}
}

func systemProblem() *funcProblem {
	// y = x², y² = 18 - x
	return &funcProblem{
		n: 2,
		cons: []constraint{
			{autodiff.Equality,
				func(x []float64) float64 { return x[1] - x[0]*x[0] },
				func(x, g []float64) { g[0], g[1] = -2*x[0], 1 }},
			{autodiff.Equality,
				func(x []float64) float64 { return x[1]*x[1] - 18 + x[0] },
				func(x, g []float64) { g[0], g[1] = 1, 2*x[1] }},
		},
	}
}

func infeasibleProblem() *funcProblem {
	// x >= 1 and x <= 0
	return &funcProblem{
		n: 1,
		cons: []constraint{
			{autodiff.Inequality, func(x []float64) float64 { return 1 - x[0] }, func(_, g []float64) { g[0] = -1 }},
			{autodiff.Inequality, func(x []float64) float64 { return x[0] }, func(_, g []float64) { g[0] = 1 }},
		},
	}
}

func rosenbrock() *funcProblem {
	return &funcProblem{
		n: 2,
		f: func(x []float64) float64 {
			return math.Pow(1-x[0], 2) + 100*math.Pow(x[1]-x[0]*x[0], 2)
		},
		df: func(x, g []float64) {
			g[0] = -2*(1-x[0]) - 400*x[0]*(x[1]-x[0]*x[0])
			g[1] = 200 * (x[1] - x[0]*x[0])
		},
	}
}

// boundedProblem exposes simple bounds next to the constraints that encode
// them.
type boundedProblem struct {
	*funcProblem
	lower, upper []float64
}

func (p *boundedProblem) Bounds() (lower, upper []float64) {
	return p.lower, p.upper
}

func newSolver(t *testing.T, cfg optim.Config) *optim.AugLag {
	t.Helper()
	cfg.Logger = testutil.NewTestLogger(t)
	return optim.NewAugLag(cfg)
}

// TestAugLag_ExpCosBounds minimizes exp(cos(x)) on [0, π/2].
func TestAugLag_ExpCosBounds(t *testing.T) {
	solver := newSolver(t, optim.Config{})

	res, err := solver.Minimize(context.Background(), expCosProblem(), []float64{1})
	require.NoError(t, err)

	assert.True(t, res.Status.Success())
	assert.InDelta(t, math.Pi/2, res.X[0], 1e-6)
	assert.InDelta(t, 1.0, res.Objective, 1e-6)
	// Active upper bound carries multiplier -f'(π/2) = 1.
	assert.InDelta(t, 0.0, res.Multipliers[0], 1e-6)
	assert.InDelta(t, 1.0, res.Multipliers[1], 1e-4)
	assert.LessOrEqual(t, res.Violation, 1e-8)
}

// TestAugLag_StartOnBound starts exp(cos(x)) at x = 0, where the gradient
// vanishes on the lower bound. The start is pushed inside, so the solver
// still reaches the minimum instead of stopping at the maximum.
func TestAugLag_StartOnBound(t *testing.T) {
	p := &boundedProblem{
		funcProblem: expCosProblem(),
		lower:       []float64{0},
		upper:       []float64{math.Pi / 2},
	}
	x0 := []float64{0}

	res, err := newSolver(t, optim.Config{}).Minimize(context.Background(), p, x0)
	require.NoError(t, err)
	assert.Equal(t, optim.Converged, res.Status)
	assert.InDelta(t, math.Pi/2, res.X[0], 1e-6)
	assert.InDelta(t, 1.0, res.Objective, 1e-6)
	assert.Equal(t, []float64{0}, x0, "caller's start is not modified")
}

func TestAugLag_CrossedBoundsNotPushed(t *testing.T) {
	p := &boundedProblem{
		funcProblem: infeasibleProblem(),
		lower:       []float64{1},
		upper:       []float64{0},
	}
	res, err := newSolver(t, optim.Config{}).Minimize(context.Background(), p, []float64{3})
	assert.ErrorIs(t, err, optim.ErrLocalInfeasibility)
	assert.InDelta(t, 0.5, res.X[0], 1e-3)
}

// TestAugLag_NonlinearSystem checks that the root depends on the initial guess.
func TestAugLag_NonlinearSystem(t *testing.T) {
	tests := []struct {
		name string
		x0   []float64
		want []float64
	}{
		{"positive root", []float64{1.5, 3}, []float64{2, 4}},
		{"negative root", []float64{-1.5, 3}, []float64{-2.1179, 4.4853}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solver := newSolver(t, optim.Config{})
			res, err := solver.Minimize(context.Background(), systemProblem(), tt.x0)
			require.NoError(t, err)
			assert.InDelta(t, tt.want[0], res.X[0], 1e-3)
			assert.InDelta(t, tt.want[1], res.X[1], 1e-3)
			assert.LessOrEqual(t, res.Violation, 1e-8)
		})
	}
}

// TestAugLag_Unconstrained solves Rosenbrock without constraints.
func TestAugLag_Unconstrained(t *testing.T) {
	solver := newSolver(t, optim.Config{})

	res, err := solver.Minimize(context.Background(), rosenbrock(), []float64{-1.2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.X[0], 1e-4)
	assert.InDelta(t, 1.0, res.X[1], 1e-4)
	assert.Empty(t, res.Constraints)
}

// TestAugLag_RosenbrockDisk solves Rosenbrock inside the unit disk.
func TestAugLag_RosenbrockDisk(t *testing.T) {
	p := rosenbrock()
	p.cons = []constraint{{
		autodiff.Inequality,
		func(x []float64) float64 { return x[0]*x[0] + x[1]*x[1] - 1 },
		func(x, g []float64) { g[0], g[1] = 2*x[0], 2*x[1] },
	}}

	for _, method := range []optim.Method{optim.MethodBFGS, optim.MethodLBFGS} {
		t.Run(string(method), func(t *testing.T) {
			solver := newSolver(t, optim.Config{Method: method})
			res, err := solver.Minimize(context.Background(), p, []float64{0, 0})
			require.NoError(t, err)
			assert.InDelta(t, 0.7864, res.X[0], 1e-3)
			assert.InDelta(t, 0.6177, res.X[1], 1e-3)
		})
	}
}

// TestAugLag_LocalInfeasibility reports failure and keeps the last iterate.
func TestAugLag_LocalInfeasibility(t *testing.T) {
	solver := newSolver(t, optim.Config{})

	res, err := solver.Minimize(context.Background(), infeasibleProblem(), []float64{3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, optim.ErrLocalInfeasibility))
	require.NotNil(t, res)
	assert.Equal(t, optim.LocalInfeasibility, res.Status)
	assert.InDelta(t, 0.5, res.X[0], 1e-6)
	assert.InDelta(t, 0.5, res.Violation, 1e-6)
	assert.Contains(t, res.Message(), "local infeasibility")
}

// TestAugLag_EqualityInfeasible detects x² + 1 = 0 as infeasible.
func TestAugLag_EqualityInfeasible(t *testing.T) {
	p := &funcProblem{
		n: 1,
		cons: []constraint{{
			autodiff.Equality,
			func(x []float64) float64 { return x[0]*x[0] + 1 },
			func(x, g []float64) { g[0] = 2 * x[0] },
		}},
	}
	solver := newSolver(t, optim.Config{})

	res, err := solver.Minimize(context.Background(), p, []float64{1})
	require.ErrorIs(t, err, optim.ErrLocalInfeasibility)
	assert.InDelta(t, 0.0, res.X[0], 1e-6)
}

func TestAugLag_MaxIterations(t *testing.T) {
	solver := newSolver(t, optim.Config{MaxIterations: 1})

	res, err := solver.Minimize(context.Background(), expCosProblem(), []float64{1})
	require.ErrorIs(t, err, optim.ErrMaxIterations)
	assert.Equal(t, optim.MaxIterations, res.Status)
	assert.Equal(t, 1, res.Iterations)
	assert.Len(t, res.History, 1)
}

func TestAugLag_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	solver := newSolver(t, optim.Config{})

	res, err := solver.Minimize(ctx, expCosProblem(), []float64{1})
	require.ErrorIs(t, err, optim.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []float64{1}, res.X)
}

func TestAugLag_Dimension(t *testing.T) {
	solver := newSolver(t, optim.Config{})

	_, err := solver.Minimize(context.Background(), expCosProblem(), []float64{1, 2})
	assert.ErrorIs(t, err, optim.ErrDimension)

	_, err = solver.Minimize(context.Background(), &funcProblem{}, nil)
	assert.ErrorIs(t, err, optim.ErrDimension)
}

func TestAugLag_NaNAtStart(t *testing.T) {
	p := &funcProblem{
		n:  1,
		f:  func(x []float64) float64 { return math.Log(x[0]) },
		df: func(x, g []float64) { g[0] = 1 / x[0] },
	}
	solver := newSolver(t, optim.Config{})

	res, err := solver.Minimize(context.Background(), p, []float64{-1})
	require.ErrorIs(t, err, optim.ErrNumerical)
	assert.Equal(t, optim.NumericalFailure, res.Status)
}

func TestAugLag_Observer(t *testing.T) {
	var seen []optim.Iteration
	solver := newSolver(t, optim.Config{
		Observer: func(it optim.Iteration) { seen = append(seen, it) },
	})

	res, err := solver.Minimize(context.Background(), expCosProblem(), []float64{1})
	require.NoError(t, err)
	assert.Equal(t, res.History, seen)
	assert.Equal(t, res.Iterations, len(seen))
	assert.Positive(t, res.FuncEvaluations)
	assert.Positive(t, res.GradEvaluations)
}

func TestConfig_Defaults(t *testing.T) {
	solver := optim.NewAugLag(optim.Config{Tolerance: 1e-6})
	cfg := solver.Config()

	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, optim.DefaultConfig().MaxIterations, cfg.MaxIterations)
	assert.Equal(t, optim.MethodBFGS, cfg.Method)
	require.NotNil(t, cfg.Logger)
	assert.Equal(t, slog.DiscardHandler, cfg.Logger.Handler())
	assert.Equal(t, "auglag(bfgs)", solver.Name())
}

func TestParseMethod(t *testing.T) {
	m, err := optim.ParseMethod(" LBFGS ")
	require.NoError(t, err)
	assert.Equal(t, optim.MethodLBFGS, m)

	_, err = optim.ParseMethod("newton")
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	assert.True(t, optim.Converged.Success())
	assert.True(t, optim.Acceptable.Success())
	assert.False(t, optim.LocalInfeasibility.Success())
	assert.Nil(t, optim.Converged.Err())
	assert.Equal(t, optim.ErrMaxIterations, optim.MaxIterations.Err())
	assert.Equal(t, "local_infeasibility", optim.LocalInfeasibility.String())
	assert.Equal(t, "Optimal Solution Found.", optim.Converged.Message())
}
