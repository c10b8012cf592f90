package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/born-ml/opti/internal/autodiff"
)

// AugLag implements the Powell-Hestenes-Rockafellar augmented Lagrangian
// method.
//
// Each outer iteration minimizes, without constraints,
//
//	L(x; λ, ρ) = f(x) + Σ_eq   (λᵢhᵢ(x) + ½ρhᵢ(x)²)
//	                  + Σ_ineq (max(0, λᵢ + ρgᵢ(x))² - λᵢ²) / 2ρ
//
// with a gonum method, then updates the multipliers
//
//	λᵢ ← λᵢ + ρhᵢ(x)          (equalities)
//	λᵢ ← max(0, λᵢ + ρgᵢ(x))  (inequalities)
//
// and multiplies ρ by PenaltyGrowth whenever the violation did not shrink to
// a quarter of its previous value.
//
// A point is reported locally infeasible when it is infeasible but the
// gradient of the squared violation, Jᵀc₊, vanishes relative to c₊, or when
// the penalty sits at its cap without progress.
type AugLag struct {
	cfg Config
}

// NewAugLag creates a new augmented Lagrangian solver.
//
// Default hyperparameters are taken from DefaultConfig for zero fields.
func NewAugLag(cfg Config) *AugLag {
	return &AugLag{cfg: cfg.withDefaults()}
}

// Name returns the solver name.
func (a *AugLag) Name() string {
	return "auglag(" + string(a.cfg.Method) + ")"
}

// Config returns the effective configuration.
func (a *AugLag) Config() Config {
	return a.cfg
}

// stallLimit is the number of outer iterations at the penalty cap without
// progress before the problem is declared locally infeasible.
const stallLimit = 3

// Minimize solves p starting from x0.
func (a *AugLag) Minimize(ctx context.Context, p Problem, x0 []float64) (*Result, error) {
	n := p.Dim()
	if n == 0 {
		return nil, fmt.Errorf("%w: problem has no variables", ErrDimension)
	}
	if len(x0) != n {
		return nil, fmt.Errorf("%w: initial point has %d values for %d variables", ErrDimension, len(x0), n)
	}

	cfg := a.cfg
	ev := newEvaluator(p)
	x := make([]float64, n)
	copy(x, x0)
	if b, ok := p.(Bounded); ok {
		lower, upper := b.Bounds()
		pushInside(x, lower, upper)
	}
	lambda := make([]float64, ev.m)
	rho := cfg.InitialPenalty

	res := &Result{Status: Running}
	prevViolation := math.Inf(1)
	stalled := 0

	// Record the starting point so a failure before the first inner solve
	// still reports a meaningful iterate.
	ev.measure(x, lambda)
	ev.fill(res, x, lambda, rho)
	if !ev.finite() {
		return a.finish(res, NumericalFailure, nil)
	}

	for k := 1; k <= cfg.MaxIterations; k++ {
		if err := ctx.Err(); err != nil {
			return a.finish(res, Canceled, err)
		}

		inner, err := a.inner(ev, x, lambda, rho)
		if inner == nil {
			return a.finish(res, NumericalFailure, err)
		}
		copy(x, inner.X)
		res.InnerIterations += inner.Stats.MajorIterations

		// Multipliers are updated from the constraint values at the new
		// iterate before stationarity is measured.
		ev.eval(x)
		ev.updateMultipliers(lambda, rho)
		ev.measure(x, lambda)
		ev.fill(res, x, lambda, rho)
		res.Iterations = k

		it := Iteration{
			Iter:            k,
			Objective:       ev.f,
			Violation:       ev.violation,
			Stationarity:    ev.stationarity,
			Penalty:         rho,
			InnerIterations: inner.Stats.MajorIterations,
			InnerStatus:     inner.Status.String(),
		}
		res.History = append(res.History, it)
		cfg.Logger.Debug("auglag iteration",
			"iter", k,
			"objective", ev.f,
			"violation", ev.violation,
			"stationarity", ev.stationarity,
			"penalty", rho,
			"inner_iterations", inner.Stats.MajorIterations,
			"inner_status", inner.Status.String(),
		)
		if cfg.Observer != nil {
			cfg.Observer(it)
		}

		if !ev.finite() {
			return a.finish(res, NumericalFailure, err)
		}

		feasible := ev.violation <= cfg.ConstraintTolerance && ev.complementarity <= cfg.ConstraintTolerance
		scale := 1 + floats.Norm(lambda, math.Inf(1))
		if feasible && ev.stationarity <= cfg.Tolerance*scale {
			return a.finish(res, Converged, nil)
		}
		innerStuck := err != nil || inner.Status != optimize.GradientThreshold
		if feasible && innerStuck && ev.stationarity <= cfg.AcceptableTolerance*scale {
			return a.finish(res, Acceptable, nil)
		}

		if ev.violation > cfg.ConstraintTolerance {
			if ev.infeasibilityRatio() <= cfg.InfeasibilityTolerance {
				return a.finish(res, LocalInfeasibility, nil)
			}
			if rho >= cfg.MaxPenalty && ev.violation > 0.25*prevViolation {
				stalled++
				if stalled >= stallLimit {
					return a.finish(res, LocalInfeasibility, nil)
				}
			} else {
				stalled = 0
			}
		}

		if ev.violation > 0.25*prevViolation {
			rho = math.Min(rho*cfg.PenaltyGrowth, cfg.MaxPenalty)
		}
		prevViolation = ev.violation
	}

	return a.finish(res, MaxIterations, nil)
}

// boundPush is the relative distance an initial point keeps from its
// simple bounds.
const boundPush = 1e-2

// pushInside moves x strictly inside [lower, upper]. Crossed bounds are
// left alone.
func pushInside(x, lower, upper []float64) {
	for i := range x {
		lo, hi := lower[i], upper[i]
		if lo > hi {
			continue
		}
		width := math.Inf(1)
		if !math.IsInf(lo, -1) && !math.IsInf(hi, 1) {
			width = boundPush * (hi - lo)
		}
		if !math.IsInf(lo, -1) {
			x[i] = math.Max(x[i], lo+math.Min(boundPush*math.Max(1, math.Abs(lo)), width))
		}
		if !math.IsInf(hi, 1) {
			x[i] = math.Min(x[i], hi-math.Min(boundPush*math.Max(1, math.Abs(hi)), width))
		}
	}
}

// inner minimizes the augmented Lagrangian for fixed multipliers and penalty.
// A non-nil result may come with an error when gonum stopped early, e.g. on a
// line search failure; the result then holds the best point found.
func (a *AugLag) inner(ev *evaluator, x, lambda []float64, rho float64) (*optimize.Result, error) {
	method, err := a.cfg.Method.build()
	if err != nil {
		return nil, err
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return ev.merit(x, lambda, rho)
		},
		Grad: func(grad, x []float64) {
			ev.meritGrad(grad, x, lambda, rho)
		},
	}
	settings := &optimize.Settings{
		GradientThreshold: a.cfg.Tolerance,
		MajorIterations:   a.cfg.MaxInnerIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-15,
			Relative:   1e-15,
			Iterations: 50,
		},
	}

	res, err := optimize.Minimize(problem, x, settings, method)
	if err != nil {
		a.cfg.Logger.Debug("inner minimizer stopped", "error", err)
	}
	if res == nil || len(res.X) != len(x) {
		if err == nil {
			err = errors.New("optim: inner minimizer returned no result")
		}
		return nil, err
	}
	return res, err
}

func (a *AugLag) finish(res *Result, status Status, cause error) (*Result, error) {
	res.Status = status
	a.cfg.Logger.Debug("auglag finished",
		"status", status.String(),
		"iterations", res.Iterations,
		"objective", res.Objective,
		"violation", res.Violation,
	)
	sentinel := status.Err()
	switch {
	case sentinel == nil:
		return res, nil
	case cause != nil:
		return res, fmt.Errorf("%w: %w", sentinel, cause)
	default:
		return res, sentinel
	}
}

// evaluator caches the problem's values and derivatives at the latest point.
type evaluator struct {
	p     Problem
	kinds []autodiff.Kind
	n, m  int

	f   float64
	c   []float64
	g   []float64
	jac *mat.Dense
	w   []float64

	violation       float64
	complementarity float64
	stationarity    float64

	funcEvals int
	gradEvals int
}

func newEvaluator(p Problem) *evaluator {
	kinds := p.Kinds()
	n, m := p.Dim(), len(kinds)
	ev := &evaluator{
		p:     p,
		kinds: kinds,
		n:     n,
		m:     m,
		c:     make([]float64, m),
		g:     make([]float64, n),
		w:     make([]float64, m),
	}
	if m > 0 {
		ev.jac = mat.NewDense(m, n, nil)
	}
	return ev
}

func (ev *evaluator) eval(x []float64) {
	ev.f = ev.p.Eval(x, ev.c)
	ev.funcEvals++
}

func (ev *evaluator) grad(x []float64) {
	ev.p.Grad(x, ev.g, ev.jac)
	ev.gradEvals++
}

// merit returns the augmented Lagrangian at x.
func (ev *evaluator) merit(x, lambda []float64, rho float64) float64 {
	ev.eval(x)
	l := ev.f
	for i, ci := range ev.c {
		li := lambda[i]
		if ev.kinds[i] == autodiff.Inequality && li+rho*ci <= 0 {
			l -= li * li / (2 * rho)
			continue
		}
		l += li*ci + 0.5*rho*ci*ci
	}
	return l
}

// meritGrad writes the gradient of the augmented Lagrangian at x into grad.
func (ev *evaluator) meritGrad(grad, x, lambda []float64, rho float64) {
	ev.eval(x)
	ev.grad(x)
	copy(grad, ev.g)
	if ev.m == 0 {
		return
	}
	for i, ci := range ev.c {
		wi := lambda[i] + rho*ci
		if ev.kinds[i] == autodiff.Inequality && wi < 0 {
			wi = 0
		}
		ev.w[i] = wi
	}
	ev.addJacT(grad, ev.w)
}

// addJacT adds Jᵀv to dst.
func (ev *evaluator) addJacT(dst, v []float64) {
	var jtv mat.VecDense
	jtv.MulVec(ev.jac.T(), mat.NewVecDense(ev.m, v))
	floats.Add(dst, jtv.RawVector().Data)
}

func (ev *evaluator) updateMultipliers(lambda []float64, rho float64) {
	for i, ci := range ev.c {
		lambda[i] += rho * ci
		if ev.kinds[i] == autodiff.Inequality && lambda[i] < 0 {
			lambda[i] = 0
		}
	}
}

// measure evaluates the optimality measures at x for the given multipliers.
func (ev *evaluator) measure(x, lambda []float64) {
	ev.eval(x)
	ev.grad(x)

	ev.violation, ev.complementarity = 0, 0
	for i, ci := range ev.c {
		if ev.kinds[i] == autodiff.Equality {
			ev.violation = math.Max(ev.violation, math.Abs(ci))
			continue
		}
		ev.violation = math.Max(ev.violation, math.Max(ci, 0))
		ev.complementarity = math.Max(ev.complementarity, math.Abs(math.Min(-ci, lambda[i])))
	}

	lag := make([]float64, ev.n)
	copy(lag, ev.g)
	if ev.m > 0 {
		ev.addJacT(lag, lambda)
	}
	ev.stationarity = floats.Norm(lag, math.Inf(1))
}

// infeasibilityRatio returns |Jᵀc₊|∞ / |c₊|∞, which tends to zero at a
// stationary point of the squared violation that is not feasible.
func (ev *evaluator) infeasibilityRatio() float64 {
	cplus := make([]float64, ev.m)
	for i, ci := range ev.c {
		if ev.kinds[i] == autodiff.Inequality {
			ci = math.Max(ci, 0)
		}
		cplus[i] = ci
	}
	norm := floats.Norm(cplus, math.Inf(1))
	if norm == 0 {
		return math.Inf(1)
	}
	dir := make([]float64, ev.n)
	ev.addJacT(dir, cplus)
	return floats.Norm(dir, math.Inf(1)) / norm
}

func (ev *evaluator) finite() bool {
	if math.IsNaN(ev.f) || math.IsInf(ev.f, 0) {
		return false
	}
	for _, v := range [][]float64{ev.c, ev.g} {
		for _, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

// fill copies the evaluator's current state into res.
func (ev *evaluator) fill(res *Result, x, lambda []float64, rho float64) {
	res.X = append(res.X[:0], x...)
	res.Objective = ev.f
	res.Constraints = append(res.Constraints[:0], ev.c...)
	res.Multipliers = append(res.Multipliers[:0], lambda...)
	res.Violation = ev.violation
	res.Stationarity = ev.stationarity
	res.Penalty = rho
	res.FuncEvaluations = ev.funcEvals
	res.GradEvaluations = ev.gradEvals
}
