package optim

// Iteration summarizes one outer iteration.
type Iteration struct {
	Iter            int
	Objective       float64
	Violation       float64 // max |h|, max(g, 0)
	Stationarity    float64 // |∇f + Jᵀλ|∞
	Penalty         float64
	InnerIterations int
	InnerStatus     string
}

// Result holds the final (or last attempted) iterate of a solve.
type Result struct {
	X               []float64
	Objective       float64
	Constraints     []float64
	Multipliers     []float64
	Violation       float64
	Stationarity    float64
	Penalty         float64
	Status          Status
	Iterations      int
	InnerIterations int
	FuncEvaluations int
	GradEvaluations int
	History         []Iteration
}

// Message returns the exit message for the result's status.
func (r *Result) Message() string {
	return r.Status.Message()
}
