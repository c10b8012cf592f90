package opti

// VariableOption configures a decision variable.
type VariableOption func(*variableOptions)

type variableOptions struct {
	lower  *float64
	upper  *float64
	scale  float64
	freeze bool
}

// LowerBound constrains the variable to be >= lb.
func LowerBound(lb float64) VariableOption {
	return func(o *variableOptions) {
		o.lower = &lb
	}
}

// UpperBound constrains the variable to be <= ub.
func UpperBound(ub float64) VariableOption {
	return func(o *variableOptions) {
		o.upper = &ub
	}
}

// Scale sets the variable's characteristic magnitude. The solver works on
// x/scale, which helps when variables differ by orders of magnitude.
func Scale(s float64) VariableOption {
	return func(o *variableOptions) {
		o.scale = s
	}
}

// Freeze fixes the variable at its initial guess. The result is a parameter
// rather than a decision variable.
func Freeze() VariableOption {
	return func(o *variableOptions) {
		o.freeze = true
	}
}
