package optim

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/optimize"
)

// Method names the gonum minimizer used for the unconstrained subproblems.
type Method string

// Supported inner methods.
const (
	MethodBFGS            Method = "bfgs"
	MethodLBFGS           Method = "lbfgs"
	MethodCG              Method = "cg"
	MethodGradientDescent Method = "gd"
	MethodNelderMead      Method = "nelder-mead"
)

// Methods lists every supported inner method.
func Methods() []Method {
	return []Method{MethodBFGS, MethodLBFGS, MethodCG, MethodGradientDescent, MethodNelderMead}
}

// ParseMethod parses a method name, ignoring case.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("optim: unknown method %q", s)
}

// build returns a fresh gonum method. gonum methods keep state between
// iterations, so every inner solve gets its own instance.
func (m Method) build() (optimize.Method, error) {
	switch m {
	case MethodBFGS:
		return &optimize.BFGS{}, nil
	case MethodLBFGS:
		return &optimize.LBFGS{}, nil
	case MethodCG:
		return &optimize.CG{}, nil
	case MethodGradientDescent:
		return &optimize.GradientDescent{}, nil
	case MethodNelderMead:
		return &optimize.NelderMead{}, nil
	default:
		return nil, fmt.Errorf("optim: unknown method %q", string(m))
	}
}
