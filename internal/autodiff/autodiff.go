// Package autodiff implements reverse-mode automatic differentiation over a
// scalar computation trace.
//
// Architecture:
//   - Tape: append-only record of nodes (leaves and operations)
//   - Expr: handle to a node; every arithmetic call appends a node
//   - Operation interface (package ops): forward value and backward adjoints
//   - Reverse-mode AD: one backward sweep yields the full gradient of a node
//
// Leaves come in three kinds. Variables are the decision variables a solver
// moves; their values are read from the point passed to Forward. Parameters
// are fixed during a solve but can be changed between solves. Constants never
// change.
//
// Usage:
//
//	tape := autodiff.NewTape()
//	x := tape.Variable(1.5)
//	y := x.Cos().Exp() // y = exp(cos(x))
//
//	values := tape.Forward([]float64{1.5})
//	grad := make([]float64, tape.NumVariables())
//	tape.Gradient(values, y, grad) // grad[0] = -sin(1.5) * exp(cos(1.5))
package autodiff

import (
	"fmt"

	"github.com/born-ml/opti/internal/autodiff/ops"
)

type leafKind uint8

const (
	opNode leafKind = iota
	variableNode
	parameterNode
	constantNode
)

// node is a single entry on the tape.
type node struct {
	kind   leafKind
	op     ops.Operation
	inputs []int
	slot   int     // variable slot (variableNode only)
	value  float64 // constant or parameter value
}

// Tape records the computation trace.
//
// Nodes only ever reference nodes recorded before them, so the tape order is
// a topological order and both passes are single linear sweeps.
type Tape struct {
	nodes   []node
	vars    []int     // node id per variable slot
	initial []float64 // initial guess per variable slot
}

// NewTape creates a new, empty tape.
func NewTape() *Tape {
	return &Tape{
		nodes: make([]node, 0, 64), // Pre-allocate for common case
	}
}

// Variable appends a new decision variable with the given initial guess.
func (t *Tape) Variable(init float64) *Expr {
	id := t.push(node{kind: variableNode, slot: len(t.vars)})
	t.vars = append(t.vars, id)
	t.initial = append(t.initial, init)
	return &Expr{tape: t, id: id}
}

// Parameter appends a leaf whose value is fixed during evaluation but can be
// changed with SetParameter.
func (t *Tape) Parameter(value float64) *Expr {
	return &Expr{tape: t, id: t.push(node{kind: parameterNode, value: value})}
}

// SetParameter changes the value of a parameter leaf.
func (t *Tape) SetParameter(p *Expr, value float64) {
	t.check(p)
	n := &t.nodes[p.id]
	if n.kind != parameterNode {
		panic(fmt.Sprintf("autodiff: node %d is not a parameter", p.id))
	}
	n.value = value
}

// Constant appends a constant leaf.
func (t *Tape) Constant(value float64) *Expr {
	return &Expr{tape: t, id: t.push(node{kind: constantNode, value: value})}
}

// NumVariables returns the number of decision variables on the tape.
func (t *Tape) NumVariables() int {
	return len(t.vars)
}

// NumNodes returns the number of recorded nodes.
func (t *Tape) NumNodes() int {
	return len(t.nodes)
}

// Initial returns a copy of the initial guess for every variable slot.
func (t *Tape) Initial() []float64 {
	out := make([]float64, len(t.initial))
	copy(out, t.initial)
	return out
}

// SetInitial overrides the initial guess of a variable.
func (t *Tape) SetInitial(v *Expr, value float64) {
	t.initial[t.Slot(v)] = value
}

// Slot returns the variable slot of e, panicking if e is not a variable.
func (t *Tape) Slot(v *Expr) int {
	t.check(v)
	n := t.nodes[v.id]
	if n.kind != variableNode {
		panic(fmt.Sprintf("autodiff: node %d is not a variable", v.id))
	}
	return n.slot
}

// IsVariable reports whether e is a decision variable leaf.
func (t *Tape) IsVariable(e *Expr) bool {
	t.check(e)
	return t.nodes[e.id].kind == variableNode
}

// apply records op over the given inputs.
func (t *Tape) apply(op ops.Operation, inputs ...*Expr) *Expr {
	ids := make([]int, len(inputs))
	for i, in := range inputs {
		t.check(in)
		ids[i] = in.id
	}
	return &Expr{tape: t, id: t.push(node{kind: opNode, op: op, inputs: ids})}
}

func (t *Tape) push(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tape) check(e *Expr) {
	if e == nil {
		panic("autodiff: nil expression")
	}
	if e.tape != t {
		panic("autodiff: expression belongs to a different tape")
	}
}
