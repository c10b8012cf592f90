package autodiff

import "fmt"

// Forward evaluates every node on the tape at the variable point x.
//
// The returned slice is indexed by node id and can be passed to Gradient and
// Value. Its length is the number of nodes at the time of the call; nodes
// recorded later need a fresh Forward.
func (t *Tape) Forward(x []float64) []float64 {
	if len(x) != len(t.vars) {
		panic(fmt.Sprintf("forward: got %d values for %d variables", len(x), len(t.vars)))
	}

	values := make([]float64, len(t.nodes))
	var in []float64
	for i := range t.nodes {
		n := &t.nodes[i]
		switch n.kind {
		case variableNode:
			values[i] = x[n.slot]
		case parameterNode, constantNode:
			values[i] = n.value
		default:
			in = gather(in[:0], values, n.inputs)
			values[i] = n.op.Forward(in)
		}
	}
	return values
}

// Value returns the value of e from a Forward result.
func (t *Tape) Value(values []float64, e *Expr) float64 {
	t.check(e)
	if e.id >= len(values) {
		panic(fmt.Sprintf("value: node %d recorded after forward pass of %d nodes", e.id, len(values)))
	}
	return values[e.id]
}

// Gradient computes d root / d x by walking the tape in reverse from root.
//
// Algorithm:
//  1. Seed the adjoint of root with 1
//  2. Walk nodes from root down to the first node
//  3. For each operation with a non-zero adjoint, apply the chain rule
//  4. Accumulate adjoints when a node feeds several consumers
//
// grad must have one entry per variable; it is overwritten.
func (t *Tape) Gradient(values []float64, root *Expr, grad []float64) {
	t.check(root)
	if len(grad) != len(t.vars) {
		panic(fmt.Sprintf("gradient: got buffer of %d for %d variables", len(grad), len(t.vars)))
	}
	if root.id >= len(values) {
		panic(fmt.Sprintf("gradient: node %d recorded after forward pass of %d nodes", root.id, len(values)))
	}
	for i := range grad {
		grad[i] = 0
	}

	adjoint := make([]float64, root.id+1)
	adjoint[root.id] = 1

	var in []float64
	for i := root.id; i >= 0; i-- {
		a := adjoint[i]
		if a == 0 {
			continue
		}
		n := &t.nodes[i]
		switch n.kind {
		case variableNode:
			grad[n.slot] += a
		case opNode:
			in = gather(in[:0], values, n.inputs)
			inputGrads := n.op.Backward(in, values[i], a)
			for j, id := range n.inputs {
				adjoint[id] += inputGrads[j]
			}
		}
	}
}

func gather(dst, values []float64, ids []int) []float64 {
	for _, id := range ids {
		dst = append(dst, values[id])
	}
	return dst
}
