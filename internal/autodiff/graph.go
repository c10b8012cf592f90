package autodiff

import (
	"strconv"
	"strings"
)

// Graph renders the expression rooted at e in prefix form, e.g.
// "exp(cos(x0))". Variables render as x<slot>, parameters as p<id>.
func (t *Tape) Graph(e *Expr) string {
	t.check(e)
	var sb strings.Builder
	t.render(&sb, e.id)
	return sb.String()
}

func (t *Tape) render(sb *strings.Builder, id int) {
	n := t.nodes[id]
	switch n.kind {
	case variableNode:
		sb.WriteString("x")
		sb.WriteString(strconv.Itoa(n.slot))
		return
	case parameterNode:
		sb.WriteString("p")
		sb.WriteString(strconv.Itoa(id))
		return
	case constantNode:
		sb.WriteString(strconv.FormatFloat(n.value, 'g', -1, 64))
		return
	}

	name := n.op.Name()
	if len(n.inputs) == 2 {
		sb.WriteString("(")
		t.render(sb, n.inputs[0])
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString(" ")
		t.render(sb, n.inputs[1])
		sb.WriteString(")")
		return
	}

	switch op := n.op.(type) {
	case interface{ Scalar() float64 }:
		c := strconv.FormatFloat(op.Scalar(), 'g', -1, 64)
		sb.WriteString("(")
		if name == "*c" {
			sb.WriteString(c)
			sb.WriteString(" * ")
			t.render(sb, n.inputs[0])
		} else {
			t.render(sb, n.inputs[0])
			sb.WriteString(" + ")
			sb.WriteString(c)
		}
		sb.WriteString(")")
		return
	case interface{ Exponent() float64 }:
		sb.WriteString("pow(")
		t.render(sb, n.inputs[0])
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatFloat(op.Exponent(), 'g', -1, 64))
		sb.WriteString(")")
		return
	}

	sb.WriteString(name)
	sb.WriteString("(")
	for i, in := range n.inputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		t.render(sb, in)
	}
	sb.WriteString(")")
}
