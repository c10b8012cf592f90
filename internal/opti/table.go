package opti

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/born-ml/opti/internal/optim"
)

// iterationTable collects outer iterations for verbose output.
type iterationTable struct {
	vars, cons int
	rows       []optim.Iteration
}

func newIterationTable(vars, cons int) *iterationTable {
	return &iterationTable{vars: vars, cons: cons}
}

func (t *iterationTable) observe(it optim.Iteration) {
	t.rows = append(t.rows, it)
}

func (t *iterationTable) render(w io.Writer, res *optim.Result, sense float64) {
	_, _ = fmt.Fprintf(w, "Number of variables: %d, constraints: %d\n\n", t.vars, t.cons)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"iter", "objective", "inf_pr", "inf_du", "penalty", "inner", "inner status"})
	for _, it := range t.rows {
		tw.AppendRow(table.Row{
			it.Iter,
			fmt.Sprintf("%.7e", it.Objective*sense),
			fmt.Sprintf("%.2e", it.Violation),
			fmt.Sprintf("%.2e", it.Stationarity),
			fmt.Sprintf("%.1e", it.Penalty),
			it.InnerIterations,
			it.InnerStatus,
		})
	}
	tw.Render()

	_, _ = fmt.Fprintf(w, "\n%s\n", diagnostic(res, sense))
}
