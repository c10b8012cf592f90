package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/born-ml/opti/internal/catalog"
	"github.com/born-ml/opti/internal/opti"
	"github.com/born-ml/opti/internal/parallel"
)

// ErrUnexpectedOutcome is returned when an example fails that should have
// solved, or solves when it should have failed.
var ErrUnexpectedOutcome = errors.New("unexpected solve outcome")

func newRunCommand() *cobra.Command {
	var (
		all  bool
		jobs int
	)

	cmd := &cobra.Command{
		Use:   "run [example...]",
		Short: "Solve example problems",
		Long: `Solve one or more example problems and print their solutions.

When a solve fails the solver diagnostic is printed together with the
values at the last iterate.`,
		Example: `  opti run exp-cos
  opti run system-positive system-negative --method lbfgs
  opti run --all --jobs 0 -v=false`,
		ValidArgsFunction: completeExamples,
		RunE: func(cmd *cobra.Command, args []string) error {
			var examples []catalog.Example
			switch {
			case all:
				examples = catalog.All()
			case len(args) == 0:
				return fmt.Errorf("no example given; use --all or one of the names from 'opti list'")
			default:
				for _, name := range args {
					ex, err := catalog.Lookup(name)
					if err != nil {
						return err
					}
					examples = append(examples, ex)
				}
			}
			return runExamples(cmd, examples, jobs)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Run every example")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Examples solved concurrently (0 uses every CPU)")
	return cmd
}

func runExamples(cmd *cobra.Command, examples []catalog.Example, jobs int) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	logger := GetLogger(ctx)
	out := cmd.OutOrStdout()

	opts := []opti.Option{
		opti.WithLogger(logger),
		opti.WithConfig(cfg.Solver.ToOptim()),
		opti.WithVerbose(cfg.Verbose),
	}

	pcfg := parallel.DefaultConfig()
	if jobs > 0 {
		pcfg.NumWorkers = jobs
	}

	reports, err := catalog.RunAll(ctx, examples, opts, pcfg)
	if err != nil {
		return err
	}

	var unexpected []string
	for i, report := range reports {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "== %s: %s\n", report.Example.Name, report.Example.Description)
		_, _ = io.WriteString(out, report.Log)
		renderReport(out, report, cfg.Verbose)

		if report.Unexpected() {
			logger.Warn("unexpected outcome", "example", report.Example.Name, "failed", report.Failed())
			unexpected = append(unexpected, report.Example.Name)
		}
	}

	if len(unexpected) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedOutcome, unexpected)
	}
	return nil
}

// renderReport prints the values table. When the solver was quiet the
// diagnostic of a failed solve is printed here instead.
func renderReport(w io.Writer, r *catalog.Report, verbose bool) {
	if r.Failed() {
		var solveErr *opti.SolveError
		if !verbose && errors.As(r.Err, &solveErr) {
			_, _ = fmt.Fprintf(w, "%s\n", solveErr.Diagnostic)
		}
		_, _ = fmt.Fprintln(w, "solve failed; values at the last iterate:")
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"expression", "value"})
	for i, out := range r.Outputs {
		tw.AppendRow(table.Row{out.Label, fmt.Sprintf("%.6f", r.Values[i])})
	}
	tw.AppendFooter(table.Row{"status", r.Stats.Status.String()})
	tw.Render()
}
