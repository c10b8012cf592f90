package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/born-ml/opti/internal/catalog"
	"github.com/born-ml/opti/internal/optim"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available example problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
			tw.AppendHeader(table.Row{"name", "expected", "description"})
			for _, ex := range catalog.All() {
				expected := "optimum"
				if ex.ExpectFailure {
					expected = "failure"
				}
				tw.AppendRow(table.Row{ex.Name, expected, ex.Description})
			}
			tw.Render()
			return nil
		},
	}
}

func completeExamples(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, ex := range catalog.All() {
		names = append(names, ex.Name+"\t"+ex.Description)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeMethods(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, m := range optim.Methods() {
		names = append(names, string(m))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
