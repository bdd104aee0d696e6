package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sustainlab/materiality/internal/catalog"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the assessment topics and rating fields",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Select exactly %d of %d topics:\n", catalog.SelectionSize, catalog.Len())
		for i, t := range catalog.Topics() {
			fmt.Fprintf(out, "%3d. %s\n", i+1, t)
		}

		fmt.Fprintln(out, "\nRated fields:")
		for _, f := range catalog.Fields {
			if f.IsScale() {
				fmt.Fprintf(out, "  %-22s %s (%d-%d, default %d)\n", f, f.Label(),
					catalog.ScaleMin, catalog.ScaleMax, catalog.ScaleDefault)
				continue
			}
			fmt.Fprintf(out, "  %-22s %s (%s / %s)\n", f, f.Label(),
				catalog.IssueActual.Label(), catalog.IssuePotential.Label())
		}
	},
}
