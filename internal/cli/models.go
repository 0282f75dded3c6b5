package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"energy_forecast/internal/model"
)

func newModelsCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the forecasting models the prediction service accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tDEFAULT")
			for _, id := range model.Models() {
				def := ""
				if id == model.DefaultModel {
					def = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", id, id.Label(), def)
			}
			return tw.Flush()
		},
	}
}
