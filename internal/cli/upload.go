package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"energy_forecast/internal/ingest"
)

func newUploadCmd(opts *options) *cobra.Command {
	var showDates bool

	cmd := &cobra.Command{
		Use:   "upload <file.csv>",
		Short: "Submit a dataset to the prediction service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			info, err := ingest.InspectCSV(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.callContext(cmd.Context())
			defer cancel()

			res, err := client.SubmitDataset(ctx, filepath.Base(path), bytes.NewReader(data))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d rows, %d columns\n", filepath.Base(path), info.Rows, len(info.Columns))
			fmt.Fprintf(out, "File processed successfully! %d records loaded.\n", res.AcceptedDateCount)
			if showDates {
				for _, d := range res.AcceptedDates {
					fmt.Fprintln(out, d)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDates, "dates", false, "print the accepted dates")
	return cmd
}
