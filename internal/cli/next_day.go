package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"energy_forecast/internal/model"
	"energy_forecast/internal/nextday"
)

func newNextDayCmd(opts *options) *cobra.Command {
	var modelFlag, endFlag string

	cmd := &cobra.Command{
		Use:   "next-day",
		Short: "Show the forecast for the day after --end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseModelID(modelFlag)
			if err != nil {
				return err
			}
			end, err := model.ParseDate(endFlag)
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}

			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.callContext(cmd.Context())
			defer cancel()

			records, err := client.FetchPredictions(ctx, id)
			if err != nil {
				return err
			}
			res, ok := nextday.Lookup(records, end)
			if !ok {
				return errors.New("no predictions on or before " + end.String())
			}
			writeNextDay(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", string(model.DefaultModel), "forecasting model (arima, arimax, svr, mlp)")
	cmd.Flags().StringVar(&endFlag, "end", "", "last observed date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func writeNextDay(w io.Writer, r nextday.Result) {
	fmt.Fprintf(w, "Forecast for %s: %s kWh\n", r.Date, number(r.Predicted))
	if r.Fallback {
		fmt.Fprintf(w, "No prediction for %s; repeating the forecast of %s\n", r.Date, r.BaseDate)
	}
}
