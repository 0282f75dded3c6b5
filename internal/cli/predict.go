package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"energy_forecast/internal/dashboard"
	"energy_forecast/internal/export"
	"energy_forecast/internal/filter"
	"energy_forecast/internal/forecast"
	"energy_forecast/internal/metrics"
	"energy_forecast/internal/model"
	"energy_forecast/internal/state"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type predictFlags struct {
	model    string
	file     string
	start    string
	end      string
	pageSize int
	page     int
	format   string
	output   string
}

func newPredictCmd(opts *options) *cobra.Command {
	f := &predictFlags{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fetch predictions for a model and show, filter or export them",
		Long: `Fetches the selected model's predictions. With --file the dataset is uploaded first;
otherwise the service is expected to hold a dataset from an earlier upload.

Formats: table (default, one page), json (the dashboard view), csv and xlsx
(every record inside the date range).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, opts, f)
		},
	}

	cmd.Flags().StringVar(&f.model, "model", string(model.DefaultModel), "forecasting model (arima, arimax, svr, mlp)")
	cmd.Flags().StringVar(&f.file, "file", "", "CSV dataset to upload before predicting")
	cmd.Flags().StringVar(&f.start, "start", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last date to include (YYYY-MM-DD); also selects the next-day forecast")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (5, 10, 25, 50, 100; default from config)")
	cmd.Flags().IntVar(&f.page, "page", 1, "page to show")
	cmd.Flags().StringVar(&f.format, "format", formatTable, "output format: table, json, csv, xlsx")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func runPredict(cmd *cobra.Command, opts *options, f *predictFlags) error {
	id, err := model.ParseModelID(f.model)
	if err != nil {
		return err
	}
	rng, err := model.ParseDateRange(f.start, f.end)
	if err != nil {
		return err
	}
	pageSize := f.pageSize
	if pageSize == 0 {
		pageSize = opts.cfg.PageSize
	}
	if !filter.ValidPageSize(pageSize) {
		return fmt.Errorf("%w: %d", dashboard.ErrInvalidPageSize, pageSize)
	}
	switch f.format {
	case formatTable, formatJSON, string(export.FormatCSV), string(export.FormatXLSX):
	default:
		return fmt.Errorf("unsupported format %q", f.format)
	}

	client, err := opts.client()
	if err != nil {
		return err
	}

	var st state.State
	if f.file != "" {
		st, err = uploadAndPredict(cmd, opts, client, f.file, id)
	} else {
		st, err = fetchState(cmd, opts, client, id)
	}
	if err != nil {
		return err
	}

	for _, a := range []state.Action{
		state.FilterChanged{Range: rng},
		state.PageSizeChanged{PageSize: pageSize},
		state.PageChanged{Page: f.page},
	} {
		st = state.Reduce(st, a)
	}

	write := func(out io.Writer) error {
		return writeResult(out, f.format, st)
	}
	if f.output == "" {
		return write(cmd.OutOrStdout())
	}
	file, err := os.Create(f.output)
	if err != nil {
		return err
	}
	return writeAndClose(file, write)
}

func writeResult(out io.Writer, format string, st state.State) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard.BuildView(st))
	case formatTable:
		return writeTable(out, dashboard.BuildView(st))
	}
	return export.Write(out, export.Format(format), filter.ByDateRange(st.Predictions, st.Range))
}

// writeAndClose reports the Close error too, since a failed flush loses the
// output.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// uploadAndPredict runs the dashboard flow: select, upload, predict.
func uploadAndPredict(cmd *cobra.Command, opts *options, client *forecast.Client, path string, id model.ModelID) (state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state.State{}, err
	}

	svc, err := dashboard.NewService(client,
		dashboard.WithSeed(opts.cfg.Seed),
		dashboard.WithNotifier(dashboard.NotifierFunc(func(n dashboard.Notification) {
			fmt.Fprintln(cmd.ErrOrStderr(), n.Message)
		})),
	)
	if err != nil {
		return state.State{}, err
	}
	if _, err := svc.SelectFile(filepath.Base(path), data); err != nil {
		return state.State{}, err
	}
	if _, err := svc.SelectModel(string(id)); err != nil {
		return state.State{}, err
	}

	ctx, cancel := opts.callContext(cmd.Context())
	defer cancel()
	if _, err := svc.Upload(ctx); err != nil {
		return state.State{}, err
	}

	ctx, cancel = opts.callContext(cmd.Context())
	defer cancel()
	if _, err := svc.Predict(ctx); err != nil {
		return state.State{}, err
	}
	return svc.State(), nil
}

// fetchState fetches predictions for a dataset uploaded earlier.
func fetchState(cmd *cobra.Command, opts *options, client *forecast.Client, id model.ModelID) (state.State, error) {
	ctx, cancel := opts.callContext(cmd.Context())
	defer cancel()

	records, err := client.FetchPredictions(ctx, id)
	if err != nil {
		return state.State{}, err
	}
	records = metrics.Enrich(records, metrics.NewGenerator(opts.cfg.Seed))
	log.Debug().Int("records", len(records)).Str("model", string(id)).Msg("predictions fetched")

	st := state.Reduce(state.Initial(), state.ModelSelected{Model: id})
	return state.Reduce(st, state.PredictSucceeded{Records: records}), nil
}
