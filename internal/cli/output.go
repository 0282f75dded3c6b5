package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"energy_forecast/internal/dashboard"
)

const (
	estimateMark   = "*"
	estimateLegend = "* estimated, not measured"
)

func writeTable(w io.Writer, v dashboard.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tACTUAL\tFORECAST\tINJECTED\tIRRADIATION\tDIFF\tDIFF %\t")
	estimated := v.Summary.Synthetic
	for _, r := range v.Rows {
		mark := ""
		if r.Synthetic {
			mark = estimateMark
			estimated = true
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%s\t%s%s\t%s\t%s\t\n",
			r.Date, optional(r.Real), number(r.Predicted),
			optional(r.Injected), mark, optional(r.Irradiation), mark,
			optional(r.Difference), percent(r.DifferencePct))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := v.Summary
	fmt.Fprintf(w, "\nModel %s, page %d of %d, %d of %d records (%s%%)\n",
		v.Model.Label, v.Page, v.TotalPages, s.Count, v.PredictionCount, number(s.PercentOfTotal))
	fmt.Fprintf(w, "Actual %s kWh, forecast %s kWh, difference %s%%\n",
		number(s.RealSum), number(s.PredictedSum), number(s.AggregateDifference))
	summaryMark := ""
	if s.Synthetic {
		summaryMark = estimateMark
	}
	fmt.Fprintf(w, "Injected %s%s kWh, mean irradiation %s%s W/m²\n",
		number(s.InjectedSum), summaryMark, number(s.IrradiationMean), summaryMark)
	if estimated {
		fmt.Fprintln(w, estimateLegend)
	}
	if v.NextDay != nil {
		writeNextDay(w, *v.NextDay)
	}
	return nil
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func optional(f *float64) string {
	if f == nil {
		return "-"
	}
	return number(*f)
}

func percent(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return number(*f) + "%"
}
