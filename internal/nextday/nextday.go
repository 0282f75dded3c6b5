// Package nextday resolves the forecast for the day after a chosen end date.
package nextday

import (
	"energy_forecast/internal/model"
)

// Result is the forecast for the day following the chosen end date.
type Result struct {
	Date      model.Date `json:"date"`
	Predicted float64    `json:"predicted"`
	BaseDate  model.Date `json:"base_date"`
	BaseValue float64    `json:"base_value"`
	// Fallback is set when no record exists for Date and Predicted repeats
	// BaseValue.
	Fallback bool `json:"fallback"`
}

// Lookup finds the record dated end+1 in the full sequence and returns its
// forecast. When there is none, the forecast of the last record on or before
// end is reused. It returns false when no record is on or before end.
func Lookup(records []model.PredictionRecord, end model.Date) (Result, bool) {
	if end.IsZero() {
		return Result{}, false
	}

	var last model.PredictionRecord
	found := false
	for _, r := range records {
		if r.Date.After(end) {
			continue
		}
		if !found || !r.Date.Before(last.Date) {
			last = r
			found = true
		}
	}
	if !found {
		return Result{}, false
	}

	next := end.AddDays(1)
	res := Result{
		Date:      next,
		Predicted: last.Predicted,
		BaseDate:  last.Date,
		BaseValue: last.Predicted,
		Fallback:  true,
	}
	for _, r := range records {
		if r.Date.Equal(next) {
			res.Predicted = r.Predicted
			res.Fallback = false
			break
		}
	}
	return res, true
}
