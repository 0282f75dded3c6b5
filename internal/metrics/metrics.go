// Package metrics derives the dashboard statistics from a set of prediction
// records: totals, averages and the actual-vs-forecast percentage differences.
package metrics

import (
	"math"

	"energy_forecast/internal/model"
)

// Summary holds aggregate statistics over a filtered record set.
type Summary struct {
	Count               int     `json:"count"`
	PercentOfTotal      float64 `json:"percent_of_total"`
	RealSum             float64 `json:"real_sum"`
	PredictedSum        float64 `json:"predicted_sum"`
	InjectedSum         float64 `json:"injected_sum"`
	IrradiationMean     float64 `json:"irradiation_mean"`
	AggregateDifference float64 `json:"aggregate_difference_pct"`
	// Synthetic is set when InjectedSum or IrradiationMean include estimated
	// values rather than measurements from the service.
	Synthetic           bool    `json:"synthetic"`
}

// Summarize aggregates filtered, where total is the size of the unfiltered
// sequence. Missing real values count as 0; missing injected values count as
// their Placeholder, which marks the summary Synthetic.
func Summarize(filtered []model.PredictionRecord, total int) Summary {
	s := Summary{Count: len(filtered)}
	if total > 0 {
		s.PercentOfTotal = float64(len(filtered)) / float64(total) * 100
	}

	var irrSum float64
	var irrCount int
	for _, r := range filtered {
		s.RealSum += r.RealOrZero()
		s.PredictedSum += r.Predicted
		if r.Synthetic {
			s.Synthetic = true
		}
		if r.Injected != nil {
			s.InjectedSum += *r.Injected
		} else {
			s.InjectedSum += Placeholder(r)
			s.Synthetic = true
		}
		if r.Irradiation != nil {
			irrSum += *r.Irradiation
			irrCount++
		}
	}
	if irrCount > 0 {
		s.IrradiationMean = irrSum / float64(irrCount)
	}
	s.AggregateDifference = AggregateDifference(s.RealSum, s.PredictedSum)
	return s
}

// AggregateDifference is |real - predicted| / real * 100, or 0 when realSum is 0.
func AggregateDifference(realSum, predictedSum float64) float64 {
	if realSum == 0 {
		return 0
	}
	return math.Abs(realSum-predictedSum) / realSum * 100
}

// Difference compares one record's measured and forecast values.
type Difference struct {
	Absolute  float64 `json:"absolute"`
	Percent   float64 `json:"percent"`
	PercentOK bool    `json:"percent_ok"`
}

// RecordDifference returns false when the record has no measured value. The
// percentage is only defined for a non-zero measured value.
func RecordDifference(r model.PredictionRecord) (Difference, bool) {
	if r.Real == nil {
		return Difference{}, false
	}
	d := Difference{Absolute: math.Abs(*r.Real - r.Predicted)}
	if *r.Real != 0 {
		d.Percent = d.Absolute / *r.Real * 100
		d.PercentOK = true
	}
	return d, true
}

// Placeholder is the deterministic injected-energy estimate used when a record
// carries no injected value.
func Placeholder(r model.PredictionRecord) float64 {
	if r.Real != nil {
		return math.Max(0, *r.Real*InjectedRatio)
	}
	return math.Max(0, r.Predicted*InjectedRatio)
}
