package metrics

import (
	"math"
	"math/rand"
	"time"

	"energy_forecast/internal/model"
)

// The service does not report irradiation or grid injection, so both are
// estimated from the energy values. These are demo figures, not telemetry.
const (
	// IrradiationPerKWh scales daily energy (kWh) to mean irradiance (W/m²).
	IrradiationPerKWh = 25.0
	// InjectedRatio is the share of generated energy assumed to reach the grid.
	InjectedRatio = 0.7
	// Jitter bounds the relative random perturbation applied to estimates
	// derived from measured values.
	Jitter = 0.1
)

// Generator supplies uniformly distributed values in [0, 1). *rand.Rand
// satisfies it.
type Generator interface {
	Float64() float64
}

// NewGenerator returns a seeded generator. Seed 0 seeds from the clock, so
// estimates differ between runs.
func NewGenerator(seed int64) Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Enrich returns a copy of records with missing Irradiation and Injected
// values estimated and Synthetic set on every record that received one.
//
// With a measured value the estimate is a fixed scale of it plus a bounded
// random perturbation drawn from gen; otherwise it is a fixed ratio of the
// forecast with no randomness.
func Enrich(records []model.PredictionRecord, gen Generator) []model.PredictionRecord {
	result := make([]model.PredictionRecord, len(records))
	for i, r := range records {
		if r.Irradiation == nil {
			r.Irradiation = model.Float(estimate(r, IrradiationPerKWh, gen))
			r.Synthetic = true
		}
		if r.Injected == nil {
			r.Injected = model.Float(estimate(r, InjectedRatio, gen))
			r.Synthetic = true
		}
		result[i] = r
	}
	return result
}

func estimate(r model.PredictionRecord, scale float64, gen Generator) float64 {
	if r.Real == nil {
		return math.Max(0, r.Predicted*scale)
	}
	jitter := (gen.Float64()*2 - 1) * Jitter
	return math.Max(0, *r.Real*scale*(1+jitter))
}
