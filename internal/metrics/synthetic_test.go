package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_forecast/internal/model"
)

// sequenceGen replays fixed values, cycling when exhausted.
type sequenceGen struct {
	values []float64
	calls  int
}

func (g *sequenceGen) Float64() float64 {
	v := g.values[g.calls%len(g.values)]
	g.calls++
	return v
}

func TestEnrich_FromReal(t *testing.T) {
	// 0.5 maps to zero jitter, 1.0 to +Jitter, 0.0 to -Jitter.
	gen := &sequenceGen{values: []float64{0.5, 1.0}}
	records := []model.PredictionRecord{record("2024-01-01", model.Float(10), 12)}

	got := Enrich(records, gen)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Irradiation)
	require.NotNil(t, got[0].Injected)
	assert.InDelta(t, 10*IrradiationPerKWh, *got[0].Irradiation, 0.001)
	assert.InDelta(t, 10*InjectedRatio*(1+Jitter), *got[0].Injected, 0.001)
	assert.True(t, got[0].Synthetic)
	assert.Equal(t, 2, gen.calls)
}

func TestEnrich_FromForecastIsDeterministic(t *testing.T) {
	gen := &sequenceGen{values: []float64{0.9}}
	records := []model.PredictionRecord{record("2024-01-05", nil, 20)}

	got := Enrich(records, gen)
	assert.InDelta(t, 20*IrradiationPerKWh, *got[0].Irradiation, 0.001)
	assert.InDelta(t, 20*InjectedRatio, *got[0].Injected, 0.001)
	assert.True(t, got[0].Synthetic)
	assert.Equal(t, 0, gen.calls)
}

func TestEnrich_KeepsServiceValues(t *testing.T) {
	gen := &sequenceGen{values: []float64{0.0}}
	records := []model.PredictionRecord{{
		Date:        model.MustParseDate("2024-01-01"),
		Real:        model.Float(10),
		Predicted:   11,
		Injected:    model.Float(4),
		Irradiation: model.Float(321),
	}}

	got := Enrich(records, gen)
	assert.InDelta(t, 4.0, *got[0].Injected, 0.001)
	assert.InDelta(t, 321.0, *got[0].Irradiation, 0.001)
	assert.False(t, got[0].Synthetic)
	assert.Equal(t, 0, gen.calls)
}

func TestEnrich_BoundedPerturbation(t *testing.T) {
	gen := NewGenerator(42)
	records := make([]model.PredictionRecord, 200)
	for i := range records {
		records[i] = record("2024-01-01", model.Float(10), 10)
	}

	for _, r := range Enrich(records, gen) {
		assert.GreaterOrEqual(t, *r.Irradiation, 10*IrradiationPerKWh*(1-Jitter))
		assert.Less(t, *r.Irradiation, 10*IrradiationPerKWh*(1+Jitter))
		assert.GreaterOrEqual(t, *r.Injected, 10*InjectedRatio*(1-Jitter))
		assert.Less(t, *r.Injected, 10*InjectedRatio*(1+Jitter))
	}
}

func TestEnrich_SeededIsReproducible(t *testing.T) {
	records := []model.PredictionRecord{
		record("2024-01-01", model.Float(10), 12),
		record("2024-01-02", model.Float(14), 13),
	}

	a := Enrich(records, NewGenerator(7))
	b := Enrich(records, NewGenerator(7))
	assert.Equal(t, a, b)
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	records := []model.PredictionRecord{record("2024-01-01", model.Float(10), 12)}
	Enrich(records, NewGenerator(1))
	assert.Nil(t, records[0].Irradiation)
	assert.Nil(t, records[0].Injected)
	assert.False(t, records[0].Synthetic)
}
