package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_forecast/internal/model"
)

func record(date string, real *float64, predicted float64) model.PredictionRecord {
	return model.PredictionRecord{Date: model.MustParseDate(date), Real: real, Predicted: predicted}
}

func TestRecordDifference(t *testing.T) {
	d, ok := RecordDifference(record("2024-01-01", model.Float(100), 90))
	require.True(t, ok)
	assert.InDelta(t, 10.0, d.Absolute, 0.001)
	require.True(t, d.PercentOK)
	assert.InDelta(t, 10.0, d.Percent, 0.001)

	d, ok = RecordDifference(record("2024-01-01", model.Float(80), 100))
	require.True(t, ok)
	assert.InDelta(t, 20.0, d.Absolute, 0.001)
	assert.InDelta(t, 25.0, d.Percent, 0.001)
}

func TestRecordDifference_NotApplicable(t *testing.T) {
	_, ok := RecordDifference(record("2024-01-01", nil, 90))
	assert.False(t, ok)

	d, ok := RecordDifference(record("2024-01-01", model.Float(0), 5))
	require.True(t, ok)
	assert.InDelta(t, 5.0, d.Absolute, 0.001)
	assert.False(t, d.PercentOK)
}

func TestAggregateDifference(t *testing.T) {
	assert.InDelta(t, 10.0, AggregateDifference(200, 180), 0.001)
	assert.InDelta(t, 10.0, AggregateDifference(200, 220), 0.001)
	assert.Equal(t, 0.0, AggregateDifference(0, 50))
	assert.Equal(t, 0.0, AggregateDifference(0, 0))
}

func TestSummarize(t *testing.T) {
	records := []model.PredictionRecord{
		{Date: model.MustParseDate("2024-01-01"), Real: model.Float(100), Predicted: 90, Injected: model.Float(60), Irradiation: model.Float(400)},
		{Date: model.MustParseDate("2024-01-02"), Real: model.Float(50), Predicted: 70, Irradiation: model.Float(200)},
		{Date: model.MustParseDate("2024-01-03"), Predicted: 40},
	}

	s := Summarize(records, 6)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 50.0, s.PercentOfTotal, 0.001)
	assert.InDelta(t, 150.0, s.RealSum, 0.001)
	assert.InDelta(t, 200.0, s.PredictedSum, 0.001)
	// 60 supplied + 50*0.7 placeholder from real + 40*0.7 placeholder from forecast
	assert.InDelta(t, 60+35+28, s.InjectedSum, 0.001)
	assert.InDelta(t, 300.0, s.IrradiationMean, 0.001)
	assert.InDelta(t, 50.0/150.0*100, s.AggregateDifference, 0.001)
	assert.True(t, s.Synthetic)
}

func TestSummarize_SyntheticFlag(t *testing.T) {
	measured := []model.PredictionRecord{
		{Date: model.MustParseDate("2024-01-01"), Real: model.Float(10), Predicted: 9, Injected: model.Float(6), Irradiation: model.Float(250)},
	}
	assert.False(t, Summarize(measured, 1).Synthetic)

	estimated := append([]model.PredictionRecord(nil), measured...)
	estimated[0].Synthetic = true
	assert.True(t, Summarize(estimated, 1).Synthetic)
}

func TestSummarize_NoRealValues(t *testing.T) {
	records := []model.PredictionRecord{
		record("2024-01-01", nil, 10),
		record("2024-01-02", nil, 20),
	}

	s := Summarize(records, 2)
	assert.Equal(t, 0.0, s.RealSum)
	assert.Equal(t, 0.0, s.AggregateDifference)
	assert.Equal(t, 0.0, s.IrradiationMean)
	assert.InDelta(t, 100.0, s.PercentOfTotal, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 0)
	assert.Equal(t, Summary{}, s)
}

func TestPlaceholder(t *testing.T) {
	assert.InDelta(t, 7.0, Placeholder(record("2024-01-01", model.Float(10), 99)), 0.001)
	assert.InDelta(t, 14.0, Placeholder(record("2024-01-01", nil, 20)), 0.001)
	assert.Equal(t, 0.0, Placeholder(record("2024-01-01", model.Float(-5), 0)))
}
