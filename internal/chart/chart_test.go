package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_forecast/internal/model"
)

func records() []model.PredictionRecord {
	return []model.PredictionRecord{
		{Date: model.MustParseDate("2024-01-01"), Real: model.Float(10), Predicted: 11},
		{Date: model.MustParseDate("2024-01-02"), Predicted: 12},
	}
}

func TestComparison(t *testing.T) {
	cfg := Comparison(records())

	assert.Equal(t, TypeLine, cfg.Type)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, cfg.Data.Labels)
	require.Len(t, cfg.Data.Datasets, 2)

	actual := cfg.Data.Datasets[0]
	assert.Equal(t, "Actual", actual.Label)
	require.Len(t, actual.Data, 2)
	assert.InDelta(t, 10, *actual.Data[0], 1e-9)
	assert.Nil(t, actual.Data[1])

	forecast := cfg.Data.Datasets[1]
	assert.Equal(t, "Forecast", forecast.Label)
	assert.InDelta(t, 12, *forecast.Data[1], 1e-9)
}

func TestComparison_JSONShape(t *testing.T) {
	data, err := json.Marshal(Comparison(records()))
	require.NoError(t, err)

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			Labels   []string `json:"labels"`
			Datasets []struct {
				Label string     `json:"label"`
				Data  []*float64 `json:"data"`
			} `json:"datasets"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "line", decoded.Type)
	assert.Len(t, decoded.Data.Labels, 2)
	assert.Nil(t, decoded.Data.Datasets[0].Data[1])
}

func TestComparison_Empty(t *testing.T) {
	cfg := Comparison(nil)
	assert.Empty(t, cfg.Data.Labels)
	assert.NotNil(t, cfg.Data.Labels)
	require.Len(t, cfg.Data.Datasets, 2)
}

func TestAuxiliary_PlaceholderAndTitle(t *testing.T) {
	cfg := Auxiliary(records())

	assert.Equal(t, TypeBar, cfg.Type)
	require.Len(t, cfg.Data.Datasets, 2)
	injected := cfg.Data.Datasets[0]
	assert.InDelta(t, 7, *injected.Data[0], 1e-9)
	assert.InDelta(t, 8.4, *injected.Data[1], 1e-9)

	irr := cfg.Data.Datasets[1]
	assert.Equal(t, "y1", irr.YAxisID)
	assert.Nil(t, irr.Data[0])
	assert.NotContains(t, cfg.Options.Plugins.Title.Text, "estimates")
}

func TestAuxiliary_SyntheticTitle(t *testing.T) {
	recs := records()
	recs[0].Injected = model.Float(6.5)
	recs[0].Irradiation = model.Float(250)
	recs[0].Synthetic = true

	cfg := Auxiliary(recs)
	assert.Contains(t, cfg.Options.Plugins.Title.Text, "estimates")
	assert.InDelta(t, 6.5, *cfg.Data.Datasets[0].Data[0], 1e-9)
	assert.InDelta(t, 250, *cfg.Data.Datasets[1].Data[0], 1e-9)
}
