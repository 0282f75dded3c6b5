package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"energy_forecast/internal/model"
)

func sample() []model.PredictionRecord {
	return []model.PredictionRecord{
		{Date: model.MustParseDate("2024-01-01"), Real: model.Float(10), Predicted: 11},
		{Date: model.MustParseDate("2024-01-02"), Predicted: 12},
		{Date: model.MustParseDate("2024-01-03"), Real: model.Float(0), Predicted: 1,
			Injected: model.Float(0.5), Irradiation: model.Float(12.5), Synthetic: true},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"2024-01-01", "10", "11", "", "", "1", "10.00", "false"}, rows[1])
	assert.Equal(t, []string{"2024-01-02", "", "12", "", "", "", "", "false"}, rows[2])
	// zero measured value: difference defined, percentage not
	assert.Equal(t, []string{"2024-01-03", "0", "1", "0.5", "12.5", "1", "", "true"}, rows[3])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "date,real,predicted,injected,irradiation,difference,difference_pct,synthetic\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "2024-01-01", rows[1][0])
	assert.Equal(t, "10", rows[1][1])
	assert.Equal(t, "11", rows[1][2])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Contains(t, f.ContentType(), "spreadsheetml")

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
