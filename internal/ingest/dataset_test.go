package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCSV(t *testing.T) {
	input := `Date,generation_kwh,temperature
2024-01-03,12.1,21
2024-01-01,10.5,19

2024-01-02,11.2,20`

	info, err := InspectCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "generation_kwh", "temperature"}, info.Columns)
	assert.Equal(t, 3, info.Rows)
	assert.Equal(t, "Date", info.DateColumn)
	assert.Equal(t, "2024-01-01", info.Range.Start.String())
	assert.Equal(t, "2024-01-03", info.Range.End.String())
}

func TestInspectCSV_NoDateColumn(t *testing.T) {
	input := "when,kwh\nmonday,10\ntuesday,11\n"

	info, err := InspectCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, info.Rows)
	assert.Empty(t, info.DateColumn)
	assert.True(t, info.Range.Start.IsZero())
}

func TestInspectCSV_SkipsUnparseableDates(t *testing.T) {
	input := "date,kwh\n2024-02-01,1\nunknown,2\n2024-02-05T00:00:00Z,3\n"

	info, err := InspectCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, info.Rows)
	assert.Equal(t, "2024-02-01", info.Range.Start.String())
	assert.Equal(t, "2024-02-05", info.Range.End.String())
}

func TestInspectCSV_BOMHeader(t *testing.T) {
	info, err := InspectCSV(strings.NewReader("\ufeffdate,kwh\n2024-01-01,1\n"))
	require.NoError(t, err)
	assert.Equal(t, "date", info.DateColumn)
}

func TestInspectCSV_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single column", "date\n2024-01-01\n"},
		{"blank column name", "date,\n2024-01-01,3\n"},
		{"bad quoting", "date,kwh\n\"2024-01-01,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InspectCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrNotCSV)
		})
	}
}
