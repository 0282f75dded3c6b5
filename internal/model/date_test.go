package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := NewDate(2024, time.January, 4)

	tests := []struct {
		name  string
		input string
	}{
		{"plain date", "2024-01-04"},
		{"rfc3339", "2024-01-04T18:30:00Z"},
		{"no zone", "2024-01-04T00:00:00"},
		{"space separated", "2024-01-04 23:59:59"},
		{"padded", "  2024-01-04 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, "2024-01-04", got.String())
		})
	}

	_, err := ParseDate("04/01/2024")
	assert.Error(t, err)
}

func TestDate_AddDays(t *testing.T) {
	assert.Equal(t, MustParseDate("2024-03-01"), MustParseDate("2024-02-29").AddDays(1))
	assert.Equal(t, MustParseDate("2025-01-01"), MustParseDate("2024-12-31").AddDays(1))
	assert.Equal(t, MustParseDate("2024-12-31"), MustParseDate("2025-01-01").AddDays(-1))
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"2024-05-06"`)))
	assert.Equal(t, "2024-05-06", d.String())

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-06"`, string(data))

	require.NoError(t, d.UnmarshalJSON([]byte(`null`)))
	assert.True(t, d.IsZero())

	assert.Error(t, d.UnmarshalJSON([]byte(`20240506`)))
}

func TestDateRange_Contains(t *testing.T) {
	rng := DateRange{Start: MustParseDate("2024-01-02"), End: MustParseDate("2024-01-04")}

	assert.False(t, rng.Contains(MustParseDate("2024-01-01")))
	assert.True(t, rng.Contains(MustParseDate("2024-01-02")))
	assert.True(t, rng.Contains(MustParseDate("2024-01-04")))
	assert.False(t, rng.Contains(MustParseDate("2024-01-05")))

	open := DateRange{}
	assert.True(t, open.Contains(MustParseDate("1999-12-31")))

	startOnly := DateRange{Start: MustParseDate("2024-01-02")}
	assert.True(t, startOnly.Contains(MustParseDate("2030-01-01")))
	assert.False(t, startOnly.Contains(MustParseDate("2024-01-01")))
}

func TestParseDateRange(t *testing.T) {
	rng, err := ParseDateRange("2024-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, MustParseDate("2024-01-01"), rng.Start)
	assert.True(t, rng.End.IsZero())

	_, err = ParseDateRange("", "bad")
	assert.ErrorContains(t, err, "end")
}
