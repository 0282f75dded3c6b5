package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"energy_forecast/internal/model"
)

// ErrNotCSV is returned when the selected file does not look like a CSV dataset.
var ErrNotCSV = errors.New("not a CSV dataset")

// dateColumns are header names recognised as the date column, in priority order.
var dateColumns = []string{"date", "data", "ds", "day", "timestamp"}

// DatasetInfo summarises a CSV dataset before it is submitted.
type DatasetInfo struct {
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
	// DateColumn is empty when no column is recognised as holding dates.
	DateColumn string          `json:"date_column,omitempty"`
	Range      model.DateRange `json:"range"`
}

// InspectCSV reads a dataset far enough to show what was selected: header,
// row count and the span of the date column. Validation of the values is left
// to the prediction service.
//
// Expected format (column names other than the date column are free):
//
//	date,generation_kwh,...
//	2024-01-01,10.5,...
func InspectCSV(r io.Reader) (DatasetInfo, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return DatasetInfo{}, fmt.Errorf("%w: file is empty", ErrNotCSV)
	}
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("%w: reading CSV header: %v", ErrNotCSV, err)
	}
	if err := validateDatasetHeader(header); err != nil {
		return DatasetInfo{}, err
	}

	info := DatasetInfo{Columns: make([]string, len(header))}
	for i, col := range header {
		info.Columns[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}
	dateIdx := findDateColumn(info.Columns)
	if dateIdx >= 0 {
		info.DateColumn = info.Columns[dateIdx]
	}

	lineNum := 1 // header was line 1
	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return DatasetInfo{}, fmt.Errorf("%w: reading CSV line %d: %v", ErrNotCSV, lineNum, err)
		}
		if isBlank(record) {
			continue
		}
		info.Rows++

		if dateIdx < 0 || dateIdx >= len(record) {
			continue
		}
		d, err := model.ParseDate(record[dateIdx])
		if err != nil {
			continue
		}
		if info.Range.Start.IsZero() || d.Before(info.Range.Start) {
			info.Range.Start = d
		}
		if d.After(info.Range.End) {
			info.Range.End = d
		}
	}

	return info, nil
}

func validateDatasetHeader(header []string) error {
	if len(header) < 2 {
		return fmt.Errorf("%w: expected at least 2 columns, got %d", ErrNotCSV, len(header))
	}
	for i, col := range header {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("%w: column %d has no name", ErrNotCSV, i)
		}
	}
	return nil
}

func findDateColumn(columns []string) int {
	for _, want := range dateColumns {
		for i, col := range columns {
			if strings.EqualFold(col, want) {
				return i
			}
		}
	}
	return -1
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
