// Package export writes prediction tables as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"energy_forecast/internal/metrics"
	"energy_forecast/internal/model"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Predictions"

// Format selects the download encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" and "xlsx". An empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Header is the column order shared by both formats.
var Header = []string{"date", "real", "predicted", "injected", "irradiation", "difference", "difference_pct", "synthetic"}

// cells returns one table row. Absent values are nil.
func cells(r model.PredictionRecord) []any {
	row := make([]any, len(Header))
	row[0] = r.Date.String()
	if r.Real != nil {
		row[1] = *r.Real
	}
	row[2] = r.Predicted
	if r.Injected != nil {
		row[3] = *r.Injected
	}
	if r.Irradiation != nil {
		row[4] = *r.Irradiation
	}
	if d, ok := metrics.RecordDifference(r); ok {
		row[5] = d.Absolute
		if d.PercentOK {
			row[6] = d.Percent
		}
	}
	row[7] = r.Synthetic
	return row
}

// Write encodes records in format f.
func Write(w io.Writer, f Format, records []model.PredictionRecord) error {
	if f == FormatXLSX {
		return WriteXLSX(w, records)
	}
	return WriteCSV(w, records)
}

// WriteCSV writes records with Header as the first line. Absent values are
// empty cells.
func WriteCSV(w io.Writer, records []model.PredictionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	line := make([]string, len(Header))
	for _, r := range records {
		for i, c := range cells(r) {
			line[i] = formatCell(c, i == 6)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(c any, percent bool) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if percent {
			return strconv.FormatFloat(v, 'f', 2, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(c)
}

// WriteXLSX writes records to a single-sheet workbook.
func WriteXLSX(w io.Writer, records []model.PredictionRecord) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := cells(r)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
