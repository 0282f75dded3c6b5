// Package filter narrows a prediction sequence by date and slices it into pages.
// Neither operation reorders records.
package filter

import (
	"energy_forecast/internal/model"
)

const DefaultPageSize = 10

// PageSizes are the sizes offered by the page-size selector.
var PageSizes = []int{5, 10, 25, 50, 100}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// ByDateRange returns the records whose date lies in rng, both bounds inclusive.
func ByDateRange(records []model.PredictionRecord, rng model.DateRange) []model.PredictionRecord {
	result := make([]model.PredictionRecord, 0, len(records))
	for _, r := range records {
		if rng.Contains(r.Date) {
			result = append(result, r)
		}
	}
	return result
}

// Paginate returns page (1-based) of records. Pages past the end, page < 1 and
// pageSize < 1 all yield an empty slice.
func Paginate(records []model.PredictionRecord, pageSize, page int) []model.PredictionRecord {
	if pageSize < 1 || page < 1 {
		return []model.PredictionRecord{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []model.PredictionRecord{}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	result := make([]model.PredictionRecord, end-start)
	copy(result, records[start:end])
	return result
}

// TotalPages is the number of pages needed for n records.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize < 1 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}
