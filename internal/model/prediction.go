package model

import (
	"errors"
	"fmt"
	"strings"
)

type ModelID string

const (
	ModelARIMA  ModelID = "arima"
	ModelARIMAX ModelID = "arimax"
	ModelSVR    ModelID = "svr"
	ModelMLP    ModelID = "mlp"
)

// DefaultModel is the model selected when a session starts.
const DefaultModel = ModelARIMA

var ErrUnknownModel = errors.New("unknown model")

// ModelInfo holds the display label for a forecasting model.
type ModelInfo struct {
	Label string
}

// ModelCatalog maps every model the prediction service accepts to its label.
var ModelCatalog = map[ModelID]ModelInfo{
	ModelARIMA:  {Label: "ARIMA"},
	ModelARIMAX: {Label: "ARIMAX"},
	ModelSVR:    {Label: "SVR"},
	ModelMLP:    {Label: "MLP"},
}

// Models lists the catalog in selector order.
func Models() []ModelID {
	return []ModelID{ModelARIMA, ModelARIMAX, ModelSVR, ModelMLP}
}

// ParseModelID validates s against the catalog. Matching is case-insensitive.
func ParseModelID(s string) (ModelID, error) {
	id := ModelID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ModelCatalog[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
	return id, nil
}

// Label returns the display label, falling back to the upper-cased ID.
func (m ModelID) Label() string {
	if info, ok := ModelCatalog[m]; ok {
		return info.Label
	}
	return strings.ToUpper(string(m))
}

// PredictionRecord is one date's measured/forecast energy pair (kWh).
//
// Injected and Irradiation are optional. When the service omits them the
// metrics package fills in illustrative estimates and sets Synthetic; such
// values are never measurements.
type PredictionRecord struct {
	Date        Date     `json:"date"`
	Real        *float64 `json:"real"`
	Predicted   float64  `json:"predicted"`
	Injected    *float64 `json:"injected,omitempty"`
	Irradiation *float64 `json:"irradiation,omitempty"`
	Synthetic   bool     `json:"synthetic,omitempty"`
}

// HasReal reports whether the measured value has been observed.
func (r PredictionRecord) HasReal() bool {
	return r.Real != nil
}

// RealOrZero returns the measured value, or 0 when it is missing.
func (r PredictionRecord) RealOrZero() float64 {
	if r.Real == nil {
		return 0
	}
	return *r.Real
}

// Float returns a pointer to v, for building optional record fields.
func Float(v float64) *float64 {
	return &v
}

// SequenceIssues describes how a record sequence deviates from the expected
// unique, ascending date order.
type SequenceIssues struct {
	Duplicates []Date
	OutOfOrder []Date
}

func (s SequenceIssues) Empty() bool {
	return len(s.Duplicates) == 0 && len(s.OutOfOrder) == 0
}

// CheckSequence reports duplicate and descending dates without changing the input.
func CheckSequence(records []PredictionRecord) SequenceIssues {
	var issues SequenceIssues
	seen := make(map[Date]bool, len(records))
	for i, r := range records {
		if seen[r.Date] {
			issues.Duplicates = append(issues.Duplicates, r.Date)
		}
		seen[r.Date] = true
		if i > 0 && r.Date.Before(records[i-1].Date) {
			issues.OutOfOrder = append(issues.OutOfOrder, r.Date)
		}
	}
	return issues
}
