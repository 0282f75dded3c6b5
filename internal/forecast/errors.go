package forecast

import (
	"errors"
	"fmt"
	"net/http"

	"energy_forecast/internal/model"
)

// ErrUnexpectedStatus matches UploadError and PredictionError values caused by
// a non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// statusError is a non-2xx response from the prediction service.
type statusError struct {
	statusCode int
	message    string
}

func (e *statusError) Error() string {
	if e.message == "" {
		return fmt.Sprintf("HTTP %d %s", e.statusCode, http.StatusText(e.statusCode))
	}
	return fmt.Sprintf("HTTP %d: %s", e.statusCode, e.message)
}

func (e *statusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// UploadError is returned when a dataset submission fails on the network or
// with a non-2xx response. StatusCode is 0 for network failures.
type UploadError struct {
	StatusCode int
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading dataset: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PredictionError is returned when fetching predictions fails on the network,
// with a non-2xx response or with an undecodable body.
type PredictionError struct {
	Model      model.ModelID
	StatusCode int
	Err        error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("fetching %s predictions: %v", e.Model, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }
