package web

import (
	"errors"
	"net/http"

	"energy_forecast/internal/dashboard"
	"energy_forecast/internal/ingest"
	"energy_forecast/internal/model"
	"energy_forecast/internal/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

var errBadRequest = errors.New("bad request")

// errorResponse maps a dashboard error to a status code and a message safe to
// show the user. remote is the message used for prediction service failures.
func errorResponse(err error, remote string) (int, ErrorResponse) {
	switch {
	case errors.Is(err, state.ErrBusy):
		return http.StatusConflict, ErrorResponse{Error: "a request is already in progress"}
	case errors.Is(err, state.ErrNoFile):
		return http.StatusPreconditionFailed, ErrorResponse{Error: dashboard.MsgFileRequired}
	case errors.Is(err, state.ErrNotUploaded):
		return http.StatusPreconditionFailed, ErrorResponse{Error: dashboard.MsgPredictFailed}
	case errors.Is(err, dashboard.ErrRemote):
		return http.StatusBadGateway, ErrorResponse{Error: remote}
	case errors.Is(err, ingest.ErrNotCSV):
		return http.StatusBadRequest, ErrorResponse{Error: dashboard.MsgUploadFailed}
	case errors.Is(err, model.ErrUnknownModel),
		errors.Is(err, dashboard.ErrInvalidPageSize),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
}
