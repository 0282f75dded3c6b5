// Package state holds the dashboard session: the selected dataset and model,
// the upload acknowledgement, the prediction sequence and the table controls.
// Every change goes through an Action applied by Reduce. Nothing is persisted.
package state

import (
	"errors"

	"energy_forecast/internal/filter"
	"energy_forecast/internal/ingest"
	"energy_forecast/internal/model"
)

var (
	ErrBusy        = errors.New("a request is already in flight")
	ErrNoFile      = errors.New("no dataset selected")
	ErrNotUploaded = errors.New("dataset not uploaded")
)

// Operation names the request that holds the busy flag.
type Operation string

const (
	OpNone    Operation = ""
	OpUpload  Operation = "upload"
	OpPredict Operation = "predict"
)

// File is a dataset selected for upload.
type File struct {
	Name string
	Data []byte
	Info ingest.DatasetInfo
}

func (f *File) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

// State is a snapshot of the session. Slices are shared between snapshots and
// must be treated as read-only.
type State struct {
	File          *File
	Model         model.ModelID
	Uploaded      bool
	AcceptedDates []string
	Predictions   []model.PredictionRecord
	Range         model.DateRange
	PageSize      int
	Page          int
	Busy          bool
	Pending       Operation
}

// Initial is the state of a fresh session.
func Initial() State {
	return State{
		Model:    model.DefaultModel,
		PageSize: filter.DefaultPageSize,
		Page:     1,
	}
}

// CanUpload reports whether the upload control is enabled.
func (s State) CanUpload() bool {
	return !s.Busy && s.File != nil
}

// CanPredict reports whether the predict control is enabled.
func (s State) CanPredict() bool {
	return !s.Busy && s.File != nil && s.Uploaded && len(s.AcceptedDates) > 0
}

// Reduce applies a to s and returns the new state. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FileSelected:
		if s.Busy {
			break
		}
		f := a.File
		s.File = &f
		s.Uploaded = false
		s.AcceptedDates = nil

	case ModelSelected:
		if _, ok := model.ModelCatalog[a.Model]; ok {
			s.Model = a.Model
		}

	case UploadStarted:
		s.Busy = true
		s.Pending = OpUpload
		s.Predictions = nil

	case UploadSucceeded:
		s.Busy = false
		s.Pending = OpNone
		s.Uploaded = true
		s.AcceptedDates = a.AcceptedDates
		if s.AcceptedDates == nil {
			s.AcceptedDates = []string{}
		}

	case UploadFailed:
		s.Busy = false
		s.Pending = OpNone

	case PredictStarted:
		s.Busy = true
		s.Pending = OpPredict
		s.Predictions = nil

	case PredictSucceeded:
		s.Busy = false
		s.Pending = OpNone
		s.Predictions = a.Records
		s.Page = 1

	case PredictFailed:
		s.Busy = false
		s.Pending = OpNone

	case FilterChanged:
		s.Range = a.Range
		s.Page = 1

	case PageSizeChanged:
		if filter.ValidPageSize(a.PageSize) {
			s.PageSize = a.PageSize
			s.Page = 1
		}

	case PageChanged:
		s.Page = a.Page
		if s.Page < 1 {
			s.Page = 1
		}
	}
	return s
}
