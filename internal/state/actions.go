package state

import (
	"energy_forecast/internal/model"
)

// Action is a state transition request handled by Reduce.
type Action interface {
	isAction()
}

// FileSelected replaces the selected dataset and discards any previous upload
// acknowledgement. It is ignored while a request is in flight.
type FileSelected struct {
	File File
}

type ModelSelected struct {
	Model model.ModelID
}

type UploadStarted struct{}

type UploadSucceeded struct {
	AcceptedDates []string
}

type UploadFailed struct {
	Err error
}

type PredictStarted struct{}

type PredictSucceeded struct {
	Records []model.PredictionRecord
}

type PredictFailed struct {
	Err error
}

// FilterChanged sets the date range and returns to page 1.
type FilterChanged struct {
	Range model.DateRange
}

// PageSizeChanged sets the page size and returns to page 1.
type PageSizeChanged struct {
	PageSize int
}

type PageChanged struct {
	Page int
}

func (FileSelected) isAction()     {}
func (ModelSelected) isAction()    {}
func (UploadStarted) isAction()    {}
func (UploadSucceeded) isAction()  {}
func (UploadFailed) isAction()     {}
func (PredictStarted) isAction()   {}
func (PredictSucceeded) isAction() {}
func (PredictFailed) isAction()    {}
func (FilterChanged) isAction()    {}
func (PageSizeChanged) isAction()  {}
func (PageChanged) isAction()      {}
