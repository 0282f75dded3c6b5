package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"energy_forecast/internal/model"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message shown to the user after an action.
type Notification struct {
	ID      uuid.UUID `json:"id"`
	Level   Level     `json:"level"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier receives every notification the service emits.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

const (
	titleUploadOK     = "Upload complete"
	titleUploadFailed = "Upload error"
	titlePredictOK    = "Analysis complete"
	titlePredictError = "Forecast error"
	titleFileRequired = "File required"

	MsgUploadFailed  = "Failed to process the file. Check that it is a valid CSV."
	MsgPredictFailed = "Failed to generate the forecast. Check that the data was uploaded."
	MsgFileRequired  = "Please select a CSV file before continuing."
)

func uploadOKMessage(n int) string {
	return fmt.Sprintf("File processed successfully! %d records loaded.", n)
}

func predictOKMessage(n int, id model.ModelID) string {
	return fmt.Sprintf("Forecast generated! %d data points analysed with model %s.", n, id.Label())
}

// maxRecent bounds the notifications kept for the rendered page.
const maxRecent = 5

// recent keeps the latest notifications, newest first.
type recent struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recent) add(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]Notification{n}, r.items...)
	if len(r.items) > maxRecent {
		r.items = r.items[:maxRecent]
	}
}

func (r *recent) list() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification{}, r.items...)
}
