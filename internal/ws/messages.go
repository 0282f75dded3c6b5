package ws

import (
	"encoding/json"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeModelSelect = "model:select"
	TypeFilterSet   = "filter:set"
	TypePageSizeSet = "page_size:set"
	TypePageSet     = "page:set"
	TypePredictRun  = "predict:run"

	// Server -> Client
	TypeViewUpdate = "view:update"
	TypeNotify     = "notify"
	TypeError      = "error"
)

// Client -> Server messages

type ModelSelectPayload struct {
	Model string `json:"model"`
}

// FilterSetPayload carries YYYY-MM-DD dates; an empty string clears that bound.
type FilterSetPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type PageSizeSetPayload struct {
	PageSize int `json:"page_size"`
}

type PageSetPayload struct {
	Page int `json:"page"`
}

// Server -> Client messages

// ErrorPayload reports a rejected client message to its sender only.
type ErrorPayload struct {
	Request string `json:"request"`
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
