package ws

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"energy_forecast/internal/dashboard"
	"energy_forecast/internal/state"
)

// ViewSource produces the current dashboard view.
type ViewSource interface {
	View() dashboard.View
}

// Bridge implements state.Listener and dashboard.Notifier and broadcasts
// both to the WebSocket hub.
type Bridge struct {
	hub    *Hub
	source ViewSource
	logger zerolog.Logger
}

func NewBridge(hub *Hub, source ViewSource) *Bridge {
	return &Bridge{
		hub:    hub,
		source: source,
		logger: log.With().Str("component", "ws").Logger(),
	}
}

// OnChange pushes a fresh view after every state change.
func (b *Bridge) OnChange(state.State) {
	msg, err := NewEnvelope(TypeViewUpdate, b.source.View())
	if err != nil {
		b.logger.Error().Err(err).Msg("marshaling view")
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) Notify(n dashboard.Notification) {
	msg, err := NewEnvelope(TypeNotify, n)
	if err != nil {
		b.logger.Error().Err(err).Msg("marshaling notification")
		return
	}
	b.hub.Broadcast(msg)
}
