package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"energy_forecast/internal/dashboard"
	"energy_forecast/internal/model"
	"energy_forecast/internal/state"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes messages to the dashboard.
type Handler struct {
	hub     *Hub
	svc     *dashboard.Service
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHandler bounds each prediction request by timeout; zero leaves it to the
// HTTP transport.
func NewHandler(hub *Hub, svc *dashboard.Service, timeout time.Duration) *Handler {
	return &Handler{
		hub:     hub,
		svc:     svc,
		timeout: timeout,
		logger:  log.With().Str("component", "ws").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendView(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

// handleMessage applies one client request. State changes reach every client
// through the Bridge; only rejections are answered directly.
func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.reject(c, "", err)
		return
	}

	switch env.Type {
	case TypeModelSelect:
		var p ModelSelectPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reject(c, env.Type, err)
			return
		}
		if _, err := h.svc.SelectModel(p.Model); err != nil {
			h.reject(c, env.Type, err)
		}

	case TypeFilterSet:
		var p FilterSetPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reject(c, env.Type, err)
			return
		}
		rng, err := model.ParseDateRange(p.Start, p.End)
		if err != nil {
			h.reject(c, env.Type, err)
			return
		}
		h.svc.SetRange(rng)

	case TypePageSizeSet:
		var p PageSizeSetPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reject(c, env.Type, err)
			return
		}
		if _, err := h.svc.SetPageSize(p.PageSize); err != nil {
			h.reject(c, env.Type, err)
		}

	case TypePageSet:
		var p PageSetPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reject(c, env.Type, err)
			return
		}
		h.svc.SetPage(p.Page)

	case TypePredictRun:
		// Runs detached so the connection keeps reading; the busy flag
		// rejects a second run while this one is in flight.
		go func() {
			ctx, cancel := h.callContext()
			defer cancel()
			_, err := h.svc.Predict(ctx)
			switch {
			case errors.Is(err, state.ErrBusy):
				h.reject(c, env.Type, err)
			case err != nil:
				h.logger.Debug().Err(err).Msg("predict:run")
			}
		}()

	default:
		h.reject(c, env.Type, errUnknownType(env.Type))
	}
}

func (h *Handler) callContext() (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(context.Background(), h.timeout)
	}
	return context.WithCancel(context.Background())
}

type errUnknownType string

func (e errUnknownType) Error() string { return "unknown message type: " + string(e) }

func (h *Handler) reject(c *Client, request string, err error) {
	h.logger.Warn().Err(err).Str("type", request).Msg("rejected client message")
	msg, mErr := NewEnvelope(TypeError, ErrorPayload{Request: request, Message: err.Error()})
	if mErr != nil {
		return
	}
	h.hub.sendTo(c, msg)
}

func (h *Handler) sendView(c *Client) {
	msg, err := NewEnvelope(TypeViewUpdate, h.svc.View())
	if err != nil {
		h.logger.Error().Err(err).Msg("marshaling view")
		return
	}
	h.hub.sendTo(c, msg)
}
