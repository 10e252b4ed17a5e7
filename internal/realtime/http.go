package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket connections and hands them to
// the hub.
type Handler struct {
	// baseCtx outlives individual upgrade requests; pumps for an accepted
	// connection run until the socket closes or the server shuts down.
	baseCtx  context.Context
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(baseCtx context.Context, hub *Hub, logger *slog.Logger, checkOrigin func(*http.Request) bool) *Handler {
	return &Handler{
		baseCtx: baseCtx,
		hub:     hub,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeWS is mounted at GET /ws.
func (handler *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		handler.logger.Warn("realtime_upgrade_failed", slog.Any("error", err))
		return
	}

	client := newClient(handler.hub, conn, handler.logger)
	handler.logger.Info("realtime_client_connected", slog.String("client_id", client.id))

	go client.writePump()
	go client.readPump(handler.baseCtx)
}
