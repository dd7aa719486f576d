package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/wsclient"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS layer on the HTTP routes; browsers
	// do not send preflights for upgrades
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.Hub == nil {
		h.respondError(w, http.StatusServiceUnavailable, "realtime updates disabled", nil)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("⚠️  WebSocket upgrade error")
		return
	}

	clientID := uuid.New().String()
	var sessions wsclient.SessionLookup
	if h.Store != nil {
		sessions = h.Store
	}
	c := wsclient.NewClient(clientID, conn, h.Hub, sessions, h.logger)

	h.Hub.Register(c)

	// Pumps follow the handler context, not the request context
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)

	h.logger.WithField("client_id", clientID).Info("✓ WebSocket connection established")
}
