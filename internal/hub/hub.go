package hub

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/wsclient"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

const (
	broadcastBuffer = 1000
	metricsInterval = 30 * time.Second

	// how long a deleted session's last version is remembered
	tombstoneTTL = time.Minute
)

// versionMark is the latest version broadcast for a session
type versionMark struct {
	version   uint64
	deletedAt time.Time
}

// Metrics is a point-in-time view of hub activity
type Metrics struct {
	ActiveClients     int   `json:"active_clients"`
	TotalConnections  int64 `json:"total_connections"`
	TotalMessages     int64 `json:"total_messages"`
	DroppedMessages   int64 `json:"dropped_messages"`
	BroadcastCapacity int   `json:"broadcast_capacity"`
	BroadcastUsage    int   `json:"broadcast_usage"`
}

// Hub maintains the set of active clients and fans selection updates out
// to the ones subscribed to the changed session
type Hub struct {
	clients   map[*wsclient.Client]bool
	clientsMu sync.RWMutex

	// Inbound updates from the stream consumer
	broadcast chan models.SelectionUpdate

	register   chan *wsclient.Client
	unregister chan *wsclient.Client
	done       chan struct{}

	// latest version broadcast per session, owned by Run
	versions map[string]versionMark

	totalConnections int64
	totalMessages    int64
	droppedMessages  int64
	metricsMu        sync.Mutex

	logger *logrus.Entry
}

// NewHub creates a new Hub instance
func NewHub(logger *logrus.Entry) *Hub {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Hub{
		clients:    make(map[*wsclient.Client]bool),
		broadcast:  make(chan models.SelectionUpdate, broadcastBuffer),
		register:   make(chan *wsclient.Client),
		unregister: make(chan *wsclient.Client),
		done:       make(chan struct{}),
		versions:   make(map[string]versionMark),
		logger:     logger.WithField("component", "hub"),
	}
}

// Run starts the hub's main loop. Once it returns, Register closes new
// clients and Unregister returns immediately.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	h.logger.Info("✓ Hub started")

	go h.reportMetrics(ctx)

	prune := time.NewTicker(tombstoneTTL)
	defer prune.Stop()

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case now := <-prune.C:
			h.pruneVersions(now)

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case update := <-h.broadcast:
			h.broadcastUpdate(update)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *wsclient.Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Close()
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *wsclient.Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		c.Close()
	}
}

// Done is closed when Run returns
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Broadcast queues a selection update for delivery. Updates are dropped
// when the queue is full.
func (h *Hub) Broadcast(update models.SelectionUpdate) {
	select {
	case h.broadcast <- update:
	default:
		h.logger.WithField("session_id", update.SessionID).Warn("⚠️  Broadcast buffer full, dropping update")
		h.metricsMu.Lock()
		h.droppedMessages++
		h.metricsMu.Unlock()
	}
}

// SelectionChanged delivers a local update straight to the hub. It stands
// in for the stream publisher when Redis is unavailable.
func (h *Hub) SelectionChanged(_ context.Context, update models.SelectionUpdate) error {
	h.Broadcast(update)
	return nil
}

func (h *Hub) registerClient(c *wsclient.Client) {
	h.clientsMu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.clientsMu.Unlock()

	h.metricsMu.Lock()
	h.totalConnections++
	h.metricsMu.Unlock()

	h.logger.WithFields(logrus.Fields{"client_id": c.ID, "total": total}).Info("client connected")
}

func (h *Hub) unregisterClient(c *wsclient.Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.Close()
		h.logger.WithFields(logrus.Fields{"client_id": c.ID, "total": len(h.clients)}).Info("client disconnected")
	}
}

// broadcastUpdate delivers an update to every client whose filter matches.
// Updates older than the last one seen for their session are discarded.
// Clients with a full send buffer are disconnected.
func (h *Hub) broadcastUpdate(update models.SelectionUpdate) {
	if h.stale(update) {
		h.logger.WithFields(logrus.Fields{
			"session_id": update.SessionID,
			"version":    update.Version,
		}).Debug("discarding stale selection update")
		return
	}
	h.clientsMu.RLock()
	clients := make([]*wsclient.Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := models.ServerMessage{
		Type:      models.MessageTypeSelectionUpdate,
		Payload:   update,
		Timestamp: time.Now(),
	}

	var sent, dropped int64
	for _, c := range clients {
		if !c.Admit(update) {
			continue
		}
		if c.TrySend(message) {
			sent++
			continue
		}
		dropped++
		h.logger.WithField("client_id", c.ID).Warn("⚠️  client buffer full, disconnecting")
		go h.Unregister(c)
	}

	h.metricsMu.Lock()
	h.totalMessages += sent
	h.droppedMessages += dropped
	h.metricsMu.Unlock()
}

// stale reports whether a newer version of the session was already
// broadcast, and records the update's version otherwise
func (h *Hub) stale(update models.SelectionUpdate) bool {
	if update.Version == 0 {
		return false
	}
	if update.Version <= h.versions[update.SessionID].version {
		return true
	}
	mark := versionMark{version: update.Version}
	if update.Kind == models.UpdateKindDeleted {
		mark.deletedAt = time.Now()
	}
	h.versions[update.SessionID] = mark
	return false
}

// pruneVersions forgets sessions deleted more than tombstoneTTL ago
func (h *Hub) pruneVersions(now time.Time) {
	for id, mark := range h.versions {
		if !mark.deletedAt.IsZero() && now.Sub(mark.deletedAt) > tombstoneTTL {
			delete(h.versions, id)
		}
	}
}

// GetMetrics returns hub metrics
func (h *Hub) GetMetrics() Metrics {
	h.clientsMu.RLock()
	active := len(h.clients)
	h.clientsMu.RUnlock()

	h.metricsMu.Lock()
	defer h.metricsMu.Unlock()

	return Metrics{
		ActiveClients:     active,
		TotalConnections:  h.totalConnections,
		TotalMessages:     h.totalMessages,
		DroppedMessages:   h.droppedMessages,
		BroadcastCapacity: cap(h.broadcast),
		BroadcastUsage:    len(h.broadcast),
	}
}

// GetClientCount returns the number of active clients
func (h *Hub) GetClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// shutdown closes all client connections
func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.logger.WithField("active_clients", len(h.clients)).Info("🛑 Shutting down hub")

	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) reportMetrics(ctx context.Context) {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := h.GetMetrics()
			h.logger.WithFields(logrus.Fields{
				"clients":           m.ActiveClients,
				"total_connections": m.TotalConnections,
				"messages":          m.TotalMessages,
				"dropped":           m.DroppedMessages,
			}).Info("📊 Hub metrics")
		}
	}
}
