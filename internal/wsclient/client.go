package wsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Subscribe messages carry a list of session ids
	maxMessageSize = 4096

	// Buffer size for outbound messages
	sendBufferSize = 256
)

// Hub is the part of the broadcast hub a client talks back to
type Hub interface {
	Unregister(client *Client)
}

// SessionLookup returns the current state of a scout session so new
// subscribers start from a full picture
type SessionLookup interface {
	Current(sessionID uuid.UUID) (models.SelectionUpdate, bool)
}

// subscription is the parsed form of a SubscriptionFilter. sessions maps
// each followed session to the last version delivered for it.
type subscription struct {
	filter   models.SubscriptionFilter
	sessions map[string]uint64
}

// Client is one WebSocket peer following scout sessions
type Client struct {
	ID string

	// Send is drained by WritePump and closed through Close
	Send chan models.ServerMessage

	sendMu sync.Mutex
	closed bool

	conn     *websocket.Conn
	hub      Hub
	sessions SessionLookup
	logger   *logrus.Entry

	subMu sync.RWMutex
	sub   subscription

	connectedAt time.Time
	sent        atomic.Int64
	received    atomic.Int64
	lastActive  atomic.Int64 // unix nanoseconds
}

// NewClient creates a new client instance. conn may be nil in tests that
// only exercise filtering and buffering. sessions may be nil.
func NewClient(id string, conn *websocket.Conn, hub Hub, sessions SessionLookup, logger *logrus.Entry) *Client {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		ID:          id,
		Send:        make(chan models.ServerMessage, sendBufferSize),
		conn:        conn,
		hub:         hub,
		sessions:    sessions,
		logger:      logger.WithField("client_id", id),
		connectedAt: time.Now(),
	}
}

// ReadPump reads client messages until the connection fails or ctx ends,
// then unregisters the client
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for ctx.Err() == nil {
		var msg models.ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.WithError(err).Warn("unexpected close")
			}
			return
		}

		c.received.Add(1)
		c.touch()
		c.HandleMessage(msg)
	}
}

// WritePump writes queued messages and keepalive pings to the peer
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.writeClose()
			return

		case message, ok := <-c.Send:
			if !ok {
				c.writeClose()
				return
			}

			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.WithError(err).Warn("write error")
				return
			}
			c.sent.Add(1)
			c.touch()

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeClose() {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// TrySend queues a message without blocking. It returns false when the
// buffer is full or the client has been closed.
func (c *Client) TrySend(msg models.ServerMessage) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// Close closes the send channel, ending WritePump. It reports whether this
// call closed it; later calls are no-ops.
func (c *Client) Close() bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}
	c.closed = true
	close(c.Send)
	return true
}

// Closed reports whether Close has been called
func (c *Client) Closed() bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.closed
}

// SetFilter replaces the client's subscription
func (c *Client) SetFilter(filter models.SubscriptionFilter) {
	sub := subscription{filter: filter}
	if len(filter.SessionIDs) > 0 {
		sub.sessions = make(map[string]uint64, len(filter.SessionIDs))
		for _, id := range filter.SessionIDs {
			sub.sessions[id] = 0
		}
	}

	c.subMu.Lock()
	c.sub = sub
	c.subMu.Unlock()
}

// GetFilter returns the client's current filter
func (c *Client) GetFilter() models.SubscriptionFilter {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.sub.filter
}

// MatchesFilter reports whether the client follows the update's session.
// A client without a filter follows every session.
func (c *Client) MatchesFilter(update models.SelectionUpdate) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	if c.sub.sessions == nil {
		return true
	}
	_, ok := c.sub.sessions[update.SessionID]
	return ok
}

// Admit reports whether an update should be delivered to the client: the
// filter must match and, for followed sessions, the version must be newer
// than the last one delivered. Unversioned updates are always admitted.
// An admitted update is recorded as delivered.
func (c *Client) Admit(update models.SelectionUpdate) bool {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	if c.sub.sessions == nil {
		return true
	}
	last, ok := c.sub.sessions[update.SessionID]
	if !ok {
		return false
	}
	if update.Version != 0 && update.Version <= last {
		return false
	}
	if update.Version > last {
		c.sub.sessions[update.SessionID] = update.Version
	}
	return true
}

// Deliver queues a selection update if Admit accepts it. It reports false
// only when an admitted update could not be queued.
func (c *Client) Deliver(update models.SelectionUpdate) bool {
	if !c.Admit(update) {
		return true
	}
	return c.TrySend(models.ServerMessage{
		Type:      models.MessageTypeSelectionUpdate,
		Payload:   update,
		Timestamp: time.Now(),
	})
}

// GetStats returns connection statistics
func (c *Client) GetStats() models.ConnectionStats {
	var last time.Time
	if ns := c.lastActive.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}

	return models.ConnectionStats{
		ClientID:          c.ID,
		ConnectedAt:       c.connectedAt,
		MessagesSent:      c.sent.Load(),
		MessagesReceived:  c.received.Load(),
		LastMessageAt:     last,
		BufferSize:        sendBufferSize,
		BufferUtilization: float64(len(c.Send)) / float64(sendBufferSize) * 100.0,
	}
}

// HandleMessage processes a message from the client
func (c *Client) HandleMessage(msg models.ClientMessage) {
	switch msg.Type {
	case models.MessageTypeSubscribe:
		c.subscribe(msg.Payload)
	case models.MessageTypeUnsubscribe:
		c.SetFilter(models.SubscriptionFilter{})
		c.logger.Debug("client unsubscribed")
	case models.MessageTypeHeartbeat:
		c.reply(models.MessageTypeHeartbeat, c.GetStats())
	default:
		c.sendError("unknown_message_type", fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

// subscribe validates the requested session ids, installs the filter and
// replays the current state of each session
func (c *Client) subscribe(payload map[string]interface{}) {
	var filter models.SubscriptionFilter
	raw, err := json.Marshal(payload)
	if err == nil {
		err = json.Unmarshal(raw, &filter)
	}
	if err != nil {
		c.sendError("invalid_filter", "failed to parse filter")
		return
	}

	ids := make([]uuid.UUID, 0, len(filter.SessionIDs))
	for _, s := range filter.SessionIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			c.sendError("invalid_session_id", fmt.Sprintf("invalid session id: %s", s))
			return
		}
		ids = append(ids, id)
	}
	for i, id := range ids {
		filter.SessionIDs[i] = id.String()
	}

	c.SetFilter(filter)
	c.logger.WithField("session_ids", filter.SessionIDs).Debug("client subscribed")

	if c.sessions == nil {
		return
	}
	for i, id := range ids {
		update, ok := c.sessions.Current(id)
		if !ok {
			c.sendError("session_not_found", fmt.Sprintf("session %s not found", filter.SessionIDs[i]))
			continue
		}
		c.Deliver(update)
	}
}

func (c *Client) reply(kind string, payload interface{}) {
	c.TrySend(models.ServerMessage{
		Type:      kind,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

func (c *Client) sendError(code, message string) {
	c.reply(models.MessageTypeError, models.ErrorMessage{
		Code:    code,
		Message: message,
	})
}

func (c *Client) touch() {
	c.lastActive.Store(time.Now().UnixNano())
}
