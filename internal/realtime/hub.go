// internal/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Subprotocol is the websocket subprotocol clients must request.
const Subprotocol = "pushups"

// Message is the envelope pushed to connected clients.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// Hub tracks the open connections of each user and fans messages out to them.
type Hub struct {
	mu           sync.RWMutex
	conns        map[uuid.UUID]map[*client]struct{}
	logger       *logrus.Logger
	writeTimeout time.Duration
}

type client struct {
	conn Conn
	mu   sync.Mutex // serializes writes
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		conns:        make(map[uuid.UUID]map[*client]struct{}),
		logger:       logger,
		writeTimeout: 5 * time.Second,
	}
}

// Register adds conn for userID. The returned func removes it again.
func (h *Hub) Register(userID uuid.UUID, conn Conn) (unregister func()) {
	c := &client{conn: conn}

	h.mu.Lock()
	set, ok := h.conns[userID]
	if !ok {
		set = make(map[*client]struct{})
		h.conns[userID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(userID, c) })
	}
}

func (h *Hub) remove(userID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// Connections returns how many connections userID has open.
func (h *Hub) Connections(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Notify sends msg to every connection of userID and returns how many writes succeeded.
// Connections that fail to accept the write are closed and unregistered.
func (h *Hub) Notify(ctx context.Context, userID uuid.UUID, msg Message) int {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if err := h.write(ctx, c, msg); err != nil {
			h.logger.WithError(err).WithField("user", userID).Warn("dropping websocket after failed write")
			h.remove(userID, c)
			c.conn.Close(websocket.StatusInternalError, "write failed")
			continue
		}
		sent++
	}
	return sent
}

func (h *Hub) write(ctx context.Context, c *client, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", msg.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Write(ctx, websocket.MessageText, data)
}
