package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is a real-time status event pushed to a connected client. A
// client that receives one can refresh its status immediately instead
// of waiting for the next poll.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const EventVerificationApproved = "verification_approved"

type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks one live connection per user. The onboarding engine talks
// to it through the NotificationSender interface, so swapping the
// transport (webhooks, server-sent events) does not touch the engine.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if prev, ok := h.connections[c.userID]; ok {
		close(prev.send)
	}
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// Push sends an event to the user's connection if one is open. A user
// without a connection simply keeps polling; that is not an error.
func (h *Hub) Push(userID int64, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.connections[userID]; ok {
		select {
		case c.send <- data:
		default:
			// client too slow, it will catch up on the next poll
		}
	}
}

// NotifyVerificationApproved implements onboarding.NotificationSender.
func (h *Hub) NotifyVerificationApproved(_ context.Context, userID int64) error {
	h.Push(userID, &Event{
		Type:    EventVerificationApproved,
		Payload: map[string]any{"accountActivated": true},
	})
	return nil
}
