// Package notifications delivers push notifications to connected users over
// WebSocket.
package notifications

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/dmitrijs2005/housekeeper/internal/shared"
)

// Hub tracks the live connections of each user.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger.With("module", "notifications"),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()
	connectedClients.Inc()
}

// Unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	connectedClients.Dec()
}

// Send queues n on every connection of n.Recipient and returns how many
// accepted it. A full client buffer drops the message.
func (h *Hub) Send(ctx context.Context, n shared.Notification) int {
	data, err := n.Marshal()
	if err != nil {
		h.logger.Error(ctx, "failed to encode notification", "error", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.clients[n.Recipient]
	if len(set) == 0 {
		notificationsDropped.WithLabelValues(reasonOffline).Inc()
		return 0
	}

	delivered := 0
	for c := range set {
		select {
		case c.send <- data:
			delivered++
		default:
			notificationsDropped.WithLabelValues(reasonBufferFull).Inc()
		}
	}
	if delivered > 0 {
		notificationsSent.WithLabelValues(n.Type).Inc()
	}
	return delivered
}

// Publish sends every notification in ns.
func (h *Hub) Publish(ctx context.Context, ns []shared.Notification) {
	for _, n := range ns {
		if h.Send(ctx, n) == 0 {
			h.logger.Debug(ctx, "recipient not connected", "type", n.Type, "recipient", n.Recipient)
		}
	}
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
