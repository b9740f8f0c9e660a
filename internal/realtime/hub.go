package realtime

import (
	"log/slog"
	"sync"

	"github.com/stormvale/vocation-engine/internal/metrics"
)

// Hub tracks connected clients by player and routes events to them. A player
// may hold several connections (multiple tabs, devices); every one gets the
// push.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		c.close()
		return
	}
	if h.clients[c.playerID] == nil {
		h.clients[c.playerID] = make(map[*Client]struct{})
	}
	h.clients[c.playerID][c] = struct{}{}
	metrics.RealtimeConnections.Inc()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.playerID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.playerID)
	}
	metrics.RealtimeConnections.Dec()
}

// BroadcastToPlayer pushes an event to every connection the player holds.
// Sends are non-blocking; a client with a full queue is dropped so one slow
// reader cannot stall the tick daemon.
func (h *Hub) BroadcastToPlayer(playerID string, event Event) {
	h.mu.RLock()
	var stale []*Client
	for c := range h.clients[playerID] {
		select {
		case c.send <- event:
			metrics.RealtimeEventsSent.WithLabelValues(event.Type).Inc()
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		slog.Default().Warn("Dropping slow realtime client", "playerID", playerID)
		h.unregister(c)
		c.close()
	}
}

// ConnectionCount reports the number of live connections, for readiness
// probes and tests.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Stop disconnects everyone and rejects future registrations.
func (h *Hub) Stop() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]map[*Client]struct{})
	h.closed = true
	h.mu.Unlock()

	for _, set := range clients {
		for c := range set {
			metrics.RealtimeConnections.Dec()
			c.close()
		}
	}
}
