package hub

import (
	"context"
	"sync"

	"chatrelay/internal/core/contracts"
)

// Hub keeps the set of live connections and fans frames out to them.
// All mutation happens behind the mutex; send failures are swallowed
// because delivery to a connection that is already gone is a silent
// drop.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]contracts.Client // connection id → client
}

func New() *Hub {
	return &Hub{
		clients: make(map[string]contracts.Client),
	}
}

func (h *Hub) Register(c contracts.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ConnectionID()] = c
}

func (h *Hub) Unregister(c contracts.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.ConnectionID())
}

// BroadcastAll delivers to every connected client, originator included.
func (h *Hub) BroadcastAll(ctx context.Context, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		_ = c.Send(ctx, data)
	}
}

// BroadcastExcept delivers to everyone but the origin connection.
func (h *Hub) BroadcastExcept(ctx context.Context, originID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if id == originID {
			continue
		}
		_ = c.Send(ctx, data)
	}
}
