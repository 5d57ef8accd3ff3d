// Package fanout delivers committed order events to the dashboard
// connections of the matching tenant. Tenants are isolated: a connection
// only ever sees events whose tenant id matches its subscription. Dispatch
// never blocks on a slow consumer; a connection that cannot keep up is
// dropped rather than stalling the rest.
package fanout

import (
	"log/slog"
	"sync"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/metrics"
)

// Hub routes events to registered connections by tenant id.
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]map[*Connection]struct{}
	logger   *slog.Logger
	registry *metrics.Registry
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger, registry *metrics.Registry) *Hub {
	return &Hub{
		conns:    make(map[string]map[*Connection]struct{}),
		logger:   logger.With("component", "fanout-hub"),
		registry: registry,
	}
}

// Register adds a connection to its tenant's set. Registering the same
// connection twice is a no-op.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[conn.TenantID()]
	if !ok {
		set = make(map[*Connection]struct{})
		h.conns[conn.TenantID()] = set
	}

	if _, exists := set[conn]; exists {
		return
	}
	set[conn] = struct{}{}
	h.registry.ConnectionsOpen.Inc()
}

// Unregister removes and closes a connection. Unregistering a connection
// that is not registered is a no-op.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(conn)
}

func (h *Hub) unregisterLocked(conn *Connection) {
	set, ok := h.conns[conn.TenantID()]
	if !ok {
		return
	}
	if _, exists := set[conn]; !exists {
		return
	}

	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, conn.TenantID())
	}
	conn.Close()
	h.registry.ConnectionsOpen.Dec()
}

// Dispatch delivers the event to every connection of its tenant.
// Connections that cannot accept the event are dropped; other connections
// and other tenants are unaffected.
func (h *Hub) Dispatch(event order.Event) {
	h.mu.RLock()
	targets := make([]*Connection, 0, len(h.conns[event.TenantID]))
	for conn := range h.conns[event.TenantID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	var failed []*Connection
	for _, conn := range targets {
		if conn.send(event) {
			h.registry.EventsDispatched.Inc()
			continue
		}
		h.registry.EventsDropped.Inc()
		failed = append(failed, conn)
	}

	if len(failed) == 0 {
		return
	}

	h.mu.Lock()
	for _, conn := range failed {
		h.unregisterLocked(conn)
	}
	h.mu.Unlock()

	h.logger.Warn("dropped slow connections",
		"tenant_id", event.TenantID, "count", len(failed))
}

// ConnectionCount reports the registered connections of one tenant.
func (h *Hub) ConnectionCount(tenantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[tenantID])
}
