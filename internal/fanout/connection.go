package fanout

import (
	"sync"

	"foodorders/internal/core/domain/model/order"
)

const connectionBufferSize = 32

// Connection is one dashboard subscription to a tenant's event stream.
// Events arrive on a buffered FIFO channel; the transport layer drains it and
// calls Close when the client goes away.
type Connection struct {
	tenantID  string
	out       chan order.Event
	closed    chan struct{}
	closeOnce sync.Once
}

// NewConnection creates a subscription for one tenant.
func NewConnection(tenantID string) *Connection {
	return &Connection{
		tenantID: tenantID,
		out:      make(chan order.Event, connectionBufferSize),
		closed:   make(chan struct{}),
	}
}

// TenantID returns the tenant this connection subscribed to.
func (c *Connection) TenantID() string {
	return c.tenantID
}

// Events returns the channel the transport drains. The channel is never
// closed; consumers select on Done instead.
func (c *Connection) Events() <-chan order.Event {
	return c.out
}

// Done is closed when the connection is shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.closed
}

// Close shuts the connection down. Safe to call multiple times.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// send enqueues the event without blocking. Returns false when the
// connection is closed or its buffer is full; the hub treats that as a dead
// consumer.
func (c *Connection) send(event order.Event) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.out <- event:
		return true
	default:
		return false
	}
}
