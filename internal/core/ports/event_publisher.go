package ports

import (
	"foodorders/internal/core/domain/model/order"
)

// EventPublisher delivers domain events to the shared notification channel.
//
// Delivery is best-effort and at-most-once: implementations must never block
// the caller on channel latency and must swallow (log, count) delivery
// failures. State already committed is the source of truth; notification is
// decoupled by design, which is why Publish returns nothing.
type EventPublisher interface {
	Publish(event order.Event)
}
