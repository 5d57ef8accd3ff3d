package ports

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order with its row locked for the duration
	// of the surrounding transaction. Used by transition handlers so that
	// the read-validate-write sequence on one order is serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByTenant returns the number of the tenant's orders whose
	// status is not terminal. Combined with a locked tenant row it feeds
	// the admission check.
	CountActiveByTenant(ctx context.Context, tenantID kernel.UUID) (int, error)

	// GetAllActiveByTenant retrieves the tenant's non-terminal orders.
	GetAllActiveByTenant(ctx context.Context, tenantID kernel.UUID) ([]*order.Order, error)
}
