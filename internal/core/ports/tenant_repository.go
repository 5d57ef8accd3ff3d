package ports

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/tenant"
)

// TenantRepository defines the persistence contract for tenant aggregates.
type TenantRepository interface {
	// Add persists a new tenant aggregate.
	Add(ctx context.Context, aggregate *tenant.Tenant) error

	// Update persists changes to an existing tenant aggregate.
	Update(ctx context.Context, aggregate *tenant.Tenant) error

	// Get retrieves a tenant aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)

	// GetForUpdate retrieves a tenant with its row locked for the duration
	// of the surrounding transaction. Creation handlers take this lock to
	// serialize the admission count against concurrent creations for the
	// same tenant; creations for different tenants proceed in parallel.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)
}
