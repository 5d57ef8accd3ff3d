package queries

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/guard"
)

var (
	ErrGetActiveOrderCountsQueryIsNotConstructed = errors.New(
		"GetActiveOrderCountsQuery must be created via NewGetActiveOrderCountsQuery constructor",
	)
)

// GetActiveOrderCountsQuery retrieves the number of active orders per tenant.
// Feeds the periodically refreshed capacity gauges.
type GetActiveOrderCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrderCountsQuery creates a query across all tenants.
// This is a parameterless query.
func NewGetActiveOrderCountsQuery() GetActiveOrderCountsQuery {
	return GetActiveOrderCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrderCountsQueryIsNotConstructed if validation fails.
func (q GetActiveOrderCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderCountsQueryIsNotConstructed)
}

// GetActiveOrderCountsQueryResponse is the active order count of one tenant.
// Tenants with zero active orders produce no row.
type GetActiveOrderCountsQueryResponse struct {
	TenantID     kernel.UUID
	ActiveOrders int
}
