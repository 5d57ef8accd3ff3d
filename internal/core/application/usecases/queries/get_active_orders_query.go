package queries

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves every non-terminal order of one tenant.
// Backs the restaurant dashboard listing and the admission diagnostics.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(tenantID)
//	if err != nil {
//	    return fmt.Errorf("invalid tenant id: %w", err)
//	}
//	orders, err := handler.Handle(ctx, query)
type GetActiveOrdersQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query scoped to one tenant.
func NewGetActiveOrdersQuery(tenantID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}
	return GetActiveOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant whose orders are listed.
func (q GetActiveOrdersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// GetActiveOrdersQueryResponse is one active order row as the dashboard
// consumes it. Statuses travel in their wire spelling; the total stays in
// cents and is formatted at the edge.
type GetActiveOrdersQueryResponse struct {
	ID            kernel.UUID
	RequesterID   kernel.UUID
	Status        string
	PaymentStatus string
	TotalCents    int64
}
