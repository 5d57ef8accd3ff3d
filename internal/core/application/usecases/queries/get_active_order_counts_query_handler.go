package queries

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrderCountsQueryHandler aggregates active order counts per tenant
// in a single grouped query.
type GetActiveOrderCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrderCountsQueryHandler creates a handler for per-tenant counts.
// Requires a GORM database connection for query execution.
func NewGetActiveOrderCountsQueryHandler(db *gorm.DB) GetActiveOrderCountsQueryHandler {
	return GetActiveOrderCountsQueryHandler{db: db}
}

// Handle executes the query. Orders in COMPLETED or CANCELLED status do not
// count; results are sorted by tenant ID for consistent output.
func (h GetActiveOrderCountsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrderCountsQuery,
) ([]GetActiveOrderCountsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := make([]GetActiveOrderCountsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tenant_id,
			COUNT(*)
		FROM orders
		WHERE status NOT IN (?, ?)
		GROUP BY tenant_id
		ORDER BY tenant_id
	`, order.Completed.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var countResp GetActiveOrderCountsQueryResponse
		var tenantID uuid.UUID

		err = rows.Scan(
			&tenantID,
			&countResp.ActiveOrders,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(tenantID[:])
		if idErr != nil {
			return nil, idErr
		}
		countResp.TenantID = id

		counts = append(counts, countResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
