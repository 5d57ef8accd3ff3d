package queries_test

import (
	"testing"

	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrdersQuery_Valid(t *testing.T) {
	tenantID := kernel.NewUUID()
	query, err := queries.NewGetActiveOrdersQuery(tenantID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.TenantID().IsEqual(tenantID))
}

func TestNewGetActiveOrdersQuery_EmptyTenantID(t *testing.T) {
	_, err := queries.NewGetActiveOrdersQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetActiveOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}

func TestNewGetActiveOrderCountsQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveOrderCountsQuery()
	require.NoError(t, query.Validate())
}

func TestGetActiveOrderCountsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveOrderCountsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveOrderCountsQueryIsNotConstructed)
}
