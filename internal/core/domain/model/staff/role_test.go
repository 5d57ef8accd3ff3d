package staff_test

import (
	"testing"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	for _, r := range []staff.Role{staff.Owner, staff.Manager, staff.Kitchen, staff.Rider} {
		parsed, err := staff.RoleFromString(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := staff.RoleFromString("admin")
	require.Error(t, err)
}

func TestRole_CanRequestStatus(t *testing.T) {
	tests := []struct {
		target  order.Status
		allowed []staff.Role
	}{
		{order.Paid, []staff.Role{staff.Owner, staff.Manager}},
		{order.Accepted, []staff.Role{staff.Kitchen, staff.Owner}},
		{order.Preparing, []staff.Role{staff.Kitchen}},
		{order.Ready, []staff.Role{staff.Kitchen}},
		{order.OutForDelivery, []staff.Role{staff.Rider}},
		{order.Completed, []staff.Role{staff.Rider}},
		{order.Cancelled, []staff.Role{staff.Owner, staff.Manager}},
	}

	allRoles := []staff.Role{staff.Owner, staff.Manager, staff.Kitchen, staff.Rider}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			for _, role := range allRoles {
				want := false
				for _, allowed := range tt.allowed {
					if allowed == role {
						want = true
					}
				}
				assert.Equal(t, want, role.CanRequestStatus(tt.target), "role %s, target %s", role, tt.target)
			}
		})
	}
}

func TestRole_AuthorizeTransition(t *testing.T) {
	require.NoError(t, staff.Kitchen.AuthorizeTransition(order.Preparing))

	err := staff.Rider.AuthorizeTransition(order.Preparing)
	require.ErrorIs(t, err, staff.ErrRoleNotAllowed)

	// nobody may request the initial status
	err = staff.Owner.AuthorizeTransition(order.Created)
	require.ErrorIs(t, err, staff.ErrRoleNotAllowed)
}

func TestRole_AuthorizeOrderCreation(t *testing.T) {
	require.NoError(t, staff.Owner.AuthorizeOrderCreation())
	require.NoError(t, staff.Manager.AuthorizeOrderCreation())
	require.ErrorIs(t, staff.Kitchen.AuthorizeOrderCreation(), staff.ErrRoleNotAllowed)
	require.ErrorIs(t, staff.Rider.AuthorizeOrderCreation(), staff.ErrRoleNotAllowed)
}

func TestRole_AuthorizePaymentUpdate(t *testing.T) {
	require.NoError(t, staff.Manager.AuthorizePaymentUpdate())
	require.ErrorIs(t, staff.Kitchen.AuthorizePaymentUpdate(), staff.ErrRoleNotAllowed)
}
