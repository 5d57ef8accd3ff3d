// Package staff contains the Role enumeration for restaurant staff and the
// authorization table mapping each requestable target status to the roles
// permitted to request it.
package staff

import (
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"
)

// Role identifies the kind of staff member acting on an order. Roles arrive
// as claims already authenticated by the API layer; this package only decides
// what each role may request.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// Owner is the restaurant account owner.
	Owner

	// Manager handles front-of-house operations and payments.
	Manager

	// Kitchen prepares orders.
	Kitchen

	// Rider delivers orders.
	Rider
)

// ErrRoleNotAllowed is the sentinel for authorization failures.
var ErrRoleNotAllowed = errors.New("role is not allowed to perform this action")

// RoleNotAllowedError reports a role requesting an action outside its
// authorization set. Checked before any state is read or written.
type RoleNotAllowedError struct {
	Role   Role
	Action string
}

func (e *RoleNotAllowedError) Error() string {
	return fmt.Sprintf("role is not allowed to perform this action: %s may not %s", e.Role, e.Action)
}

func (e *RoleNotAllowedError) Unwrap() error {
	return ErrRoleNotAllowed
}

// getTransitionRoles is the authorization table for lifecycle transitions:
// target status to the roles permitted to request it. Cancellation is an
// owner/manager decision.
func getTransitionRoles() map[order.Status][]Role {
	return map[order.Status][]Role{
		order.Paid:           {Owner, Manager},
		order.Accepted:       {Kitchen, Owner},
		order.Preparing:      {Kitchen},
		order.Ready:          {Kitchen},
		order.OutForDelivery: {Rider},
		order.Completed:      {Rider},
		order.Cancelled:      {Owner, Manager},
	}
}

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		Owner:       "owner",
		Manager:     "manager",
		Kitchen:     "kitchen",
		Rider:       "rider",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		Owner:   "owner",
		Manager: "manager",
		Kitchen: "kitchen",
		Rider:   "rider",
	}
}

// RoleFromString parses a role claim ("owner", "manager", "kitchen", "rider").
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks that the Role is one of the defined staff roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the claim form of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// CanRequestStatus reports whether the role may request a transition to the
// target status.
func (r Role) CanRequestStatus(target order.Status) bool {
	for _, allowed := range getTransitionRoles()[target] {
		if allowed == r {
			return true
		}
	}
	return false
}

// AuthorizeTransition returns a *RoleNotAllowedError when the role may not
// request the target status.
func (r Role) AuthorizeTransition(target order.Status) error {
	if !r.CanRequestStatus(target) {
		return &RoleNotAllowedError{Role: r, Action: fmt.Sprintf("request status %s", target)}
	}
	return nil
}

// AuthorizeOrderCreation returns a *RoleNotAllowedError unless the role is
// owner or manager.
func (r Role) AuthorizeOrderCreation() error {
	if r != Owner && r != Manager {
		return &RoleNotAllowedError{Role: r, Action: "create orders"}
	}
	return nil
}

// AuthorizePaymentUpdate returns a *RoleNotAllowedError unless the role is
// owner or manager.
func (r Role) AuthorizePaymentUpdate() error {
	if r != Owner && r != Manager {
		return &RoleNotAllowedError{Role: r, Action: "update payment status"}
	}
	return nil
}
