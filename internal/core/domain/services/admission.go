package services

import (
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/tenant"
)

// ErrOrderLimitExceeded is returned when a tenant's plan does not admit
// another active order. Callers surface it as a distinct "upgrade required"
// signal; it is never retryable.
var ErrOrderLimitExceeded = errors.New("active order limit exceeded")

// OrderLimitExceededError reports the plan and quota that denied admission.
type OrderLimitExceededError struct {
	Plan        tenant.Plan
	Limit       int
	ActiveCount int
}

func (e *OrderLimitExceededError) Error() string {
	return fmt.Sprintf("active order limit exceeded: plan %s allows %d active orders, tenant has %d",
		e.Plan, e.Limit, e.ActiveCount)
}

func (e *OrderLimitExceededError) Unwrap() error {
	return ErrOrderLimitExceeded
}

// AdmissionPolicy is a domain service deciding whether a tenant may create
// another order under its subscription plan.
//
// Business rules:
//   - PRO tenants are always admitted
//   - other tenants are admitted iff their active-order count is strictly
//     below the plan limit
//   - active orders are those outside the terminal statuses
//
// The policy is pure: serialization of the count read against concurrent
// creations is the caller's responsibility (the create-order handler
// evaluates it with the tenant row locked inside the creation transaction).
//
// Example usage:
//
//	policy := services.NewAdmissionPolicy()
//	if err := policy.CheckAdmission(t.Plan(), activeCount); err != nil {
//	    // deny creation, surface as "upgrade required"
//	}
type AdmissionPolicy struct{}

// NewAdmissionPolicy creates a new AdmissionPolicy instance.
func NewAdmissionPolicy() AdmissionPolicy {
	return AdmissionPolicy{}
}

// CheckAdmission returns nil when the plan admits one more active order,
// or an *OrderLimitExceededError (unwrapping to ErrOrderLimitExceeded)
// when the quota is reached.
func (AdmissionPolicy) CheckAdmission(plan tenant.Plan, activeOrderCount int) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	limit, unlimited := plan.MaxActiveOrders()
	if unlimited {
		return nil
	}

	if activeOrderCount >= limit {
		return &OrderLimitExceededError{Plan: plan, Limit: limit, ActiveCount: activeOrderCount}
	}

	return nil
}
