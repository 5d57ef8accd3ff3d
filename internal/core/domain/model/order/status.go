package order

import (
	"errors"
	"fmt"

	"foodorders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a fixed transition table so orders always follow the
// operational workflow of the restaurant.
//
// State transitions:
//
//	Created ──> Paid ──> Accepted ──> Preparing ──> Ready ──> OutForDelivery ──> Completed
//	   │          │
//	   └──────────┴──> Cancelled
//
// Completed and Cancelled are terminal: no outgoing transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Created is the initial status assigned at order creation.
	Created

	// Paid indicates the customer payment was confirmed by staff.
	Paid

	// Accepted indicates the kitchen has taken ownership of the order.
	Accepted

	// Preparing indicates the kitchen is actively preparing the order.
	Preparing

	// Ready indicates the order is ready for pickup by a rider.
	Ready

	// OutForDelivery indicates a rider is delivering the order.
	OutForDelivery

	// Completed indicates the order was delivered. Terminal.
	Completed

	// Cancelled indicates the order was abandoned before completion. Terminal.
	Cancelled
)

// ErrIllegalTransition is the sentinel for transition-table violations.
// Use errors.Is to classify; the concrete error carries both statuses.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError reports a requested transition that is absent from
// the transition table. The order is left unchanged when this is returned.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// validTransitions is the source of truth for legal lifecycle transitions.
// Initialized once at startup and never mutated; statuses absent as keys
// (the terminal states) allow no transitions at all.
var validTransitions = map[Status]map[Status]struct{}{
	Created:        {Paid: {}, Cancelled: {}},
	Paid:           {Accepted: {}, Cancelled: {}},
	Accepted:       {Preparing: {}},
	Preparing:      {Ready: {}},
	Ready:          {OutForDelivery: {}},
	OutForDelivery: {Completed: {}},
}

// getStatusStrings returns a map of Status values to their wire-format names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "UNKNOWN",
		Created:        "CREATED",
		Paid:           "PAID",
		Accepted:       "ACCEPTED",
		Preparing:      "PREPARING",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Completed:      "COMPLETED",
		Cancelled:      "CANCELLED",
	}
}

// getValidStatusStrings returns only valid Status values, to support
// validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:        "CREATED",
		Paid:           "PAID",
		Accepted:       "ACCEPTED",
		Preparing:      "PREPARING",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Completed:      "COMPLETED",
		Cancelled:      "CANCELLED",
	}
}

// StatusFromString parses a wire-format status name ("CREATED", "PAID", ...).
// Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the transition table permits moving from
// the current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	_, ok = allowed[target]
	return ok
}

// TransitionTo returns the target status when the transition is legal.
//
// Returns (StatusUnknown, *IllegalTransitionError) when the (s, target) pair
// is absent from the transition table. Used by Order.TransitionTo to enforce
// the state machine.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, &IllegalTransitionError{From: s, To: target}
	}
	return target, nil
}
