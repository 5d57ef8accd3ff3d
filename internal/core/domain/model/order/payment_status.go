package order

import (
	"fmt"

	"foodorders/internal/pkg/errs"
)

// PaymentStatus tracks the payment axis of an order. It is independent of the
// lifecycle Status: the state machine never cross-validates the two axes, it
// only records the signals supplied by the payment subsystem.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending is the initial payment status at order creation.
	PaymentPending

	// PaymentAuthorized indicates funds were reserved but not captured.
	PaymentAuthorized

	// PaymentPaid indicates the payment was captured.
	PaymentPaid

	// PaymentFailed indicates the payment attempt was rejected.
	PaymentFailed

	// PaymentRefunded indicates a captured payment was returned.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "UNKNOWN",
		PaymentPending:       "PENDING",
		PaymentAuthorized:    "AUTHORIZED",
		PaymentPaid:          "PAID",
		PaymentFailed:        "FAILED",
		PaymentRefunded:      "REFUNDED",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded
	return map[PaymentStatus]string{
		PaymentPending:    "PENDING",
		PaymentAuthorized: "AUTHORIZED",
		PaymentPaid:       "PAID",
		PaymentFailed:     "FAILED",
		PaymentRefunded:   "REFUNDED",
	}
}

// PaymentStatusFromString parses a wire-format payment status name.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range getValidPaymentStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks that the PaymentStatus is one of the defined states.
func (p PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

// String returns the wire-format name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
