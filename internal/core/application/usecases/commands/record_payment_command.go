package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/staff"
	"foodorders/internal/pkg/guard"
)

var (
	ErrRecordPaymentCommandIsNotConstructed = errors.New(
		"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
	)
)

// RecordPaymentCommand represents a payment-status signal from the payment
// subsystem (authorize, capture, failure, refund). The payment axis is
// independent of the lifecycle status and emits no domain events.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentStatus order.PaymentStatus
	actingRole    staff.Role

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment-status signal.
func NewRecordPaymentCommand(
	orderID kernel.UUID,
	paymentStatus order.PaymentStatus,
	actingRole staff.Role,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentStatus(paymentStatus),
		cmd.setActingRole(actingRole),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment axis is updated.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentStatus returns the signaled payment status.
func (c RecordPaymentCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

// ActingRole returns the caller's authenticated role claim.
func (c RecordPaymentCommand) ActingRole() staff.Role {
	return c.actingRole
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setPaymentStatus(paymentStatus order.PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	c.paymentStatus = paymentStatus
	return nil
}

func (c *RecordPaymentCommand) setActingRole(actingRole staff.Role) error {
	if err := actingRole.Validate(); err != nil {
		return err
	}
	c.actingRole = actingRole
	return nil
}
