package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/staff"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to create a new order for a tenant.
// Carries the acting staff member's role claim alongside the order contents.
//
// Example:
//
//	items := []order.Item{pizza, cola}
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), tenantID, userID, staff.Manager, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	tenantID    kernel.UUID
	requesterID kernel.UUID
	actingRole  staff.Role
	items       []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates all identifiers, the role claim, and every line item.
func NewCreateOrderCommand(
	orderID, tenantID, requesterID kernel.UUID,
	actingRole staff.Role,
	items []order.Item,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setRequesterID(requesterID),
		cmd.setActingRole(actingRole),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier minted for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the restaurant the order is created for.
func (c CreateOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// RequesterID returns the staff member entering the order.
func (c CreateOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// ActingRole returns the caller's authenticated role claim.
func (c CreateOrderCommand) ActingRole() staff.Role {
	return c.actingRole
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	c.requesterID = requesterID
	return nil
}

func (c *CreateOrderCommand) setActingRole(actingRole staff.Role) error {
	if err := actingRole.Validate(); err != nil {
		return err
	}
	c.actingRole = actingRole
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
