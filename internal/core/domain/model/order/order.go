package order

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for one order's lifecycle. It owns the
// lifecycle status, the independent payment status, and the immutable set of
// line items captured at creation time.
//
// Order follows these invariants:
//   - identity, tenant, and requester ids are valid UUIDs
//   - at least one line item; every item is valid
//   - total amount equals the sum of quantity x unit price over the items
//   - status only changes along the transition table; terminal statuses
//     (Completed, Cancelled) never change again
//
// Successful mutations record domain events on the aggregate; the application
// layer pulls and publishes them after the transaction commits.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tenantID identifies the restaurant the order belongs to
	tenantID kernel.UUID

	// requesterID identifies the staff member who entered the order
	requesterID kernel.UUID

	// items are the ordered line items, fixed at creation
	items []Item

	// totalCents is derived from items at creation and never recomputed
	totalCents int64

	// status is the current lifecycle state
	status Status

	// paymentStatus is the independent payment axis
	paymentStatus PaymentStatus

	// events holds domain events recorded since the last PullEvents
	events []Event

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order in Created status with payment Pending and
// records the OrderCreated event.
//
// Parameters:
//   - id: unique order identifier
//   - tenantID: owning restaurant
//   - requesterID: staff member creating the order
//   - items: at least one validated line item
//
// Returns a validation error if any id is invalid, items is empty, or any
// item is invalid.
func NewOrder(id, tenantID, requesterID kernel.UUID, items []Item) (*Order, error) {
	o := &Order{
		status:        Created,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setRequesterID(requesterID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.events = append(o.events, newOrderCreatedEvent(o))
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. No events are
// recorded; the supplied total is trusted as the creation-time derivation.
func RestoreOrder(
	id, tenantID, requesterID kernel.UUID,
	items []Item,
	totalCents int64,
	status Status,
	paymentStatus PaymentStatus,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setRequesterID(requesterID),
		o.setItems(items),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.totalCents = totalCents
	o.status = status
	o.paymentStatus = paymentStatus
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning restaurant's identifier.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// RequesterID returns the identifier of the staff member who created the order.
func (o *Order) RequesterID() kernel.UUID {
	return o.requesterID
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalCents returns the derived order total in cents.
func (o *Order) TotalCents() int64 {
	return o.totalCents
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// IsActive reports whether the order counts toward the tenant's active-order
// quota, i.e. its status is not terminal.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal()
}

// TransitionTo moves the order to the target status if the transition table
// allows it, and records the OrderStatusChanged event.
//
// Returns an *IllegalTransitionError (unwrapping to ErrIllegalTransition)
// and leaves the order unchanged when the transition is not allowed.
func (o *Order) TransitionTo(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.events = append(o.events, newOrderStatusChangedEvent(o))
	return nil
}

// RecordPayment updates the payment axis with a signal from the payment
// subsystem. The lifecycle status is deliberately not consulted: the two axes
// are decoupled and no event is emitted for payment updates.
func (o *Order) RecordPayment(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}

	o.paymentStatus = paymentStatus
	return nil
}

// PullEvents returns the events recorded since the last call and clears them.
// Called by the unit of work after a successful commit.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	o.requesterID = requesterID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var total int64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.TotalCents()
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalCents = total
	return nil
}
