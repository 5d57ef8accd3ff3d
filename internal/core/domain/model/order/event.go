package order

// EventType discriminates the domain events emitted by the order lifecycle.
type EventType string

const (
	// EventOrderCreated is emitted exactly once when an order is created.
	EventOrderCreated EventType = "ORDER_CREATED"

	// EventOrderStatusChanged is emitted exactly once per successful
	// lifecycle transition.
	EventOrderStatusChanged EventType = "ORDER_STATUS_CHANGED"
)

// Event is an immutable notification describing a committed order state
// change. All tenants share one logical channel, so the tenant id travels in
// the payload and filtering happens at the fanout layer.
//
// The JSON field names are the wire contract consumed by restaurant
// dashboards; restaurant_id carries the tenant id.
type Event struct {
	Type     EventType `json:"type"`
	OrderID  string    `json:"order_id"`
	TenantID string    `json:"restaurant_id"`
	Status   string    `json:"status"`
	Total    *float64  `json:"total,omitempty"`
}

// newOrderCreatedEvent builds the creation event, including the derived total
// in decimal currency units.
func newOrderCreatedEvent(o *Order) Event {
	total := float64(o.totalCents) / 100
	return Event{
		Type:     EventOrderCreated,
		OrderID:  o.id.String(),
		TenantID: o.tenantID.String(),
		Status:   o.status.String(),
		Total:    &total,
	}
}

// newOrderStatusChangedEvent builds the transition event carrying the
// resulting status.
func newOrderStatusChangedEvent(o *Order) Event {
	return Event{
		Type:     EventOrderStatusChanged,
		OrderID:  o.id.String(),
		TenantID: o.tenantID.String(),
		Status:   o.status.String(),
	}
}
