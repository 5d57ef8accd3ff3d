package commands

import (
	"context"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// role authorization, plan-based admission, aggregate construction, and the
// post-commit ORDER_CREATED notification.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrOrderLimitExceeded) {
//	    // surface as "upgrade required"
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	admission  services.AdmissionPolicy
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a UoWFactory for transactional persistence and an EventPublisher
// for best-effort notifications.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		admission:  services.NewAdmissionPolicy(),
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
//
// The tenant row is locked for the duration of the transaction, so the
// active-order count and the insert form one per-tenant critical section:
// two concurrent creations can never both pass a stale count. All failures
// are detected before any write; the event is published only after commit
// and its delivery is best-effort.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := cmd.ActingRole().AuthorizeOrderCreation(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := uow.TenantRepository().GetForUpdate(ctx, cmd.TenantID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	activeCount, err := orderRepo.CountActiveByTenant(ctx, owner.ID())
	if err != nil {
		return nil, err
	}

	if err = h.admission.CheckAdmission(owner.Plan(), activeCount); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.TenantID(), cmd.RequesterID(), cmd.Items())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, event := range uow.PendingEvents() {
		h.publisher.Publish(event)
	}

	return newOrder, nil
}
