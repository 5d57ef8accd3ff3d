package commands

import (
	"context"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// TransitionOrderCommandHandler handles lifecycle transitions: role
// authorization, transition-table validation against the locked order row,
// and the post-commit ORDER_STATUS_CHANGED notification.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transition command.
//
// The order row is locked before validation, so concurrent transitions
// against the same order serialize: the loser re-reads the winner's status
// and fails against the transition table instead of double-applying. The
// role check runs before any state is read; an illegal transition leaves the
// order unchanged.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := cmd.ActingRole().AuthorizeTransition(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.TransitionTo(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, event := range uow.PendingEvents() {
		h.publisher.Publish(event)
	}

	return aggregate, nil
}
