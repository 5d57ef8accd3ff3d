package ports

import (
	"context"

	"foodorders/internal/core/domain/model/order"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control, repositories bound to the transaction, and the domain
// events recorded by aggregates modified within it.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and collects the domain
	// events recorded on tracked aggregates.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// TenantRepository returns a TenantRepository bound to the current
	// transaction.
	TenantRepository() TenantRepository

	// PendingEvents returns the domain events collected by Commit, in the
	// order the aggregates recorded them. Empty before a successful commit.
	// Callers hand these to an EventPublisher after the transaction, so a
	// publish failure can never roll back committed state.
	PendingEvents() []order.Event
}
