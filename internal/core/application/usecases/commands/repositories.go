// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// authorization, transaction management, persistence, and post-commit event
// publication.
package commands

import (
	"context"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TenantRepoFactory provides access to the tenant repository within a
	// transaction.
	TenantRepoFactory interface {
		TenantRepository() ports.TenantRepository
	}

	// EventSource exposes the domain events collected during Commit.
	// Handlers publish these after the transaction so that notification
	// failures can never undo committed state.
	EventSource interface {
		PendingEvents() []order.Event
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		EventSource
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning the order and tenant aggregates.
	// Used by order creation, which locks the tenant row for admission.
	UoW interface {
		TxManager
		OrderRepoFactory
		TenantRepoFactory
		EventSource
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
