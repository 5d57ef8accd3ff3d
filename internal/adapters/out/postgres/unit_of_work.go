// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The unit of work coordinates a database transaction across the
// order and tenant repositories and collects the domain events of every
// aggregate written inside it, so that handlers can publish notifications
// strictly after commit.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
//	    return err
//	}
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//
//	for _, event := range uow.PendingEvents() {
//	    publisher.Publish(event)
//	}
//
// Row locks taken through the repositories' GetForUpdate methods live exactly
// as long as the transaction: Commit or Rollback releases them. Each
// UnitOfWork instance owns one transaction; concurrent goroutines must use
// separate instances from the factory.
package postgres

import (
	"context"

	"foodorders/internal/adapters/out/postgres/orderrepo"
	"foodorders/internal/adapters/out/postgres/tenantrepo"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for one business
// transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written within it. After a successful Commit the domain events
// recorded by those aggregates are available via PendingEvents; a Rollback
// discards them together with the writes, so a notification can never
// describe state that was not committed.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
	pendingEvents     []order.Event
}

// Begin initiates the transaction. Subsequent repository operations execute
// within it. Calling Begin again on the same instance is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the transaction and collects the domain events of every
// tracked order aggregate. Returns gorm.ErrInvalidTransaction if no
// transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, tracked := range uow.trackedAggregates {
		if aggregate, ok := tracked.Aggregate.(*order.Order); ok {
			uow.pendingEvents = append(uow.pendingEvents, aggregate.PullEvents()...)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	return nil
}

// Rollback discards the transaction, its writes, and the events of any
// tracked aggregates. Returns gorm.ErrInvalidTransaction if no transaction
// is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository provides order persistence within the unit of work.
// Operations execute inside the current transaction if one is active,
// otherwise against the main connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TenantRepository provides tenant persistence within the unit of work.
// Operations execute inside the current transaction if one is active,
// otherwise against the main connection.
func (uow *GormUnitOfWork) TenantRepository() ports.TenantRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return tenantrepo.NewGormTenantRepository(db, uow)
}

// PendingEvents returns the domain events collected by Commit, in write
// order. Empty until a commit succeeds.
func (uow *GormUnitOfWork) PendingEvents() []order.Event {
	return uow.pendingEvents
}

// TrackAggregate registers a domain aggregate written within this unit of
// work. Called by the repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
