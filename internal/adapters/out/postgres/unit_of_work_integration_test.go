package postgres_test

import (
	"context"
	"testing"
	"time"

	"foodorders/internal/adapters/out/postgres"
	"foodorders/internal/adapters/out/postgres/orderrepo"
	"foodorders/internal/adapters/out/postgres/tenantrepo"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/tenant"
	"foodorders/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transactional behavior, event
// collection, and row locking against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&tenantrepo.TenantDTO{}, &orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items, tenants").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsWritesAndCollectsEvents() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	events := uow.PendingEvents()
	suite.Require().Len(events, 1)
	suite.Equal(order.EventOrderCreated, events[0].Type)
	suite.Equal(testOrder.ID().String(), events[0].OrderID)
	suite.Equal(testOrder.TenantID().String(), events[0].TenantID)
	suite.Equal("CREATED", events[0].Status)

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.PendingEvents())

	_, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	ctx := context.Background()

	uow := suite.factory.Create()
	err := uow.Commit(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCrossAggregate_TenantAndOrderInOneTransaction() {
	ctx := context.Background()
	owner, err := tenant.NewTenant(kernel.NewUUID(), "Sushi Place", kernel.NewUUID(), tenant.PlanBasic)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TenantRepository().Add(ctx, owner))

	item, err := order.NewItem("Nigiri Set", 1, 2400)
	suite.Require().NoError(err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), owner.ID(), kernel.NewUUID(), []order.Item{item})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	// tenant writes contribute no events; order events still come through
	events := uow.PendingEvents()
	suite.Require().Len(events, 1)
	suite.Equal(order.EventOrderCreated, events[0].Type)

	count, err := suite.factory.Create().OrderRepository().CountActiveByTenant(ctx, owner.ID())
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_SerializesConcurrentTransactions() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.OrderRepository().GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.TransitionTo(order.Paid))
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))

	// second transaction blocks on the row lock until the first commits
	done := make(chan error, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			done <- err
			return
		}
		defer second.Rollback(ctx) //nolint:errcheck
		reread, err := second.OrderRepository().GetForUpdate(ctx, testOrder.ID())
		if err != nil {
			done <- err
			return
		}
		if reread.Status() != order.Paid {
			done <- errs.NewValueIsInvalidError("status")
			return
		}
		done <- nil
	}()

	time.Sleep(200 * time.Millisecond)
	suite.Require().NoError(first.Commit(ctx))

	select {
	case err := <-done:
		suite.Require().NoError(err)
	case <-time.After(5 * time.Second):
		suite.Fail("second transaction never acquired the row lock")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	item, err := order.NewItem("Pizza Margherita", 2, 1200)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Item{item})
	suite.Require().NoError(err)
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
