package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/partnerrepo"
	"foodorder/internal/adapters/out/postgres/taskrepo"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/core/domain/model/task"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and the
// repositories against a real PostgreSQL instance, including the optimistic
// concurrency behavior the assignment path depends on.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &partnerrepo.PartnerDTO{}, &taskrepo.AssignmentTaskDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, delivery_partners, assignment_tasks").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.PartnerRepository())
	suite.NotNil(uow1.AssignmentTaskRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// A second Begin on an open transaction is a no-op.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

// TestCheckoutTransaction verifies that an order and its first assignment
// task persist atomically, the way the checkout handler writes them.
func (suite *UnitOfWorkIntegrationTestSuite) TestCheckoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	testTask, err := task.NewAssignmentTask(kernel.NewUUID(), testOrder.ID(), time.Now().Add(2*time.Minute))
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.AssignmentTaskRepository().Add(ctx, testTask))
	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.StatusPlaced, retrieved.Status())
	suite.Equal(testOrder.Pricing().Total().Amount(), retrieved.Pricing().Total().Amount())
	suite.Len(retrieved.Items(), 1)
	suite.Len(retrieved.History(), 1)

	due, err := newUow.AssignmentTaskRepository().GetDue(ctx, time.Now().Add(time.Hour), 10)
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.True(due[0].OrderID().IsEqual(testOrder.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	testPartner := suite.createTestPartner()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.PartnerRepository().Add(ctx, testPartner))

	// Visible inside the transaction.
	_, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = newUow.PartnerRepository().Get(ctx, testPartner.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestPartnerVersionConflict verifies the compare-and-set discipline: the
// second writer working from a stale copy loses.
func (suite *UnitOfWorkIntegrationTestSuite) TestPartnerVersionConflict() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testPartner := suite.createTestPartner()
	suite.Require().NoError(uow.PartnerRepository().Add(ctx, testPartner))

	first, err := uow.PartnerRepository().Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	second, err := uow.PartnerRepository().Get(ctx, testPartner.ID())
	suite.Require().NoError(err)

	first.SetAvailability(false)
	suite.Require().NoError(uow.PartnerRepository().Update(ctx, first))

	second.SetAvailability(true)
	err = uow.PartnerRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)

	// The winner's write stands and the version advanced exactly once.
	current, err := uow.PartnerRepository().Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.False(current.IsAvailable())
	suite.Equal(first.Version()+1, current.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderVersionConflict() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	first, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Cancel("first writer", time.Now()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, first))

	suite.Require().NoError(second.TransitionTo(order.StatusConfirmed, "", time.Now()))
	err = uow.OrderRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)

	current, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusCancelled, current.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetByProviderOrderRef() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	testOrder.AttachPaymentIntent("order_provider_ref_42")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	retrieved, err := uow.OrderRepository().GetByProviderOrderRef(ctx, "order_provider_ref_42")
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(testOrder.ID()))

	_, err = uow.OrderRepository().GetByProviderOrderRef(ctx, "order_provider_ref_unknown")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestGetDue verifies the sweep query: only open tasks whose due time has
// passed come back, oldest first.
func (suite *UnitOfWorkIntegrationTestSuite) TestGetDue() {
	ctx := context.Background()
	uow := suite.factory.Create()
	now := time.Now()

	overdue, err := task.NewAssignmentTask(kernel.NewUUID(), kernel.NewUUID(), now.Add(-10*time.Minute))
	suite.Require().NoError(err)
	justDue, err := task.NewAssignmentTask(kernel.NewUUID(), kernel.NewUUID(), now.Add(-time.Minute))
	suite.Require().NoError(err)
	future, err := task.NewAssignmentTask(kernel.NewUUID(), kernel.NewUUID(), now.Add(time.Hour))
	suite.Require().NoError(err)
	finished, err := task.NewAssignmentTask(kernel.NewUUID(), kernel.NewUUID(), now.Add(-time.Hour))
	suite.Require().NoError(err)
	finished.MarkDone()

	for _, item := range []*task.AssignmentTask{overdue, justDue, future, finished} {
		suite.Require().NoError(uow.AssignmentTaskRepository().Add(ctx, item))
	}

	due, err := uow.AssignmentTaskRepository().GetDue(ctx, now, 10)
	suite.Require().NoError(err)
	suite.Require().Len(due, 2)
	suite.True(due[0].ID().IsEqual(overdue.ID()))
	suite.True(due[1].ID().IsEqual(justDue.ID()))

	limited, err := uow.AssignmentTaskRepository().GetDue(ctx, now, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	price, err := kernel.NewMoney(25000)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), "Margherita Pizza", 1, price)
	suite.Require().NoError(err)
	address, err := order.NewAddress("Asha Rao", "+919876543210", "asha@example.com",
		"14 MG Road", "Bengaluru", "560001")
	suite.Require().NoError(err)

	pricing := order.NewPricing(item.LineTotal(), 4000, item.LineTotal().Percent(5))
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item},
		address, order.PaymentMethodCOD, pricing, time.Now())
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestPartner() *partner.DeliveryPartner {
	testPartner, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi Kumar", "+919800000001", partner.VehicleBike)
	suite.Require().NoError(err)
	return testPartner
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
