package commands_test

import (
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	placedOrder := fixtureOrder(t, order.PaymentMethodCOD)
	cmd, err := commands.NewCancelOrderCommand(placedOrder.ID(), "changed my mind")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, placedOrder.ID()).Return(placedOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("Notify", ctx, mock.AnythingOfType("ports.NotificationEvent")).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, notifier, testLogger())
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status())
	assert.Equal(t, "changed my mind", cancelled.CancelReason())

	// No partner was ever bound, so the registry is untouched.
	partnerRepo.AssertNotCalled(t, "Get", ctx, mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ReleasesBoundPartner(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	assignedOrder := fixtureOrder(t, order.PaymentMethodCOD)
	boundPartner := fixturePartner(t, "Ravi Kumar")
	require.NoError(t, boundPartner.MarkAssigned(now, 15*time.Minute))
	require.NoError(t, assignedOrder.AssignPartner(boundPartner.ID(), boundPartner.Name(), now))

	cmd, err := commands.NewCancelOrderCommand(assignedOrder.ID(), "restaurant closed")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, assignedOrder.ID()).Return(assignedOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		partnerRepo.On("Get", ctx, boundPartner.ID()).Return(boundPartner, nil).Once(),
		partnerRepo.On("Update", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("Notify", ctx, mock.AnythingOfType("ports.NotificationEvent")).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, notifier, testLogger())
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status())

	// The delivery never happened: the partner's load is released and the
	// lifetime totals stay untouched.
	assert.Zero(t, boundPartner.CurrentDeliveries())
	assert.Zero(t, boundPartner.TotalDeliveries())

	partnerRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AlreadyTerminal(t *testing.T) {
	ctx := t.Context()

	cancelledOrder := fixtureOrder(t, order.PaymentMethodCOD)
	require.NoError(t, cancelledOrder.Cancel("first", time.Now()))

	cmd, err := commands.NewCancelOrderCommand(cancelledOrder.ID(), "second")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, cancelledOrder.ID()).Return(cancelledOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)

	handler := commands.NewCancelOrderCommandHandler(factory, notifier, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrAlreadyTerminal)
	assert.Equal(t, "first", cancelledOrder.CancelReason())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	notifier.AssertNotCalled(t, "Notify")
}

func TestCancelOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	missingOrder := fixtureOrder(t, order.PaymentMethodCOD)
	cmd, err := commands.NewCancelOrderCommand(missingOrder.ID(), "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, missingOrder.ID()).
			Return(nil, errs.NewObjectNotFoundError("order", missingOrder.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, new(MockNotificationDispatcher), testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelOrderCommand{} // not constructed properly

	factory := new(MockOrderPartnerUoWFactory)
	handler := commands.NewCancelOrderCommandHandler(factory, new(MockNotificationDispatcher), testLogger())

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
