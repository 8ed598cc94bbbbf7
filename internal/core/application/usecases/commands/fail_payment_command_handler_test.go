package commands_test

import (
	"testing"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFailPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	failedOrder := fixtureOrder(t, order.PaymentMethodOnline)
	failedOrder.AttachPaymentIntent("order_ref_1")

	cmd, err := commands.NewFailPaymentCommand("order_ref_1", "card declined")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetByProviderOrderRef", ctx, "order_ref_1").Return(failedOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("Notify", ctx, mock.AnythingOfType("ports.NotificationEvent")).Once()

	handler := commands.NewFailPaymentCommandHandler(factory, notifier, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, updated.Status())
	assert.Equal(t, order.PaymentStatusFailed, updated.PaymentStatus())
	assert.Equal(t, "card declined", updated.CancelReason())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestFailPaymentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewFailPaymentCommand("order_ref_unknown", "card declined")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetByProviderOrderRef", ctx, "order_ref_unknown").
			Return(nil, errs.NewObjectNotFoundError("order", "order_ref_unknown")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFailPaymentCommandHandler(factory, new(MockNotificationDispatcher), testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestFailPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.FailPaymentCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewFailPaymentCommandHandler(factory, new(MockNotificationDispatcher), testLogger())

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrFailPaymentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
