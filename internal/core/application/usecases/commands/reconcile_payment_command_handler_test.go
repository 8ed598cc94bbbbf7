package commands_test

import (
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "webhook-secret"

func signedReconcileCommand(t *testing.T, providerOrderRef, paymentRef string) commands.ReconcilePaymentCommand {
	t.Helper()
	verifier := services.NewPaymentSignatureVerifier(testWebhookSecret)
	cmd, err := commands.NewReconcilePaymentCommand(
		providerOrderRef, paymentRef, verifier.Sign(providerOrderRef, paymentRef))
	require.NoError(t, err)
	return cmd
}

func newReconcileHandler(factory commands.OrderUoWFactory, notifier *MockNotificationDispatcher) commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(
		factory, services.NewPaymentSignatureVerifier(testWebhookSecret), notifier, testLogger())
}

func TestReconcilePaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	paidOrder := fixtureOrder(t, order.PaymentMethodOnline)
	paidOrder.AttachPaymentIntent("order_ref_1")
	cmd := signedReconcileCommand(t, "order_ref_1", "pay_1")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetByProviderOrderRef", ctx, "order_ref_1").Return(paidOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("Notify", ctx, mock.AnythingOfType("ports.NotificationEvent")).Once()

	handler := newReconcileHandler(factory, notifier)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentStatusCompleted, updated.PaymentStatus())
	assert.Equal(t, order.StatusConfirmed, updated.Status())
	assert.Equal(t, "pay_1", updated.PaymentRef())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReconcilePaymentCommandHandler_Handle_SignatureMismatch(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewReconcilePaymentCommand("order_ref_1", "pay_1", "forged")
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotificationDispatcher)

	handler := newReconcileHandler(factory, notifier)
	_, err = handler.Handle(ctx, cmd)

	// A bad signature never reaches the database.
	require.ErrorIs(t, err, services.ErrSignatureMismatch)
	factory.AssertNotCalled(t, "Create")
	notifier.AssertNotCalled(t, "Notify")
}

func TestReconcilePaymentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := signedReconcileCommand(t, "order_ref_unknown", "pay_1")

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

	handler := newReconcileHandler(factory, new(MockNotificationDispatcher))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestReconcilePaymentCommandHandler_Handle_TerminalOrderRejected(t *testing.T) {
	ctx := t.Context()

	cancelledOrder := fixtureOrder(t, order.PaymentMethodOnline)
	cancelledOrder.AttachPaymentIntent("order_ref_1")
	require.NoError(t, cancelledOrder.Cancel("", time.Now()))

	cmd := signedReconcileCommand(t, "order_ref_1", "pay_1")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetByProviderOrderRef", ctx, "order_ref_1").Return(cancelledOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newReconcileHandler(factory, new(MockNotificationDispatcher))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestReconcilePaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ReconcilePaymentCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := newReconcileHandler(factory, new(MockNotificationDispatcher))

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrReconcilePaymentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewReconcilePaymentCommand_RequiredFields(t *testing.T) {
	_, err := commands.NewReconcilePaymentCommand("", "pay_1", "sig")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewReconcilePaymentCommand("order_ref_1", "", "sig")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewReconcilePaymentCommand("order_ref_1", "pay_1", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
