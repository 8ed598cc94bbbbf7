package commands

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/metrics"
)

// FailPaymentCommandHandler handles a reported payment failure: the order is
// cancelled and its payment marked failed in one transition. Failures against
// an order that already reached a terminal status are rejected by the
// aggregate.
type FailPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewFailPaymentCommandHandler creates a handler for payment failures.
func NewFailPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) FailPaymentCommandHandler {
	return FailPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "fail_payment"),
	}
}

// Handle cancels the order referenced by the failed payment and returns it.
func (h FailPaymentCommandHandler) Handle(ctx context.Context, command FailPaymentCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	failedOrder, err := uow.OrderRepository().GetByProviderOrderRef(ctx, command.ProviderOrderRef())
	if err != nil {
		return nil, err
	}

	if err = failedOrder.FailPayment(command.Reason(), time.Now()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, failedOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.PaymentsReconciled.WithLabelValues("failed").Inc()
	h.logger.InfoContext(ctx, "payment failure recorded, order cancelled",
		"order_id", failedOrder.ID().String())

	h.notifier.Notify(ctx, ports.NotificationEvent{
		Type:    ports.EventPaymentFailed,
		OrderID: failedOrder.ID(),
		UserID:  failedOrder.UserID(),
		Note:    "Payment failed: order cancelled",
	})

	return failedOrder, nil
}
