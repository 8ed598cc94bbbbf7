package commands

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/metrics"
)

// ReconcilePaymentCommandHandler applies a verified payment callback to the
// order it references.
//
// The signature is checked before any state is touched; a mismatch rejects
// the callback outright. A verified callback marks the payment completed and,
// if the order is still freshly placed, confirms it. An order already
// confirmed by the assignment path keeps its status; only the payment fields
// change. The provider may deliver the same callback more than once, and
// replays land on already-completed payment state without further effect.
type ReconcilePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	verifier   services.PaymentSignatureVerifier
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewReconcilePaymentCommandHandler creates a handler for payment callbacks.
func NewReconcilePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	verifier services.PaymentSignatureVerifier,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		notifier:   notifier,
		logger:     logger.With("component", "reconcile_payment"),
	}
}

// Handle verifies and applies the payment callback, returning the updated
// order.
func (h ReconcilePaymentCommandHandler) Handle(ctx context.Context, command ReconcilePaymentCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if err := h.verifier.Verify(command.ProviderOrderRef(), command.PaymentRef(), command.Signature()); err != nil {
		metrics.PaymentsReconciled.WithLabelValues("signature_mismatch").Inc()
		h.logger.WarnContext(ctx, "payment callback rejected",
			"provider_order_ref", command.ProviderOrderRef())
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paidOrder, err := uow.OrderRepository().GetByProviderOrderRef(ctx, command.ProviderOrderRef())
	if err != nil {
		return nil, err
	}

	if err = paidOrder.CompletePayment(command.PaymentRef(), time.Now()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, paidOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.PaymentsReconciled.WithLabelValues("completed").Inc()
	h.logger.InfoContext(ctx, "payment reconciled",
		"order_id", paidOrder.ID().String(),
		"payment_ref", command.PaymentRef())

	h.notifier.Notify(ctx, ports.NotificationEvent{
		Type:    ports.EventPaymentCompleted,
		OrderID: paidOrder.ID(),
		UserID:  paidOrder.UserID(),
		Note:    "Payment verified, order confirmed",
	})

	return paidOrder, nil
}
