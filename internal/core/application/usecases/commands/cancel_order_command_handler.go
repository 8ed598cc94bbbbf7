package commands

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order. Cancelling a terminal order is
// rejected by the aggregate with AlreadyTerminalError; everything else is a
// single guarded transition to cancelled.
//
// If a delivery partner was already bound, their load is released in the same
// transaction so the partner does not stay blocked by a dead order.
type CancelOrderCommandHandler struct {
	uowFactory OrderPartnerUoWFactory
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderPartnerUoWFactory,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle processes the cancellation command and returns the cancelled order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trackedOrder, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	wasOutForDelivery := trackedOrder.Status() != order.StatusDelivered && trackedOrder.PartnerID() != nil

	if err = trackedOrder.Cancel(command.Reason(), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, trackedOrder); err != nil {
		return nil, err
	}

	if wasOutForDelivery {
		if err = h.releasePartner(ctx, uow, trackedOrder); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order cancelled",
		"order_id", trackedOrder.ID().String(),
		"reason", trackedOrder.CancelReason())

	h.notifier.Notify(ctx, ports.NotificationEvent{
		Type:    ports.EventOrderStatus,
		OrderID: trackedOrder.ID(),
		UserID:  trackedOrder.UserID(),
		Note:    "Order cancelled: " + trackedOrder.CancelReason(),
	})

	return trackedOrder, nil
}

// releasePartner drops the cancelled order from the bound partner's current
// load. The delivery never happened, so totals are untouched.
func (h CancelOrderCommandHandler) releasePartner(
	ctx context.Context,
	uow OrderPartnerUoW,
	cancelledOrder *order.Order,
) error {
	assigned, err := uow.PartnerRepository().Get(ctx, *cancelledOrder.PartnerID())
	if err != nil {
		return err
	}

	assigned.ReleaseDelivery()
	if err = uow.PartnerRepository().Update(ctx, assigned); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "partner released after cancellation",
		"order_id", cancelledOrder.ID().String(),
		"partner_id", assigned.ID().String())
	return nil
}
