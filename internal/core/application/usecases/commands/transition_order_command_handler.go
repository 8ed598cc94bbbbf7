package commands

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// TransitionOrderCommandHandler applies a manual lifecycle transition. The
// state machine itself lives on the aggregate; the handler adds the
// persistence discipline and the delivered-edge side effect: completing a
// delivery decrements the partner's load and stamps the delivery time, in the
// same transaction as the order update.
type TransitionOrderCommandHandler struct {
	uowFactory OrderPartnerUoWFactory
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle
// transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderPartnerUoWFactory,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "transition_order"),
	}
}

// Handle processes the transition command and returns the updated order.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) (*order.Order, error) {
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

	if err = trackedOrder.TransitionTo(command.NewStatus(), command.Note(), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, trackedOrder); err != nil {
		return nil, err
	}

	if command.NewStatus() == order.StatusDelivered && trackedOrder.PartnerID() != nil {
		if err = h.completePartnerDelivery(ctx, uow, trackedOrder, now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.NotificationEvent{
		Type:    ports.EventOrderStatus,
		OrderID: trackedOrder.ID(),
		UserID:  trackedOrder.UserID(),
		Note:    "Order status: " + command.NewStatus().String(),
	})

	return trackedOrder, nil
}

func (h TransitionOrderCommandHandler) completePartnerDelivery(
	ctx context.Context,
	uow OrderPartnerUoW,
	deliveredOrder *order.Order,
	now time.Time,
) error {
	assigned, err := uow.PartnerRepository().Get(ctx, *deliveredOrder.PartnerID())
	if err != nil {
		return err
	}

	assigned.CompleteDelivery(now)
	if err = uow.PartnerRepository().Update(ctx, assigned); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "delivery completed",
		"order_id", deliveredOrder.ID().String(),
		"partner_id", assigned.ID().String())
	return nil
}
