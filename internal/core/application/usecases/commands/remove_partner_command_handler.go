package commands

import (
	"context"
	"log/slog"
)

// RemovePartnerCommandHandler removes a partner from the registry after the
// aggregate confirms no deliveries are in flight.
type RemovePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	logger     *slog.Logger
}

// NewRemovePartnerCommandHandler creates a handler for partner removal.
func NewRemovePartnerCommandHandler(uowFactory PartnerUoWFactory, logger *slog.Logger) RemovePartnerCommandHandler {
	return RemovePartnerCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "remove_partner"),
	}
}

// Handle removes the partner. Returns partner.ErrPartnerHasActiveDeliveries
// when removal is blocked by deliveries in flight.
func (h RemovePartnerCommandHandler) Handle(ctx context.Context, command RemovePartnerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tracked, err := uow.PartnerRepository().Get(ctx, command.PartnerID())
	if err != nil {
		return err
	}

	if err = tracked.CanBeRemoved(); err != nil {
		return err
	}

	if err = uow.PartnerRepository().Delete(ctx, tracked.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "delivery partner removed",
		"partner_id", command.PartnerID().String())

	return nil
}
