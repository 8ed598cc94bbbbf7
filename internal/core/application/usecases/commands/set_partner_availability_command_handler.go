package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/partner"
)

// SetPartnerAvailabilityCommandHandler toggles a partner's availability
// flag. The write is version-conditional like every partner mutation, so a
// toggle never tramples a concurrent assignment.
type SetPartnerAvailabilityCommandHandler struct {
	uowFactory PartnerUoWFactory
	logger     *slog.Logger
}

// NewSetPartnerAvailabilityCommandHandler creates a handler for availability
// toggles.
func NewSetPartnerAvailabilityCommandHandler(uowFactory PartnerUoWFactory, logger *slog.Logger) SetPartnerAvailabilityCommandHandler {
	return SetPartnerAvailabilityCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "set_partner_availability"),
	}
}

// Handle applies the availability change and returns the updated partner.
func (h SetPartnerAvailabilityCommandHandler) Handle(
	ctx context.Context,
	command SetPartnerAvailabilityCommand,
) (*partner.DeliveryPartner, error) {
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

	tracked, err := uow.PartnerRepository().Get(ctx, command.PartnerID())
	if err != nil {
		return nil, err
	}

	tracked.SetAvailability(command.Available())
	if err = uow.PartnerRepository().Update(ctx, tracked); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "partner availability updated",
		"partner_id", tracked.ID().String(),
		"available", tracked.IsAvailable())

	return tracked, nil
}
