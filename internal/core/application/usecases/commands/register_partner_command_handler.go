package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/partner"
)

// RegisterPartnerCommandHandler adds a new delivery partner to the registry.
type RegisterPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	logger     *slog.Logger
}

// NewRegisterPartnerCommandHandler creates a handler for partner
// registration.
func NewRegisterPartnerCommandHandler(uowFactory PartnerUoWFactory, logger *slog.Logger) RegisterPartnerCommandHandler {
	return RegisterPartnerCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "register_partner"),
	}
}

// Handle registers the partner and returns the created aggregate.
func (h RegisterPartnerCommandHandler) Handle(ctx context.Context, command RegisterPartnerCommand) (*partner.DeliveryPartner, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	newPartner, err := partner.NewDeliveryPartner(
		command.PartnerID(),
		command.Name(),
		command.Phone(),
		command.VehicleType(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, newPartner); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "delivery partner registered",
		"partner_id", newPartner.ID().String(),
		"vehicle_type", string(newPartner.VehicleType()))

	return newPartner, nil
}
