package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrRemovePartnerCommandIsNotConstructed = errors.New(
	"RemovePartnerCommand must be created via NewRemovePartnerCommand constructor",
)

// RemovePartnerCommand removes a delivery partner from the registry.
// Partners with active deliveries cannot be removed.
type RemovePartnerCommand struct { //nolint:recvcheck // pointer receivers used for construction only
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemovePartnerCommand creates a validated removal command.
func NewRemovePartnerCommand(partnerID kernel.UUID) (RemovePartnerCommand, error) {
	cmd := RemovePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return RemovePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemovePartnerCommand) Validate() error {
	return c.guard.Validate(ErrRemovePartnerCommandIsNotConstructed)
}

func (c RemovePartnerCommand) PartnerID() kernel.UUID { return c.partnerID }

func (c *RemovePartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}
