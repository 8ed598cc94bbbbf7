package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrSetPartnerAvailabilityCommandIsNotConstructed = errors.New(
	"SetPartnerAvailabilityCommand must be created via NewSetPartnerAvailabilityCommand constructor",
)

// SetPartnerAvailabilityCommand toggles whether a partner accepts new
// assignments. Active deliveries are unaffected.
type SetPartnerAvailabilityCommand struct { //nolint:recvcheck // pointer receivers used for construction only
	partnerID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetPartnerAvailabilityCommand creates a validated availability command.
func NewSetPartnerAvailabilityCommand(partnerID kernel.UUID, available bool) (SetPartnerAvailabilityCommand, error) {
	cmd := SetPartnerAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return SetPartnerAvailabilityCommand{}, err
	}
	cmd.available = available

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetPartnerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerAvailabilityCommandIsNotConstructed)
}

func (c SetPartnerAvailabilityCommand) PartnerID() kernel.UUID { return c.partnerID }
func (c SetPartnerAvailabilityCommand) Available() bool        { return c.available }

func (c *SetPartnerAvailabilityCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}
