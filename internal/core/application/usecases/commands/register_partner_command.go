package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

// RegisterPartnerCommand adds a delivery partner to the registry.
type RegisterPartnerCommand struct { //nolint:recvcheck // pointer receivers used for construction only
	partnerID   kernel.UUID
	name        string
	phone       string
	vehicleType partner.VehicleType

	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand creates a validated registration command.
func NewRegisterPartnerCommand(
	partnerID kernel.UUID,
	name string,
	phone string,
	vehicleType partner.VehicleType,
) (RegisterPartnerCommand, error) {
	cmd := RegisterPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setContact(name, phone),
		cmd.setVehicleType(vehicleType),
	); err != nil {
		return RegisterPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

func (c RegisterPartnerCommand) PartnerID() kernel.UUID           { return c.partnerID }
func (c RegisterPartnerCommand) Name() string                     { return c.name }
func (c RegisterPartnerCommand) Phone() string                    { return c.phone }
func (c RegisterPartnerCommand) VehicleType() partner.VehicleType { return c.vehicleType }

func (c *RegisterPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}

func (c *RegisterPartnerCommand) setContact(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.name = name
	c.phone = phone
	return nil
}

func (c *RegisterPartnerCommand) setVehicleType(vehicleType partner.VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	c.vehicleType = vehicleType
	return nil
}
