package commands

import (
	"errors"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrFailPaymentCommandIsNotConstructed = errors.New(
	"FailPaymentCommand must be created via NewFailPaymentCommand constructor",
)

// FailPaymentCommand records a failed or abandoned online payment reported
// for a provider order reference. The referenced order is cancelled.
type FailPaymentCommand struct {
	providerOrderRef string
	reason           string

	guard guard.ConstructorGuard
}

// NewFailPaymentCommand creates a validated payment-failure command. The
// reason is optional.
func NewFailPaymentCommand(providerOrderRef, reason string) (FailPaymentCommand, error) {
	cmd := FailPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if providerOrderRef == "" {
		return FailPaymentCommand{}, errs.NewValueIsRequiredError("providerOrderRef")
	}
	cmd.providerOrderRef = providerOrderRef
	cmd.reason = reason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailPaymentCommand) Validate() error {
	return c.guard.Validate(ErrFailPaymentCommandIsNotConstructed)
}

func (c FailPaymentCommand) ProviderOrderRef() string { return c.providerOrderRef }
func (c FailPaymentCommand) Reason() string           { return c.reason }
