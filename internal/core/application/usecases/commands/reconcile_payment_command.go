package commands

import (
	"errors"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand carries a payment provider callback: the provider's
// order reference, the payment reference and the callback signature to
// verify.
type ReconcilePaymentCommand struct { //nolint:recvcheck // pointer receivers used for construction only
	providerOrderRef string
	paymentRef       string
	signature        string

	guard guard.ConstructorGuard
}

// NewReconcilePaymentCommand creates a validated reconciliation command.
func NewReconcilePaymentCommand(providerOrderRef, paymentRef, signature string) (ReconcilePaymentCommand, error) {
	cmd := ReconcilePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequired(&cmd.providerOrderRef, providerOrderRef, "providerOrderRef"),
		cmd.setRequired(&cmd.paymentRef, paymentRef, "paymentRef"),
		cmd.setRequired(&cmd.signature, signature, "signature"),
	); err != nil {
		return ReconcilePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) ProviderOrderRef() string { return c.providerOrderRef }
func (c ReconcilePaymentCommand) PaymentRef() string       { return c.paymentRef }
func (c ReconcilePaymentCommand) Signature() string        { return c.signature }

func (c *ReconcilePaymentCommand) setRequired(target *string, value, name string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*target = value
	return nil
}
