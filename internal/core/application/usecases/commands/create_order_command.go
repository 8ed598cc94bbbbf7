package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout: a user's cart snapshot to be
// converted into an immutable, priced order.
//
// The cart lines carry product identifiers and quantities only. Prices are
// deliberately absent; they are resolved against the catalog by the handler
// and frozen on the order.
type CreateOrderCommand struct { //nolint:recvcheck // pointer receivers used for construction only
	orderID       kernel.UUID
	userID        kernel.UUID
	lines         []ports.CartLine
	address       order.Address
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated checkout command. Returns
// order.ErrEmptyCart for an empty line list; line quantities must be
// positive.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	lines []ports.CartLine,
	address order.Address,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, userID),
		cmd.setLines(lines),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.address = address

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) UserID() kernel.UUID  { return c.userID }
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Lines returns a copy of the cart snapshot.
func (c CreateOrderCommand) Lines() []ports.CartLine {
	return append([]ports.CartLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setIDs(orderID, userID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []ports.CartLine) error {
	if len(lines) == 0 {
		return order.ErrEmptyCart
	}
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("quantity")
		}
	}
	c.lines = append([]ports.CartLine(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
