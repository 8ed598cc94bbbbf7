package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order one step along its lifecycle:
// confirmed, preparing, ready_for_pickup, out_for_delivery or delivered.
// Cancellation has its own command; it is not a target here.
type TransitionOrderCommand struct { //nolint:recvcheck // pointer receivers used for construction only
	orderID   kernel.UUID
	newStatus order.Status
	note      string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a validated transition command. The note
// is optional operator context recorded on the history entry.
func NewTransitionOrderCommand(orderID kernel.UUID, newStatus order.Status, note string) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return TransitionOrderCommand{}, err
	}
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c TransitionOrderCommand) NewStatus() order.Status { return c.newStatus }
func (c TransitionOrderCommand) Note() string            { return c.note }

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if newStatus == order.StatusCancelled || newStatus == order.StatusPlaced {
		return errs.NewValueIsInvalidError("newStatus")
	}
	c.newStatus = newStatus
	return nil
}
