package commands

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand triggers one sweep of the assignment schedule: every
// due task is loaded and an assignment attempt is made for its order. The
// command itself is parameterless; the durable task table is the work queue.
type AssignPartnerCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPartnerCommand creates a command to trigger an assignment sweep.
func NewAssignPartnerCommand() AssignPartnerCommand {
	return AssignPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}
