package order

import (
	"errors"
	"fmt"

	"foodorder/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for every rejected status transition.
// Concrete rejections are reported as *InvalidTransitionError, which unwraps
// to this value.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status transition the state machine does
// not permit: a forward jump that skips an edge, any move out of a terminal
// status, or a transition from an unknown status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order. It implements a closed
// state machine; every status mutation in the system goes through
// Status.TransitionTo, never through ad hoc comparisons.
//
// State transitions:
//
//	placed -> confirmed -> preparing -> ready_for_pickup -> out_for_delivery -> delivered
//	   |          |            |               |                   |
//	   └──────────┴────────────┴───────────────┴───────────────────┴──> cancelled
//
// Forward movement follows the chain one edge at a time with no skipping.
// Cancellation is reachable from every non-terminal status. Delivered and
// cancelled are terminal: no further transition is permitted out of them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status. The zero value
	// helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPlaced is the initial status of every order. Orders stay placed
	// until a delivery partner is bound or payment confirms them.
	StatusPlaced

	// StatusConfirmed indicates the order was accepted: a partner was
	// assigned or the payment was verified.
	StatusConfirmed

	// StatusPreparing indicates the kitchen is working on the order.
	StatusPreparing

	// StatusReadyForPickup indicates the order awaits its delivery partner.
	StatusReadyForPickup

	// StatusOutForDelivery indicates the partner picked the order up.
	StatusOutForDelivery

	// StatusDelivered is a terminal status: the order reached the customer.
	StatusDelivered

	// StatusCancelled is a terminal status, reachable from every non-terminal
	// status.
	StatusCancelled
)

// forwardEdges is the closed list of permitted forward transitions.
// Cancellation is handled separately in TransitionTo.
func forwardEdges() map[Status]Status {
	return map[Status]Status{
		StatusPlaced:         StatusConfirmed,
		StatusConfirmed:      StatusPreparing,
		StatusPreparing:      StatusReadyForPickup,
		StatusReadyForPickup: StatusOutForDelivery,
		StatusOutForDelivery: StatusDelivered,
	}
}

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPlaced:         "placed",
		StatusConfirmed:      "confirmed",
		StatusPreparing:      "preparing",
		StatusReadyForPickup: "ready_for_pickup",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

// StatusFromString parses the wire/persistence representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the lowercase wire name of the status. Implements
// fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate reports whether the Status holds one of the defined lifecycle
// values. StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if s < StatusPlaced || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next, without performing the transition.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return forwardEdges()[s] == next
}

// TransitionTo validates and performs a transition, returning the new status.
// Returns *InvalidTransitionError when the edge is not permitted.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return StatusUnknown, NewInvalidTransitionError(s, next)
	}
	return next, nil
}
