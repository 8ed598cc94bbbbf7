package order

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrEmptyCart is returned when an order is created from an empty item
	// list.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrAlreadyTerminal is the sentinel for operations rejected because the
	// order already reached delivered or cancelled.
	ErrAlreadyTerminal = errors.New("order is already in a terminal status")
)

// AlreadyTerminalError reports an operation attempted on an order that has
// reached a terminal status.
type AlreadyTerminalError struct {
	Status Status
}

func NewAlreadyTerminalError(status Status) *AlreadyTerminalError {
	return &AlreadyTerminalError{Status: status}
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("order is already in a terminal status: %s", e.Status)
}

func (e *AlreadyTerminalError) Unwrap() error {
	return ErrAlreadyTerminal
}

// Order is the aggregate root of the ordering domain. It is created once from
// a priced cart and from then on mutated only through its own methods, which
// route every status change through the Status state machine.
//
// Invariants maintained by the aggregate:
//   - items are non-empty and their prices are frozen at creation time
//   - statusHistory is append-only, chronologically non-decreasing, and its
//     last entry's status always equals the current status
//   - once the status is terminal (delivered, cancelled), no further
//     transition is permitted
//   - deliveredAt is set exactly when the order transitions to delivered
type Order struct {
	id     kernel.UUID
	userID kernel.UUID

	items   []Item
	pricing Pricing
	address Address

	paymentMethod    PaymentMethod
	paymentStatus    PaymentStatus
	providerOrderRef string
	paymentRef       string

	status  Status
	history []HistoryEntry

	partnerID         *kernel.UUID
	partnerAssignedAt *time.Time
	deliveredAt       *time.Time
	cancelReason      string

	createdAt time.Time

	// version is the optimistic-concurrency token; it is read by the
	// persistence layer and bumped on every successful write.
	version int

	isConstructed bool
}

// NewOrder creates a placed order from frozen items and a computed pricing
// snapshot. The history starts with a single "placed" entry stamped at now.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []Item,
	address Address,
	paymentMethod PaymentMethod,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := paymentMethod.Validate(); err != nil {
		return nil, err
	}

	placed, err := NewHistoryEntry(StatusPlaced, now, "Order placed successfully")
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		userID:        userID,
		items:         append([]Item(nil), items...),
		pricing:       pricing,
		address:       address,
		paymentMethod: paymentMethod,
		paymentStatus: PaymentStatusPending,
		status:        StatusPlaced,
		history:       []HistoryEntry{placed},
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order from persistence without re-running creation
// rules, but still refusing aggregates that violate structural invariants.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []Item,
	address Address,
	pricing Pricing,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	providerOrderRef string,
	paymentRef string,
	status Status,
	history []HistoryEntry,
	partnerID *kernel.UUID,
	partnerAssignedAt *time.Time,
	deliveredAt *time.Time,
	cancelReason string,
	createdAt time.Time,
	version int,
) (*Order, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), status.Validate(),
		paymentMethod.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("order %s has no status history", id)
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, fmt.Errorf("order %s history tail %s does not match status %s", id, last, status)
	}

	return &Order{
		id:                id,
		userID:            userID,
		items:             append([]Item(nil), items...),
		pricing:           pricing,
		address:           address,
		paymentMethod:     paymentMethod,
		paymentStatus:     paymentStatus,
		providerOrderRef:  providerOrderRef,
		paymentRef:        paymentRef,
		status:            status,
		history:           append([]HistoryEntry(nil), history...),
		partnerID:         partnerID,
		partnerAssignedAt: partnerAssignedAt,
		deliveredAt:       deliveredAt,
		cancelReason:      cancelReason,
		createdAt:         createdAt,
		version:           version,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order was built through a constructor. Called by
// repositories before persisting.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID               { return o.id }
func (o *Order) UserID() kernel.UUID           { return o.userID }
func (o *Order) Pricing() Pricing              { return o.pricing }
func (o *Order) Address() Address              { return o.address }
func (o *Order) PaymentMethod() PaymentMethod  { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus  { return o.paymentStatus }
func (o *Order) ProviderOrderRef() string      { return o.providerOrderRef }
func (o *Order) PaymentRef() string            { return o.paymentRef }
func (o *Order) Status() Status                { return o.status }
func (o *Order) PartnerID() *kernel.UUID       { return o.partnerID }
func (o *Order) PartnerAssignedAt() *time.Time { return o.partnerAssignedAt }
func (o *Order) DeliveredAt() *time.Time       { return o.deliveredAt }
func (o *Order) CancelReason() string          { return o.cancelReason }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) Version() int                  { return o.version }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// History returns a copy of the append-only status log.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// AttachPaymentIntent stores the provider's order reference created at
// checkout. Only meaningful for online payments.
func (o *Order) AttachPaymentIntent(providerOrderRef string) {
	o.providerOrderRef = providerOrderRef
}

// TransitionTo moves the order to newStatus through the state machine,
// appending a history entry stamped at now. Returns *InvalidTransitionError
// if the edge is not permitted; the order is left unchanged on failure.
func (o *Order) TransitionTo(newStatus Status, note string, now time.Time) error {
	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	// History timestamps must never regress even under clock skew between
	// service instances.
	if last := o.history[len(o.history)-1].Timestamp(); now.Before(last) {
		now = last
	}

	entry, err := NewHistoryEntry(next, now, note)
	if err != nil {
		return err
	}

	o.status = next
	o.history = append(o.history, entry)

	if next == StatusDelivered {
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	}

	return nil
}

// Cancel transitions the order to cancelled with the given reason. Returns
// *AlreadyTerminalError when the order is already delivered or cancelled.
func (o *Order) Cancel(reason string, now time.Time) error {
	if o.status.IsTerminal() {
		return NewAlreadyTerminalError(o.status)
	}
	if reason == "" {
		reason = "Order cancelled"
	}
	if err := o.TransitionTo(StatusCancelled, reason, now); err != nil {
		return err
	}
	o.cancelReason = reason
	return nil
}

// AssignPartner binds a delivery partner to a placed order and confirms it.
// Orders that already left the placed status cannot be bound.
func (o *Order) AssignPartner(partnerID kernel.UUID, partnerName string, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if o.status != StatusPlaced {
		return NewInvalidTransitionError(o.status, StatusConfirmed)
	}

	note := fmt.Sprintf("Order confirmed and assigned to delivery partner: %s", partnerName)
	if err := o.TransitionTo(StatusConfirmed, note, now); err != nil {
		return err
	}

	assignedAt := now
	o.partnerID = &partnerID
	o.partnerAssignedAt = &assignedAt
	return nil
}

// CompletePayment applies a verified payment confirmation: the payment status
// becomes completed and the payment reference is stored. A still-placed order
// advances to confirmed; an order the scheduler already confirmed (or moved
// further) keeps its delivery status. Terminal orders reject the operation so
// a late confirmation can never resurrect a cancelled order.
func (o *Order) CompletePayment(paymentRef string, now time.Time) error {
	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.status, StatusConfirmed)
	}

	if o.status == StatusPlaced {
		if err := o.TransitionTo(StatusConfirmed, "Payment verified, order confirmed", now); err != nil {
			return err
		}
	}

	o.paymentStatus = PaymentStatusCompleted
	o.paymentRef = paymentRef
	return nil
}

// FailPayment marks the payment as failed and cancels the order.
func (o *Order) FailPayment(reason string, now time.Time) error {
	if reason == "" {
		reason = "Payment failed"
	}
	if err := o.Cancel(reason, now); err != nil {
		return err
	}
	o.paymentStatus = PaymentStatusFailed
	return nil
}
