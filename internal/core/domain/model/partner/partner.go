package partner

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrPartnerIsNotConstructed is returned when a DeliveryPartner instance
	// was not created through NewDeliveryPartner or RestoreDeliveryPartner.
	ErrPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner or RestoreDeliveryPartner")

	// ErrPartnerHasActiveDeliveries is returned when removing a partner that
	// still carries undelivered orders.
	ErrPartnerHasActiveDeliveries = errors.New("delivery partner has active deliveries")
)

// VehicleType is the partner's mode of transport.
type VehicleType string

const (
	VehicleBike    VehicleType = "bike"
	VehicleScooter VehicleType = "scooter"
	VehicleCar     VehicleType = "car"
	VehicleCycle   VehicleType = "cycle"
)

// Validate checks the vehicle type against the closed set.
func (v VehicleType) Validate() error {
	switch v {
	case VehicleBike, VehicleScooter, VehicleCar, VehicleCycle:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a valid vehicle type", string(v)))
}

// DeliveryPartner is the aggregate tracking a delivery partner's availability and
// assignment fairness state.
//
// lastAssignedAt is the sole fairness signal: when set, it reflects the most
// recent successful binding across all orders for this partner. The
// assignment scheduler refuses to re-bind a partner before the cooldown
// window has elapsed since that timestamp.
type DeliveryPartner struct {
	id          kernel.UUID
	name        string
	phone       string
	vehicleType VehicleType

	isAvailable       bool
	lastAssignedAt    *time.Time
	lastDeliveryAt    *time.Time
	currentDeliveries int
	totalDeliveries   int
	rating            float64

	// version is the optimistic-concurrency token guarding the
	// check-then-act of eligibility check followed by binding.
	version int

	isConstructed bool
}

// NewDeliveryPartner registers a new partner, available and with a clean
// assignment record.
func NewDeliveryPartner(id kernel.UUID, name, phone string, vehicleType VehicleType) (*DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}
	if err := vehicleType.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryPartner{
		id:            id,
		name:          name,
		phone:         phone,
		vehicleType:   vehicleType,
		isAvailable:   true,
		rating:        5.0,
		isConstructed: true,
	}, nil
}

// RestoreDeliveryPartner rebuilds a partner from persistence.
func RestoreDeliveryPartner(
	id kernel.UUID,
	name, phone string,
	vehicleType VehicleType,
	isAvailable bool,
	lastAssignedAt *time.Time,
	lastDeliveryAt *time.Time,
	currentDeliveries int,
	totalDeliveries int,
	rating float64,
	version int,
) (*DeliveryPartner, error) {
	if err := errors.Join(id.Validate(), vehicleType.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if currentDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("currentDeliveries",
			fmt.Errorf("%d is negative", currentDeliveries))
	}
	if rating < 1 || rating > 5 {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	return &DeliveryPartner{
		id:                id,
		name:              name,
		phone:             phone,
		vehicleType:       vehicleType,
		isAvailable:       isAvailable,
		lastAssignedAt:    lastAssignedAt,
		lastDeliveryAt:    lastDeliveryAt,
		currentDeliveries: currentDeliveries,
		totalDeliveries:   totalDeliveries,
		rating:            rating,
		version:           version,
		isConstructed:     true,
	}, nil
}

// Validate ensures the partner was built through a constructor.
func (p *DeliveryPartner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

func (p *DeliveryPartner) ID() kernel.UUID            { return p.id }
func (p *DeliveryPartner) Name() string               { return p.name }
func (p *DeliveryPartner) Phone() string              { return p.phone }
func (p *DeliveryPartner) VehicleType() VehicleType   { return p.vehicleType }
func (p *DeliveryPartner) IsAvailable() bool          { return p.isAvailable }
func (p *DeliveryPartner) LastAssignedAt() *time.Time { return p.lastAssignedAt }
func (p *DeliveryPartner) LastDeliveryAt() *time.Time { return p.lastDeliveryAt }
func (p *DeliveryPartner) CurrentDeliveries() int     { return p.currentDeliveries }
func (p *DeliveryPartner) TotalDeliveries() int       { return p.totalDeliveries }
func (p *DeliveryPartner) Rating() float64            { return p.rating }
func (p *DeliveryPartner) Version() int               { return p.version }

// IsEligible reports whether the partner can take a new assignment at the
// given instant: available, and either never assigned or past the cooldown
// window since the last assignment.
func (p *DeliveryPartner) IsEligible(now time.Time, cooldown time.Duration) bool {
	if !p.isAvailable {
		return false
	}
	if p.lastAssignedAt == nil {
		return true
	}
	return now.Sub(*p.lastAssignedAt) >= cooldown
}

// MarkAssigned records a successful binding: the fairness timestamp moves to
// now and the active delivery count grows. The eligibility re-check here is
// a guard only; the authoritative race protection is the conditional
// version-checked write in the repository.
func (p *DeliveryPartner) MarkAssigned(now time.Time, cooldown time.Duration) error {
	if !p.IsEligible(now, cooldown) {
		return errs.NewValueIsInvalidErrorWithCause("partner",
			fmt.Errorf("partner %s is not eligible for assignment", p.id))
	}
	assignedAt := now
	p.lastAssignedAt = &assignedAt
	p.currentDeliveries++
	return nil
}

// CompleteDelivery records a finished delivery: the active count drops (never
// below zero), the lifetime total grows and the last-delivery time is
// stamped.
func (p *DeliveryPartner) CompleteDelivery(now time.Time) {
	if p.currentDeliveries > 0 {
		p.currentDeliveries--
	}
	p.totalDeliveries++
	deliveredAt := now
	p.lastDeliveryAt = &deliveredAt
}

// ReleaseDelivery drops an active delivery without crediting it, used when
// the order is cancelled mid-delivery. Lifetime totals are untouched.
func (p *DeliveryPartner) ReleaseDelivery() {
	if p.currentDeliveries > 0 {
		p.currentDeliveries--
	}
}

// SetAvailability toggles whether the partner accepts new assignments.
func (p *DeliveryPartner) SetAvailability(available bool) {
	p.isAvailable = available
}

// CanBeRemoved reports whether the partner may be deleted from the registry.
// Partners with active deliveries must finish or hand them off first.
func (p *DeliveryPartner) CanBeRemoved() error {
	if p.currentDeliveries > 0 {
		return ErrPartnerHasActiveDeliveries
	}
	return nil
}
