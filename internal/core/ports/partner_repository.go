package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"
)

// PartnerRepository is the persistence contract for delivery partners.
//
// Update carries the same optimistic-concurrency discipline as the order
// repository. Binding a partner is therefore a compare-and-set: the
// eligibility check and the mutation are tied together by the version
// observed at read time, so two orders can never bind the same partner
// inside one cooldown window.
type PartnerRepository interface {
	// Add persists a new delivery partner.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing partner, conditional on the
	// version observed at load time. Returns errs.ErrVersionConflict when
	// another writer got there first.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetAllAvailable retrieves all partners currently accepting
	// assignments. Cooldown filtering happens in the domain, not here.
	GetAllAvailable(ctx context.Context) ([]*partner.DeliveryPartner, error)

	// Delete removes a partner from the registry.
	Delete(ctx context.Context, id kernel.UUID) error
}
