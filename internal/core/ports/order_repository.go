// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the narrow interfaces
// of external collaborators (catalog, cart, payment provider, notifications).
package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
//
// Update is a conditional write: it succeeds only when the stored row still
// carries the version the aggregate was loaded with, and bumps the version on
// success. A lost race surfaces as errs.ErrVersionConflict, which is how
// concurrent transitions on the same order serialize across service
// instances.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, conditional on the
	// version observed at load time. Returns errs.ErrVersionConflict when
	// another writer got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByProviderOrderRef retrieves the order carrying the given payment
	// provider order reference. Used by payment reconciliation.
	GetByProviderOrderRef(ctx context.Context, providerOrderRef string) (*order.Order, error)
}
