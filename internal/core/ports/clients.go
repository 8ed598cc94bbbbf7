package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
)

// CatalogProduct is the slice of a catalog entry the order engine needs:
// the authoritative price and stock flag at the instant of checkout.
type CatalogProduct struct {
	ID      kernel.UUID
	Name    string
	Price   kernel.Money
	InStock bool
}

// CatalogClient resolves product identifiers against the catalog. Checkout
// never trusts client-supplied prices; every line is re-priced through this
// lookup.
type CatalogClient interface {
	// GetProduct returns the current catalog entry, or
	// errs.ErrObjectNotFound when the product does not exist.
	GetProduct(ctx context.Context, id kernel.UUID) (CatalogProduct, error)
}

// CartLine is one entry of a user's cart as the cart store reports it.
type CartLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CartClient is the narrow contract to the cart store.
type CartClient interface {
	// GetCart returns the user's current cart lines.
	GetCart(ctx context.Context, userID kernel.UUID) ([]CartLine, error)

	// ClearCart empties the user's cart after a successful checkout. A
	// failure here is logged as a reconciliation warning by the caller; the
	// created order stands either way.
	ClearCart(ctx context.Context, userID kernel.UUID) error
}

// PaymentProvider creates payment intents with the external provider.
// Callback verification is NOT delegated here; signatures are checked
// locally by the domain's verifier.
type PaymentProvider interface {
	// CreatePaymentIntent registers the amount with the provider and returns
	// the provider's order reference to carry on the order.
	CreatePaymentIntent(ctx context.Context, amount kernel.Money, currency string) (string, error)
}

// NotificationEvent is a fire-and-forget event for the notification
// pipeline.
type NotificationEvent struct {
	Type    string
	OrderID kernel.UUID
	UserID  kernel.UUID
	Note    string
}

// Notification event types emitted by the order engine.
const (
	EventOrderPlaced      = "order_placed"
	EventOrderStatus      = "order_status_changed"
	EventPartnerAssigned  = "partner_assigned"
	EventPaymentCompleted = "payment_completed"
	EventPaymentFailed    = "payment_failed"
)

// NotificationDispatcher delivers events to users. Dispatch is
// fire-and-forget: the core never waits on or fails because of it.
type NotificationDispatcher interface {
	Notify(ctx context.Context, event NotificationEvent)
}
