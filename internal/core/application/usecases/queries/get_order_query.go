// Package queries contains the read side: optimized read models fetched with
// direct SQL, bypassing the aggregates and the unit of work.
package queries

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the tracking view of a single order: status,
// frozen items, pricing snapshot, status history and the assigned partner's
// contact details when one is bound.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's tracking view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// OrderItemView is one frozen order line in the read model.
type OrderItemView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// HistoryEntryView is one status-history record in the read model.
type HistoryEntryView struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// PartnerContactView is the assigned partner's contact slice of the tracking
// view.
type PartnerContactView struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicle_type"`
}

// GetOrderQueryResponse is the tracking view of an order.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	Status        string
	PaymentMethod string
	PaymentStatus string
	Items         []OrderItemView
	History       []HistoryEntryView
	Subtotal      int64
	DeliveryFee   int64
	Tax           int64
	Total         int64
	Partner       *PartnerContactView
	CancelReason  string
	CreatedAt     time.Time
	DeliveredAt   *time.Time

	// CanCancel reports whether a cancellation request would currently be
	// accepted, so clients can render the cancel action without guessing.
	CanCancel bool
}
