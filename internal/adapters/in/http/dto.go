package http

import (
	"time"

	"foodorder/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the checkout request body. Lines carry product
// identifiers and quantities only; prices are resolved server-side.
type CreateOrderRequest struct {
	UserID        string             `json:"user_id"`
	Items         []OrderLineRequest `json:"items"`
	Address       AddressRequest     `json:"address"`
	PaymentMethod string             `json:"payment_method"`
}

// OrderLineRequest is one requested cart line.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddressRequest is the delivery address in the checkout request.
type AddressRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// TransitionOrderRequest moves an order to a new status.
type TransitionOrderRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// CancelOrderRequest cancels an order.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// VerifyPaymentRequest is the payment provider's success callback.
type VerifyPaymentRequest struct {
	ProviderOrderRef string `json:"provider_order_ref"`
	PaymentRef       string `json:"payment_ref"`
	Signature        string `json:"signature"`
}

// FailPaymentRequest is the payment provider's failure callback.
type FailPaymentRequest struct {
	ProviderOrderRef string `json:"provider_order_ref"`
	Reason           string `json:"reason"`
}

// RegisterPartnerRequest adds a delivery partner to the registry.
type RegisterPartnerRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicle_type"`
}

// SetAvailabilityRequest toggles a partner's availability.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// OrderResponse is the order view returned by write endpoints.
type OrderResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status"`
	Subtotal      int64      `json:"subtotal"`
	DeliveryFee   int64      `json:"delivery_fee"`
	Tax           int64      `json:"tax"`
	Total         int64      `json:"total"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// OrderTrackingResponse is the full tracking view of one order.
type OrderTrackingResponse struct {
	ID            string                      `json:"id"`
	UserID        string                      `json:"user_id"`
	Status        string                      `json:"status"`
	PaymentMethod string                      `json:"payment_method"`
	PaymentStatus string                      `json:"payment_status"`
	Items         []queries.OrderItemView     `json:"items"`
	History       []queries.HistoryEntryView  `json:"history"`
	Subtotal      int64                       `json:"subtotal"`
	DeliveryFee   int64                       `json:"delivery_fee"`
	Tax           int64                       `json:"tax"`
	Total         int64                       `json:"total"`
	Partner       *queries.PartnerContactView `json:"partner,omitempty"`
	CancelReason  string                      `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	DeliveredAt   *time.Time                  `json:"delivered_at,omitempty"`
	CanCancel     bool                        `json:"can_cancel"`
}

// OrderSummaryResponse is one row of a user's order history.
type OrderSummaryResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Total         int64     `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// PartnerResponse is the partner view returned by registry endpoints.
type PartnerResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	VehicleType       string     `json:"vehicle_type"`
	IsAvailable       bool       `json:"is_available"`
	CurrentDeliveries int        `json:"current_deliveries"`
	TotalDeliveries   int        `json:"total_deliveries"`
	Rating            float64    `json:"rating"`
	LastAssignedAt    *time.Time `json:"last_assigned_at,omitempty"`
}
