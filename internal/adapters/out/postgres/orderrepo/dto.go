// Package orderrepo persists order aggregates. The scalar lifecycle fields
// live in columns so the read side and the scheduler can filter on them; the
// frozen items, the address and the status history are JSONB documents,
// since they are only ever read and written whole.
package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`

	Status           string `gorm:"index"`
	PaymentMethod    string
	PaymentStatus    string
	ProviderOrderRef string `gorm:"index"`
	PaymentRef       string

	Items   []ItemDTO         `gorm:"serializer:json;type:jsonb"`
	Address AddressDTO        `gorm:"serializer:json;type:jsonb"`
	History []HistoryEntryDTO `gorm:"serializer:json;type:jsonb"`

	Subtotal    int64
	DeliveryFee int64
	Tax         int64
	Total       int64

	PartnerID         *uuid.UUID `gorm:"type:uuid;index"`
	PartnerAssignedAt *time.Time
	DeliveredAt       *time.Time
	CancelReason      string

	CreatedAt time.Time
	Version   int
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one frozen order line inside the items document.
type ItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// AddressDTO is the delivery address document.
type AddressDTO struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
}

// HistoryEntryDTO is one record of the append-only status history document.
type HistoryEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.PartnerID(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	history := make([]HistoryEntryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryEntryDTO{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
		})
	}

	address := aggregate.Address()
	pricing := aggregate.Pricing()

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		UserID:           aggregate.UserID().Bytes(),
		Status:           aggregate.Status().String(),
		PaymentMethod:    aggregate.PaymentMethod().String(),
		PaymentStatus:    aggregate.PaymentStatus().String(),
		ProviderOrderRef: aggregate.ProviderOrderRef(),
		PaymentRef:       aggregate.PaymentRef(),
		Items:            items,
		Address: AddressDTO{
			FullName:   address.FullName(),
			Phone:      address.Phone(),
			Email:      address.Email(),
			Street:     address.Street(),
			City:       address.City(),
			PostalCode: address.PostalCode(),
		},
		History:           history,
		Subtotal:          pricing.Subtotal().Amount(),
		DeliveryFee:       pricing.DeliveryFee().Amount(),
		Tax:               pricing.Tax().Amount(),
		Total:             pricing.Total().Amount(),
		PartnerID:         partnerID,
		PartnerAssignedAt: aggregate.PartnerAssignedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CancelReason:      aggregate.CancelReason(),
		CreatedAt:         aggregate.CreatedAt(),
		Version:           aggregate.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}
	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.Address.FullName,
		dto.Address.Phone,
		dto.Address.Email,
		dto.Address.Street,
		dto.Address.City,
		dto.Address.PostalCode,
	)
	if err != nil {
		return nil, err
	}

	pricing, err := pricingToDomain(dto)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	return order.RestoreOrder(
		id,
		userID,
		items,
		address,
		pricing,
		paymentMethod,
		paymentStatus,
		dto.ProviderOrderRef,
		dto.PaymentRef,
		status,
		history,
		partnerID,
		dto.PartnerAssignedAt,
		dto.DeliveredAt,
		dto.CancelReason,
		dto.CreatedAt,
		dto.Version,
	)
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromString(dto.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(productID, dto.Name, dto.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func historyToDomain(dtos []HistoryEntryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}
		entry, err := order.NewHistoryEntry(status, dto.Timestamp, dto.Note)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, nil
}

func pricingToDomain(dto OrderDTO) (order.Pricing, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.Pricing{}, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return order.Pricing{}, err
	}
	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return order.Pricing{}, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return order.Pricing{}, err
	}
	return order.RestorePricing(subtotal, deliveryFee, tax, total)
}
