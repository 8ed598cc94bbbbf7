// Package partnerrepo persists delivery-partner aggregates.
package partnerrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO is the database representation of a delivery partner.
type PartnerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"index"`
	Phone       string
	VehicleType string

	IsAvailable       bool `gorm:"index"`
	LastAssignedAt    *time.Time
	LastDeliveryAt    *time.Time
	CurrentDeliveries int
	TotalDeliveries   int
	Rating            float64

	Version int
}

// TableName overrides GORM's default naming to use "delivery_partners".
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	return PartnerDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Phone:             aggregate.Phone(),
		VehicleType:       string(aggregate.VehicleType()),
		IsAvailable:       aggregate.IsAvailable(),
		LastAssignedAt:    aggregate.LastAssignedAt(),
		LastDeliveryAt:    aggregate.LastDeliveryAt(),
		CurrentDeliveries: aggregate.CurrentDeliveries(),
		TotalDeliveries:   aggregate.TotalDeliveries(),
		Rating:            aggregate.Rating(),
		Version:           aggregate.Version(),
	}
}

func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return partner.RestoreDeliveryPartner(
		id,
		dto.Name,
		dto.Phone,
		partner.VehicleType(dto.VehicleType),
		dto.IsAvailable,
		dto.LastAssignedAt,
		dto.LastDeliveryAt,
		dto.CurrentDeliveries,
		dto.TotalDeliveries,
		dto.Rating,
		dto.Version,
	)
}
