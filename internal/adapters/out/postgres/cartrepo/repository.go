// Package cartrepo reads and clears user carts. The order engine never
// mutates cart lines; it snapshots them at checkout and empties the cart
// after the order commits.
package cartrepo

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItemDTO is one cart line in the database.
type CartItemDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
}

// TableName overrides GORM's default naming to use "cart_items".
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCartRepository implements ports.CartClient using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetCart returns the user's current cart lines.
func (r *GormCartRepository) GetCart(ctx context.Context, userID kernel.UUID) ([]ports.CartLine, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "user_id = ?", userID.Bytes()).Error; err != nil {
		return nil, err
	}

	lines := make([]ports.CartLine, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, ports.CartLine{
			ProductID: productID,
			Quantity:  dto.Quantity,
		})
	}

	return lines, nil
}

// ClearCart empties the user's cart. Clearing an already-empty cart is not
// an error.
func (r *GormCartRepository) ClearCart(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&CartItemDTO{}, "user_id = ?", userID.Bytes()).Error
}
