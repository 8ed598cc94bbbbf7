// Package productrepo reads the product catalog. Checkout only needs the
// authoritative price and stock flag, so this adapter stays read-only;
// catalog management belongs to another service writing the same table.
package productrepo

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDTO is the database representation of a catalog entry.
type ProductDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string
	Price   int64
	InStock bool
}

// TableName overrides GORM's default naming to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// GormProductRepository implements ports.CatalogClient using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetProduct returns the current catalog entry for the given product.
func (r *GormProductRepository) GetProduct(ctx context.Context, id kernel.UUID) (ports.CatalogProduct, error) {
	if err := id.Validate(); err != nil {
		return ports.CatalogProduct{}, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogProduct{}, errs.NewObjectNotFoundError("product", id.String())
		}
		return ports.CatalogProduct{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.CatalogProduct{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.CatalogProduct{}, err
	}

	return ports.CatalogProduct{
		ID:      productID,
		Name:    dto.Name,
		Price:   price,
		InStock: dto.InStock,
	}, nil
}
