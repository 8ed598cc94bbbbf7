package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetStalePlacedOrdersQueryHandler counts orders whose assignment is
// overdue.
type GetStalePlacedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStalePlacedOrdersQueryHandler creates a handler for staleness
// queries.
func NewGetStalePlacedOrdersQueryHandler(db *gorm.DB) GetStalePlacedOrdersQueryHandler {
	return GetStalePlacedOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the stale order count.
func (h GetStalePlacedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalePlacedOrdersQuery,
) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-query.OlderThan())

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE status = 'placed' AND created_at < ?
	`, cutoff).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
