package queries

import (
	"context"
	"database/sql"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllPartnersQueryHandler retrieves all delivery partners from the
// database. Uses direct SQL for read performance.
type GetAllPartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllPartnersQueryHandler creates a handler for partner registry
// queries.
func NewGetAllPartnersQueryHandler(db *gorm.DB) GetAllPartnersQueryHandler {
	return GetAllPartnersQueryHandler{db: db}
}

// Handle executes the query. Returns the registry sorted by name.
func (h GetAllPartnersQueryHandler) Handle(
	ctx context.Context,
	query GetAllPartnersQuery,
) ([]GetAllPartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]GetAllPartnersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			vehicle_type,
			is_available,
			current_deliveries,
			total_deliveries,
			rating,
			last_assigned_at
		FROM delivery_partners
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllPartnersQueryResponse
		var id uuid.UUID
		var lastAssignedAt sql.NullTime

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Phone,
			&resp.VehicleType,
			&resp.IsAvailable,
			&resp.CurrentDeliveries,
			&resp.TotalDeliveries,
			&resp.Rating,
			&lastAssignedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if lastAssignedAt.Valid {
			t := lastAssignedAt.Time
			resp.LastAssignedAt = &t
		}
		partners = append(partners, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
