package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler builds the tracking view of one order with a single
// joined read. Uses direct SQL for read performance; the aggregate is never
// materialized.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order tracking queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the order
// does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.user_id,
			o.status,
			o.payment_method,
			o.payment_status,
			o.items,
			o.history,
			o.subtotal,
			o.delivery_fee,
			o.tax,
			o.total,
			o.cancel_reason,
			o.created_at,
			o.delivered_at,
			p.name,
			p.phone,
			p.vehicle_type
		FROM orders o
		LEFT JOIN delivery_partners p ON p.id = o.partner_id
		WHERE o.id = ?
	`, query.OrderID().String()).Row()

	var (
		resp         GetOrderQueryResponse
		id, userID   uuid.UUID
		itemsRaw     []byte
		historyRaw   []byte
		deliveredAt  sql.NullTime
		partnerName  sql.NullString
		partnerPhone sql.NullString
		vehicleType  sql.NullString
	)

	err := row.Scan(
		&id,
		&userID,
		&resp.Status,
		&resp.PaymentMethod,
		&resp.PaymentStatus,
		&itemsRaw,
		&historyRaw,
		&resp.Subtotal,
		&resp.DeliveryFee,
		&resp.Tax,
		&resp.Total,
		&resp.CancelReason,
		&resp.CreatedAt,
		&deliveredAt,
		&partnerName,
		&partnerPhone,
		&vehicleType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.UserID, err = kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = json.Unmarshal(itemsRaw, &resp.Items); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(historyRaw, &resp.History); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if deliveredAt.Valid {
		t := deliveredAt.Time
		resp.DeliveredAt = &t
	}
	if partnerName.Valid {
		resp.Partner = &PartnerContactView{
			Name:        partnerName.String,
			Phone:       partnerPhone.String,
			VehicleType: vehicleType.String,
		}
	}

	resp.CanCancel = resp.Status != "delivered" && resp.Status != "cancelled"

	return resp, nil
}
