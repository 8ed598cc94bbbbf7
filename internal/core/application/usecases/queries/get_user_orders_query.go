package queries

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

const maxUserOrdersPageSize = 100

// GetUserOrdersQuery retrieves a user's order history, newest first, paged.
type GetUserOrdersQuery struct {
	userID kernel.UUID
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a paged order-history query. Limit must be
// within (0, 100]; offset must not be negative.
func NewGetUserOrdersQuery(userID kernel.UUID, limit, offset int) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, err
	}
	if limit <= 0 || limit > maxUserOrdersPageSize {
		return GetUserOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxUserOrdersPageSize)
	}
	if offset < 0 {
		return GetUserOrdersQuery{}, errs.NewValueIsInvalidError("offset")
	}

	return GetUserOrdersQuery{
		userID: userID,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

func (q GetUserOrdersQuery) UserID() kernel.UUID { return q.userID }
func (q GetUserOrdersQuery) Limit() int          { return q.limit }
func (q GetUserOrdersQuery) Offset() int         { return q.offset }

// GetUserOrdersQueryResponse is one row of a user's order history.
type GetUserOrdersQueryResponse struct {
	ID            kernel.UUID
	Status        string
	PaymentMethod string
	Total         int64
	CreatedAt     time.Time
}
