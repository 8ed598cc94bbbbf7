package queries

import (
	"errors"
	"time"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrGetStalePlacedOrdersQueryIsNotConstructed = errors.New(
	"GetStalePlacedOrdersQuery must be created via NewGetStalePlacedOrdersQuery constructor",
)

// GetStalePlacedOrdersQuery counts orders stuck in placed status for longer
// than the given age. Feeds the staleness gauge; a non-zero count past the
// assignment delay plus a retry cycle means the scheduler is behind.
type GetStalePlacedOrdersQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStalePlacedOrdersQuery creates a staleness query. The age must be
// positive.
func NewGetStalePlacedOrdersQuery(olderThan time.Duration) (GetStalePlacedOrdersQuery, error) {
	if olderThan <= 0 {
		return GetStalePlacedOrdersQuery{}, errs.NewValueIsInvalidError("olderThan")
	}
	return GetStalePlacedOrdersQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalePlacedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePlacedOrdersQueryIsNotConstructed)
}

func (q GetStalePlacedOrdersQuery) OlderThan() time.Duration { return q.olderThan }
