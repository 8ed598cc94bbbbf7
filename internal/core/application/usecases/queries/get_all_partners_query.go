package queries

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrGetAllPartnersQueryIsNotConstructed = errors.New(
	"GetAllPartnersQuery must be created via NewGetAllPartnersQuery constructor",
)

// GetAllPartnersQuery retrieves the whole delivery-partner registry for
// monitoring and dispatch screens.
type GetAllPartnersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllPartnersQuery creates a query to retrieve all partners. This is a
// parameterless query that fetches the complete registry.
func NewGetAllPartnersQuery() GetAllPartnersQuery {
	return GetAllPartnersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllPartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllPartnersQueryIsNotConstructed)
}

// GetAllPartnersQueryResponse represents one partner in the read model.
type GetAllPartnersQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Phone             string
	VehicleType       string
	IsAvailable       bool
	CurrentDeliveries int
	TotalDeliveries   int
	Rating            float64
	LastAssignedAt    *time.Time
}
