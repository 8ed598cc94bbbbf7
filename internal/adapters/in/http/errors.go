package http

import (
	"errors"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps domain and application errors onto HTTP status codes.
// Conflicts (rejected transitions, lost optimistic-concurrency races,
// blocked removals) are 409 so clients know a retry with fresh state may
// succeed; validation and signature failures are 400; unknown objects 404.
func respondError(ctx echo.Context, err error) error {
	var status int

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyTerminal),
		errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, partner.ErrPartnerHasActiveDeliveries),
		errors.Is(err, commands.ErrProductOutOfStock):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSignatureMismatch),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		message = "internal error"
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}
