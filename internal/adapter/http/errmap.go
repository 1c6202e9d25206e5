package http

import (
	"errors"
	"net/http"

	appDomain "lamf-backend/internal/domain/application"
	collDomain "lamf-backend/internal/domain/collateral"
	loanDomain "lamf-backend/internal/domain/loan"
	productDomain "lamf-backend/internal/domain/product"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors onto HTTP status codes: unknown references →
// 404, state/consistency conflicts → 409, rule violations → 422, anything
// unrecognized → 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, productDomain.ErrNotFound),
		errors.Is(err, collDomain.ErrNotFound),
		errors.Is(err, appDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrEMINotFound):
		return http.StatusNotFound

	case errors.Is(err, collDomain.ErrDuplicateFolio),
		errors.Is(err, collDomain.ErrLienMarked),
		errors.Is(err, collDomain.ErrLienNotMarked),
		errors.Is(err, collDomain.ErrActiveLoan),
		errors.Is(err, appDomain.ErrInvalidTransition),
		errors.Is(err, appDomain.ErrNotDraft),
		errors.Is(err, loanDomain.ErrClosed),
		errors.Is(err, loanDomain.ErrAlreadyPaid):
		return http.StatusConflict

	case errors.Is(err, appDomain.ErrProductInactive),
		errors.Is(err, appDomain.ErrAmountOutOfRange),
		errors.Is(err, appDomain.ErrTenureOutOfRange),
		errors.Is(err, appDomain.ErrCollateralUnavailable),
		errors.Is(err, appDomain.ErrLTVExceeded),
		errors.Is(err, loanDomain.ErrUnknownStatus):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeErr(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
