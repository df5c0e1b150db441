package http

import (
	"errors"
	"net/http"

	"bankbot/internal/bank"
	pkgErrors "bankbot/pkg/errors"
)

// mapError translates bank errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, bank.ErrDuplicateAccount):
		return pkgErrors.NewHTTPError(http.StatusConflict, "account number already exists")
	case errors.Is(err, bank.ErrAccountNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "account not found")
	case errors.Is(err, bank.ErrInvalidPayload):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid account data")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
