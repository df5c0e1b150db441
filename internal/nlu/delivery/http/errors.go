package http

import (
	"errors"
	"net/http"

	"bankbot/internal/nlu/intent"
	pkgErrors "bankbot/pkg/errors"
)

// mapError translates classifier errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, intent.ErrInvalidIntents),
		errors.Is(err, intent.ErrDuplicateIntent),
		errors.Is(err, intent.ErrEmptyTrainingSet),
		errors.Is(err, intent.ErrTooFewIntents):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, intent.ErrIntentsNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "training data not found")
	case errors.Is(err, intent.ErrModelNotTrained):
		return pkgErrors.NewHTTPError(http.StatusConflict, "model not trained")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
