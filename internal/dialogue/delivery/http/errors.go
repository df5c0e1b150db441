package http

import (
	"errors"
	"net/http"

	"bankbot/internal/dialogue"
	pkgErrors "bankbot/pkg/errors"
)

// fallbackReply is shown when the language model could not answer.
const fallbackReply = "Sorry, I couldn't answer that right now. Please try again in a moment."

// mapError translates dialogue errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, dialogue.ErrEmptyMessage):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "message is required")
	case errors.Is(err, dialogue.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "session not found")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
