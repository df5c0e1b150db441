package telegram

import (
	"errors"

	"bankbot/internal/dialogue"
)

// errorMessage returns a user-facing error string for the given error.
// Internal details never reach the chat.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, dialogue.ErrLLMUnavailable):
		return "Sorry, I couldn't answer that right now. Please try again in a moment."
	default:
		return "⚠️ Something went wrong while processing your message. Please try again."
	}
}
