package dialogue

import "errors"

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrSessionNotFound = errors.New("session not found")
	ErrLLMUnavailable  = errors.New("language model unavailable")
)
