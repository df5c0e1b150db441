package http

import (
	"bankbot/internal/dialogue"
	"bankbot/pkg/log"
)

type handler struct {
	l  log.Logger
	uc dialogue.UseCase
}

// New creates a new HTTP handler for the chat endpoints.
func New(l log.Logger, uc dialogue.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
