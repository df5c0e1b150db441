package http

import (
	"bankbot/internal/bank"
	"bankbot/pkg/log"
)

type handler struct {
	l  log.Logger
	uc bank.UseCase
}

// New creates a new HTTP handler for the bank admin endpoints.
func New(l log.Logger, uc bank.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
