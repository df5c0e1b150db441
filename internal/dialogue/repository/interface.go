package repository

import (
	"context"

	"bankbot/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// GetSession returns a zero Session when id is unknown or expired.
	GetSession(ctx context.Context, id string) (model.Session, error)
	SaveSession(ctx context.Context, session model.Session) error
	DeleteSession(ctx context.Context, id string) error
}
