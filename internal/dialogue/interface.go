package dialogue

import (
	"context"

	"bankbot/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	HandleMessage(ctx context.Context, input HandleMessageInput) (HandleMessageOutput, error)
	GetSession(ctx context.Context, sessionID string) (model.Session, error)
	Reset(ctx context.Context, sessionID string) error
}
