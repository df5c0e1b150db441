package bank

import (
	"context"

	"bankbot/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Accounts
	GetAccount(ctx context.Context, number string) (model.Account, error)
	CreateAccount(ctx context.Context, input CreateAccountInput) (model.Account, error)
	VerifyPassword(plaintext, hash string) bool
	Transfer(ctx context.Context, input TransferInput) (TransferOutput, error)

	// Chat log
	SaveChat(ctx context.Context, input SaveChatInput) error
	ListChats(ctx context.Context, input ListChatsInput) (ListChatsOutput, error)
}
