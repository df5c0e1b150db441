package repository

import (
	"context"

	"bankbot/internal/model"
)

// Repository is the composed interface for the bank data store.
type Repository interface {
	AccountRepository
	ChatRepository
}

// AccountRepository defines data access for accounts and transfers.
type AccountRepository interface {
	// GetAccount returns a zero-value Account (Exists() == false) when not found.
	GetAccount(ctx context.Context, number string) (model.Account, error)
	CreateAccount(ctx context.Context, opt CreateAccountOptions) (model.Account, error)
	// Transfer debits, credits and records the transaction as one unit.
	Transfer(ctx context.Context, opt TransferOptions) (model.Transaction, error)
}

// ChatRepository defines data access for the append-only chat log.
type ChatRepository interface {
	SaveChat(ctx context.Context, opt SaveChatOptions) error
	ListChats(ctx context.Context, opt ListChatsOptions) ([]model.ChatEntry, int, error)
}
