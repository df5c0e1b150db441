package usecase

import (
	"context"
	"sync"

	repo "bankbot/internal/bank/repository"
	"bankbot/internal/model"
)

// memRepo is an in-memory repository.Repository for use case tests.
type memRepo struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	txns     []model.Transaction
	chats    []model.ChatEntry

	getErr      error
	transferErr error
}

func newMemRepo() *memRepo {
	return &memRepo{accounts: make(map[string]model.Account)}
}

func (m *memRepo) GetAccount(ctx context.Context, number string) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return model.Account{}, m.getErr
	}
	return m.accounts[number], nil
}

func (m *memRepo) CreateAccount(ctx context.Context, opt repo.CreateAccountOptions) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[opt.Number]; ok {
		return model.Account{}, repo.ErrDuplicateKey
	}
	a := model.Account{Number: opt.Number, UserName: opt.UserName, Type: opt.Type, Balance: opt.Balance, PasswordHash: opt.PasswordHash}
	m.accounts[opt.Number] = a
	return a, nil
}

func (m *memRepo) Transfer(ctx context.Context, opt repo.TransferOptions) (model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transferErr != nil {
		return model.Transaction{}, m.transferErr
	}
	from, to := m.accounts[opt.From], m.accounts[opt.To]
	if from.Balance < opt.Amount {
		return model.Transaction{}, repo.ErrInsufficientFunds
	}
	from.Balance -= opt.Amount
	to.Balance += opt.Amount
	m.accounts[opt.From], m.accounts[opt.To] = from, to
	txn := model.Transaction{ID: int64(len(m.txns) + 1), Reference: opt.Reference, From: opt.From, To: opt.To, Amount: opt.Amount, Timestamp: opt.At}
	m.txns = append(m.txns, txn)
	return txn, nil
}

func (m *memRepo) SaveChat(ctx context.Context, opt repo.SaveChatOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, model.ChatEntry{
		ID: int64(len(m.chats) + 1), Username: opt.Username, Query: opt.Query,
		Intent: opt.Intent, Confidence: opt.Confidence, Timestamp: opt.At,
	})
	return nil
}

func (m *memRepo) ListChats(ctx context.Context, opt repo.ListChatsOptions) ([]model.ChatEntry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ChatEntry
	for i := len(m.chats) - 1; i >= 0; i-- {
		if opt.Username == "" || m.chats[i].Username == opt.Username {
			out = append(out, m.chats[i])
		}
	}
	total := len(out)
	if opt.Offset >= len(out) {
		return []model.ChatEntry{}, total, nil
	}
	out = out[opt.Offset:]
	if len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, total, nil
}
