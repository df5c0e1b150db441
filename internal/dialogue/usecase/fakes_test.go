package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"bankbot/internal/bank"
	"bankbot/internal/model"
	"bankbot/internal/router"
)

// fakeBank keeps accounts in memory. Password hashes are the plaintext.
type fakeBank struct {
	mu           sync.Mutex
	accounts     map[string]model.Account
	transactions []model.Transaction
	chats        []bank.SaveChatInput
	getErr       error
	transferErr  error
	saveErr      error
}

func newFakeBank() *fakeBank {
	return &fakeBank{accounts: map[string]model.Account{
		"111": {Number: "111", UserName: "Asha", Type: "savings", Balance: 1000, PasswordHash: "secret"},
		"222": {Number: "222", UserName: "Ravi", Type: "current", Balance: 50, PasswordHash: "hunter2"},
	}}
}

func (b *fakeBank) GetAccount(ctx context.Context, number string) (model.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.getErr != nil {
		return model.Account{}, b.getErr
	}
	a, ok := b.accounts[number]
	if !ok {
		return model.Account{}, bank.ErrAccountNotFound
	}
	return a, nil
}

func (b *fakeBank) VerifyPassword(plaintext, hash string) bool {
	return plaintext == hash
}

func (b *fakeBank) Transfer(ctx context.Context, in bank.TransferInput) (bank.TransferOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.transferErr != nil {
		return bank.TransferOutput{}, b.transferErr
	}
	if in.Amount <= 0 {
		return bank.TransferOutput{}, bank.ErrInvalidAmount
	}
	if in.From == in.To {
		return bank.TransferOutput{}, bank.ErrSameAccount
	}
	from, ok := b.accounts[in.From]
	if !ok {
		return bank.TransferOutput{}, bank.ErrInvalidSender
	}
	if from.PasswordHash != in.Password {
		return bank.TransferOutput{}, bank.ErrIncorrectPassword
	}
	to, ok := b.accounts[in.To]
	if !ok {
		return bank.TransferOutput{}, bank.ErrInvalidReceiver
	}
	if from.Balance < in.Amount {
		return bank.TransferOutput{}, bank.ErrInsufficientBalance
	}
	from.Balance -= in.Amount
	to.Balance += in.Amount
	b.accounts[in.From], b.accounts[in.To] = from, to
	tx := model.Transaction{ID: int64(len(b.transactions) + 1), From: in.From, To: in.To, Amount: in.Amount}
	b.transactions = append(b.transactions, tx)
	return bank.TransferOutput{Transaction: tx}, nil
}

func (b *fakeBank) SaveChat(ctx context.Context, in bank.SaveChatInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.chats = append(b.chats, in)
	return nil
}

func (b *fakeBank) balance(number string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts[number].Balance
}

// fakeRouter returns canned results keyed by input text.
type fakeRouter struct {
	results map[string]router.Result
	calls   atomic.Int32
}

func (r *fakeRouter) Process(ctx context.Context, text string) router.Result {
	r.calls.Add(1)
	if res, ok := r.results[text]; ok {
		return res
	}
	return router.Result{Text: text, TopIntent: "unknown"}
}

type fakeLLM struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (f *fakeLLM) Invoke(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem, f.lastUser = system, user
	return f.reply, f.err
}

var errBoom = errors.New("boom")
