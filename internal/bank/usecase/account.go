package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bankbot/internal/bank"
	repo "bankbot/internal/bank/repository"
	"bankbot/internal/metrics"
	"bankbot/internal/model"
)

// GetAccount returns the account or ErrAccountNotFound.
func (uc *implUseCase) GetAccount(ctx context.Context, number string) (model.Account, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return model.Account{}, bank.ErrAccountNotFound
	}
	a, err := uc.repo.GetAccount(ctx, number)
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", LogPrefixGetAccount, err)
		return model.Account{}, err
	}
	if !a.Exists() {
		return model.Account{}, bank.ErrAccountNotFound
	}
	return a, nil
}

// CreateAccount hashes the password and inserts the account.
func (uc *implUseCase) CreateAccount(ctx context.Context, input bank.CreateAccountInput) (model.Account, error) {
	if input.Number == "" || input.UserName == "" || input.Password == "" || input.Balance < 0 {
		return model.Account{}, bank.ErrInvalidPayload
	}

	existing, err := uc.repo.GetAccount(ctx, input.Number)
	if err != nil {
		uc.l.Errorf(ctx, "%s GetAccount: %v", LogPrefixCreateAccount, err)
		return model.Account{}, err
	}
	if existing.Exists() {
		return model.Account{}, bank.ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.hashCost)
	if err != nil {
		uc.l.Errorf(ctx, "%s hash: %v", LogPrefixCreateAccount, err)
		return model.Account{}, err
	}

	accountType := input.Type
	if accountType == "" {
		accountType = DefaultAccountType
	}
	a, err := uc.repo.CreateAccount(ctx, repo.CreateAccountOptions{
		Number:       input.Number,
		UserName:     input.UserName,
		Type:         accountType,
		Balance:      input.Balance,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repo.ErrDuplicateKey) {
		return model.Account{}, bank.ErrDuplicateAccount
	}
	if err != nil {
		uc.l.Errorf(ctx, "%s CreateAccount: %v", LogPrefixCreateAccount, err)
		return model.Account{}, err
	}
	return a, nil
}

// VerifyPassword reports whether plaintext matches the bcrypt hash.
func (uc *implUseCase) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Transfer validates the request against the stored accounts and moves the
// funds. Business failures are returned as bank sentinel errors.
func (uc *implUseCase) Transfer(ctx context.Context, input bank.TransferInput) (bank.TransferOutput, error) {
	out, err := uc.transfer(ctx, input)
	if err != nil {
		metrics.TransfersTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return bank.TransferOutput{}, err
	}
	metrics.TransfersTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return out, nil
}

func (uc *implUseCase) transfer(ctx context.Context, input bank.TransferInput) (bank.TransferOutput, error) {
	if input.Amount <= 0 {
		return bank.TransferOutput{}, bank.ErrInvalidAmount
	}
	if input.From == input.To {
		return bank.TransferOutput{}, bank.ErrSameAccount
	}

	sender, err := uc.repo.GetAccount(ctx, input.From)
	if err != nil {
		uc.l.Errorf(ctx, "%s GetAccount sender: %v", LogPrefixTransfer, err)
		return bank.TransferOutput{}, err
	}
	if !sender.Exists() {
		return bank.TransferOutput{}, bank.ErrInvalidSender
	}
	if !uc.VerifyPassword(input.Password, sender.PasswordHash) {
		uc.l.Infof(ctx, "%s: incorrect password for %s", LogPrefixTransfer, input.From)
		return bank.TransferOutput{}, bank.ErrIncorrectPassword
	}

	receiver, err := uc.repo.GetAccount(ctx, input.To)
	if err != nil {
		uc.l.Errorf(ctx, "%s GetAccount receiver: %v", LogPrefixTransfer, err)
		return bank.TransferOutput{}, err
	}
	if !receiver.Exists() {
		return bank.TransferOutput{}, bank.ErrInvalidReceiver
	}
	if sender.Balance < input.Amount {
		return bank.TransferOutput{}, bank.ErrInsufficientBalance
	}

	txn, err := uc.repo.Transfer(ctx, repo.TransferOptions{
		Reference: uuid.NewString(),
		From:      input.From,
		To:        input.To,
		Amount:    input.Amount,
		At:        uc.now(),
	})
	switch {
	case errors.Is(err, repo.ErrInsufficientFunds):
		return bank.TransferOutput{}, bank.ErrInsufficientBalance
	case errors.Is(err, repo.ErrAccountMissing):
		return bank.TransferOutput{}, bank.ErrInvalidReceiver
	case err != nil:
		uc.l.Errorf(ctx, "%s: %v", LogPrefixTransfer, err)
		return bank.TransferOutput{}, err
	}

	uc.l.Infof(ctx, "%s: %s moved %d from %s to %s", LogPrefixTransfer, txn.Reference, txn.Amount, txn.From, txn.To)
	return bank.TransferOutput{Transaction: txn}, nil
}
