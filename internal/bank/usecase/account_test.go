package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bankbot/internal/bank"
	repo "bankbot/internal/bank/repository"
	"bankbot/pkg/log"
)

func newTestUseCase(t *testing.T) (*implUseCase, *memRepo) {
	t.Helper()
	r := newMemRepo()
	uc := New(r, log.NewNop())
	uc.hashCost = bcrypt.MinCost

	ctx := context.Background()
	for _, in := range []bank.CreateAccountInput{
		{Number: "111", UserName: "Asha", Balance: 1000, Password: "secret"},
		{Number: "222", UserName: "Ravi", Type: "current", Balance: 50, Password: "hunter2"},
	} {
		if _, err := uc.CreateAccount(ctx, in); err != nil {
			t.Fatalf("seed %s: %v", in.Number, err)
		}
	}
	return uc, r
}

func TestCreateAccount(t *testing.T) {
	uc, r := newTestUseCase(t)
	ctx := context.Background()

	if got := r.accounts["111"]; got.Type != DefaultAccountType || got.PasswordHash == "secret" {
		t.Errorf("stored account = %+v", got)
	}
	if !uc.VerifyPassword("secret", r.accounts["111"].PasswordHash) {
		t.Error("stored hash does not verify")
	}
	if uc.VerifyPassword("wrong", r.accounts["111"].PasswordHash) {
		t.Error("wrong password verified")
	}

	_, err := uc.CreateAccount(ctx, bank.CreateAccountInput{Number: "111", UserName: "X", Password: "p"})
	if !errors.Is(err, bank.ErrDuplicateAccount) {
		t.Errorf("duplicate: got %v", err)
	}

	_, err = uc.CreateAccount(ctx, bank.CreateAccountInput{Number: "333", UserName: "X"})
	if !errors.Is(err, bank.ErrInvalidPayload) {
		t.Errorf("missing password: got %v", err)
	}
}

func TestGetAccount(t *testing.T) {
	uc, r := newTestUseCase(t)
	ctx := context.Background()

	a, err := uc.GetAccount(ctx, " 222 ")
	if err != nil || a.UserName != "Ravi" {
		t.Errorf("GetAccount(222) = %+v, %v", a, err)
	}

	if _, err := uc.GetAccount(ctx, "999"); !errors.Is(err, bank.ErrAccountNotFound) {
		t.Errorf("missing account: got %v", err)
	}

	r.getErr = repo.ErrFailedToGet
	if _, err := uc.GetAccount(ctx, "111"); !errors.Is(err, repo.ErrFailedToGet) {
		t.Errorf("repository failure: got %v", err)
	}
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		name        string
		input       bank.TransferInput
		transferErr error
		wantErr     error
		wantFrom    int64
		wantTo      int64
	}{
		{name: "success", input: bank.TransferInput{From: "111", To: "222", Amount: 500, Password: "secret"}, wantFrom: 500, wantTo: 550},
		{name: "whole balance", input: bank.TransferInput{From: "111", To: "222", Amount: 1000, Password: "secret"}, wantFrom: 0, wantTo: 1050},
		{name: "insufficient balance", input: bank.TransferInput{From: "111", To: "222", Amount: 1001, Password: "secret"}, wantErr: bank.ErrInsufficientBalance, wantFrom: 1000, wantTo: 50},
		{name: "wrong password", input: bank.TransferInput{From: "111", To: "222", Amount: 10, Password: "nope"}, wantErr: bank.ErrIncorrectPassword, wantFrom: 1000, wantTo: 50},
		{name: "unknown sender", input: bank.TransferInput{From: "999", To: "222", Amount: 10, Password: "secret"}, wantErr: bank.ErrInvalidSender, wantFrom: 1000, wantTo: 50},
		{name: "unknown receiver", input: bank.TransferInput{From: "111", To: "999", Amount: 10, Password: "secret"}, wantErr: bank.ErrInvalidReceiver, wantFrom: 1000, wantTo: 50},
		{name: "same account", input: bank.TransferInput{From: "111", To: "111", Amount: 10, Password: "secret"}, wantErr: bank.ErrSameAccount, wantFrom: 1000, wantTo: 50},
		{name: "zero amount", input: bank.TransferInput{From: "111", To: "222", Amount: 0, Password: "secret"}, wantErr: bank.ErrInvalidAmount, wantFrom: 1000, wantTo: 50},
		{name: "lost race at the store", input: bank.TransferInput{From: "111", To: "222", Amount: 10, Password: "secret"}, transferErr: repo.ErrInsufficientFunds, wantErr: bank.ErrInsufficientBalance, wantFrom: 1000, wantTo: 50},
		{name: "store failure", input: bank.TransferInput{From: "111", To: "222", Amount: 10, Password: "secret"}, transferErr: repo.ErrFailedToTransfer, wantErr: repo.ErrFailedToTransfer, wantFrom: 1000, wantTo: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, r := newTestUseCase(t)
			r.transferErr = tt.transferErr

			out, err := uc.Transfer(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Transfer() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if out.Transaction.Reference == "" || out.Transaction.Amount != tt.input.Amount {
					t.Errorf("Transaction = %+v", out.Transaction)
				}
				if len(r.txns) != 1 {
					t.Errorf("recorded %d transactions, want 1", len(r.txns))
				}
			} else if len(r.txns) != 0 {
				t.Errorf("failed transfer recorded %d transactions", len(r.txns))
			}
			if got := r.accounts["111"].Balance; got != tt.wantFrom {
				t.Errorf("sender balance = %d, want %d", got, tt.wantFrom)
			}
			if got := r.accounts["222"].Balance; got != tt.wantTo {
				t.Errorf("receiver balance = %d, want %d", got, tt.wantTo)
			}
		})
	}
}
