package usecase

import (
	"context"
	"errors"
	"fmt"

	"bankbot/internal/bank"
	"bankbot/internal/model"
)

func (uc *implUseCase) checkBalance(ctx context.Context, account, password string) string {
	a, err := uc.bank.GetAccount(ctx, account)
	if errors.Is(err, bank.ErrAccountNotFound) {
		return replyBalanceNoAccount
	}
	if err != nil {
		uc.l.Errorf(ctx, "%s: balance lookup: %v", LogPrefixHandleMessage, err)
		return replyServiceError
	}
	if !uc.bank.VerifyPassword(password, a.PasswordHash) {
		uc.l.Infof(ctx, "%s: balance check rejected for %s: incorrect password", LogPrefixHandleMessage, account)
		return replyBalanceWrongPassword
	}
	return fmt.Sprintf(replyBalance, a.Balance)
}

func (uc *implUseCase) transfer(ctx context.Context, slots model.Slots, password string) string {
	_, err := uc.bank.Transfer(ctx, bank.TransferInput{
		From:     slots.FromAccount,
		To:       slots.ToAccount,
		Amount:   slots.Amount,
		Password: password,
	})
	if err == nil {
		return replyTransferOK
	}

	var reply string
	switch {
	case errors.Is(err, bank.ErrInvalidSender):
		reply = replyInvalidSender
	case errors.Is(err, bank.ErrInvalidReceiver):
		reply = replyInvalidReceiver
	case errors.Is(err, bank.ErrIncorrectPassword):
		reply = replyTransferWrongPassword
	case errors.Is(err, bank.ErrInsufficientBalance):
		reply = replyInsufficientBalance
	case errors.Is(err, bank.ErrSameAccount):
		reply = replySameAccount
	case errors.Is(err, bank.ErrInvalidAmount):
		reply = replyInvalidAmount
	default:
		uc.l.Errorf(ctx, "%s: transfer: %v", LogPrefixHandleMessage, err)
		return replyServiceError
	}
	uc.l.Infof(ctx, "%s: transfer %s -> %s rejected: %v", LogPrefixHandleMessage, slots.FromAccount, slots.ToAccount, err)
	return reply
}

func (uc *implUseCase) blockCard(ctx context.Context, account, reason string) string {
	_, err := uc.bank.GetAccount(ctx, account)
	if errors.Is(err, bank.ErrAccountNotFound) {
		return replyCardNoAccount
	}
	if err != nil {
		uc.l.Errorf(ctx, "%s: card block lookup: %v", LogPrefixHandleMessage, err)
		return replyServiceError
	}
	return fmt.Sprintf(replyCardBlocked, account, reason)
}
