package sqldb

import (
	"context"
	"database/sql"
	"errors"

	repo "bankbot/internal/bank/repository"
	"bankbot/internal/model"
)

// GetAccount retrieves an account by number.
// Returns zero-value Account when not found, without an error.
func (r *implRepository) GetAccount(ctx context.Context, number string) (model.Account, error) {
	query := r.rebind(`
		SELECT account_number, user_name, account_type, balance, password_hash
		FROM accounts WHERE account_number = ?`)

	var a model.Account
	err := r.db.QueryRowContext(ctx, query, number).Scan(&a.Number, &a.UserName, &a.Type, &a.Balance, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetAccount"), err)
		return model.Account{}, repo.ErrFailedToGet
	}
	return a, nil
}

// CreateAccount inserts a new account row.
func (r *implRepository) CreateAccount(ctx context.Context, opt repo.CreateAccountOptions) (model.Account, error) {
	query := r.rebind(`
		INSERT INTO accounts (account_number, user_name, account_type, balance, password_hash)
		VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, opt.Number, opt.UserName, opt.Type, opt.Balance, opt.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, repo.ErrDuplicateKey
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateAccount"), err)
		return model.Account{}, repo.ErrFailedToInsert
	}
	return model.Account{
		Number:       opt.Number,
		UserName:     opt.UserName,
		Type:         opt.Type,
		Balance:      opt.Balance,
		PasswordHash: opt.PasswordHash,
	}, nil
}

// Transfer moves opt.Amount from opt.From to opt.To and appends a
// transaction row in a single database transaction. The debit only applies
// while the balance covers the amount, so concurrent transfers cannot
// overdraw the sender.
func (r *implRepository) Transfer(ctx context.Context, opt repo.TransferOptions) (model.Transaction, error) {
	at := opt.At
	if at.IsZero() {
		at = r.now()
	}
	at = at.UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("Transfer"), err)
		return model.Transaction{}, repo.ErrFailedToTransfer
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		r.rebind(`UPDATE accounts SET balance = balance - ? WHERE account_number = ? AND balance >= ?`),
		opt.Amount, opt.From, opt.Amount)
	if err != nil {
		r.l.Errorf(ctx, "%s debit: %v", r.dsn("Transfer"), err)
		return model.Transaction{}, repo.ErrFailedToTransfer
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return model.Transaction{}, repo.ErrInsufficientFunds
	}

	res, err = tx.ExecContext(ctx,
		r.rebind(`UPDATE accounts SET balance = balance + ? WHERE account_number = ?`),
		opt.Amount, opt.To)
	if err != nil {
		r.l.Errorf(ctx, "%s credit: %v", r.dsn("Transfer"), err)
		return model.Transaction{}, repo.ErrFailedToTransfer
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return model.Transaction{}, repo.ErrAccountMissing
	}

	_, err = tx.ExecContext(ctx,
		r.rebind(`INSERT INTO transactions (reference, from_account, to_account, amount, timestamp) VALUES (?, ?, ?, ?, ?)`),
		opt.Reference, opt.From, opt.To, opt.Amount, at)
	if err != nil {
		r.l.Errorf(ctx, "%s record: %v", r.dsn("Transfer"), err)
		return model.Transaction{}, repo.ErrFailedToTransfer
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("Transfer"), err)
		return model.Transaction{}, repo.ErrFailedToTransfer
	}

	return model.Transaction{
		Reference: opt.Reference,
		From:      opt.From,
		To:        opt.To,
		Amount:    opt.Amount,
		Timestamp: at,
	}, nil
}
