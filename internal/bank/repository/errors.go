package repository

import "errors"

var (
	ErrFailedToInsert    = errors.New("failed to insert record")
	ErrFailedToGet       = errors.New("failed to get record")
	ErrFailedToList      = errors.New("failed to list records")
	ErrFailedToTransfer  = errors.New("failed to transfer funds")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountMissing    = errors.New("account missing")
)
