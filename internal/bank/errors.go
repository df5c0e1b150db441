package bank

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateAccount    = errors.New("account number already exists")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidSender       = errors.New("invalid sender account")
	ErrInvalidReceiver     = errors.New("invalid receiver account")
	ErrSameAccount         = errors.New("sender and receiver accounts must be different")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidPayload      = errors.New("invalid payload")
)
