package model

import "time"

// Account is a customer account as stored in the account store.
type Account struct {
	Number       string
	UserName     string
	Type         string
	Balance      int64
	PasswordHash string
}

// Exists reports whether a is a real row rather than a not-found zero value.
func (a Account) Exists() bool {
	return a.Number != ""
}

// Transaction is one completed fund transfer.
type Transaction struct {
	ID        int64
	Reference string
	From      string
	To        string
	Amount    int64
	Timestamp time.Time
}
