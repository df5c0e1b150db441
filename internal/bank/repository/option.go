package repository

import "time"

// CreateAccountOptions holds the parameters for inserting an account.
type CreateAccountOptions struct {
	Number       string
	UserName     string
	Type         string
	Balance      int64
	PasswordHash string
}

// TransferOptions holds the parameters for a fund transfer.
type TransferOptions struct {
	Reference string
	From      string
	To        string
	Amount    int64
	At        time.Time
}

// SaveChatOptions holds one chat log row.
type SaveChatOptions struct {
	Username   string
	Query      string
	Intent     string
	Confidence float64
	At         time.Time
}

// ListChatsOptions filters the chat log. An empty Username lists all users.
type ListChatsOptions struct {
	Username string
	Limit    int
	Offset   int
}
