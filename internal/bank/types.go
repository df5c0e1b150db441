package bank

import "bankbot/internal/model"

// DefaultUsername is recorded for chat turns without an authenticated user.
const DefaultUsername = "guest"

// --- UseCase Inputs ---

type CreateAccountInput struct {
	Number   string
	UserName string
	Type     string
	Balance  int64
	Password string
}

type TransferInput struct {
	From     string
	To       string
	Amount   int64
	Password string
}

type SaveChatInput struct {
	Username   string
	Query      string
	Intent     string
	Confidence float64
}

type ListChatsInput struct {
	Username string
	Limit    int
	Offset   int
}

// --- UseCase Outputs ---

type TransferOutput struct {
	Transaction model.Transaction
}

type ListChatsOutput struct {
	Entries []model.ChatEntry
	Total   int
	Limit   int
	Offset  int
}
