package usecase

// Log prefixes
const (
	LogPrefixGetAccount    = "internal.bank.usecase.GetAccount"
	LogPrefixCreateAccount = "internal.bank.usecase.CreateAccount"
	LogPrefixTransfer      = "internal.bank.usecase.Transfer"
	LogPrefixSaveChat      = "internal.bank.usecase.SaveChat"
	LogPrefixListChats     = "internal.bank.usecase.ListChats"
)

const (
	DefaultAccountType  = "savings"
	DefaultChatPageSize = 20
	MaxChatPageSize     = 100
)
