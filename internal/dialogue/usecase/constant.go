package usecase

// Log prefixes
const (
	LogPrefixHandleMessage = "internal.dialogue.usecase.HandleMessage"
	LogPrefixReset         = "internal.dialogue.usecase.Reset"
	LogPrefixAskLLM        = "internal.dialogue.usecase.askLLM"
	LogPrefixSaveTurn      = "internal.dialogue.usecase.saveTurn"
)

// DefaultSystemPrompt frames the fallback language model answers.
const DefaultSystemPrompt = "You are a helpful AI assistant for a banking application. " +
	"Answer clearly and confidently. " +
	"Do not mention knowledge cutoff dates or disclaimers."

const lockStripes = 64

// Replies
const (
	replyGreeting = "Hello 👋 Welcome to BankBot. How can I assist you today?"
	replyThanks   = "You're welcome 😊 Happy to help you!"

	promptBalanceAccount  = "Sure 😊 Please provide your account number."
	promptPassword        = "Please enter your password."
	promptTransferFrom    = "💸 Please enter sender account number."
	promptTransferTo      = "Please enter receiver account number."
	promptTransferAmount  = "Please enter transfer amount."
	promptInvalidAmount   = "Please enter a valid amount."
	promptCardAccount     = "🔒 Please provide your account number to block the card."
	promptCardBlockReason = "Please mention the reason (lost / stolen / fraud)."

	replyBalance               = "✅ Your available balance is ₹%d"
	replyBalanceNoAccount      = "❌ Account does not exist."
	replyBalanceWrongPassword  = "❌ Incorrect password."
	replyTransferOK            = "✅ Transfer Successful"
	replyInvalidSender         = "❌ Invalid sender account"
	replyInvalidReceiver       = "❌ Invalid receiver account"
	replyTransferWrongPassword = "❌ Incorrect password"
	replyInsufficientBalance   = "❌ Insufficient balance"
	replySameAccount           = "❌ Sender and receiver accounts must be different"
	replyInvalidAmount         = "❌ Invalid amount"
	replyCardNoAccount         = "❌ Account not found."
	replyCardBlocked           = "✅ Card linked to account **%s** has been successfully blocked.\n\n" +
		"📝 Reason: %s\n" +
		"📞 Please contact customer support to request a new card."
	replyServiceError = "⚠️ Sorry, we could not complete your request right now. Please try again later."
)

var greetingPhrases = map[string]struct{}{
	"hi":           {},
	"hello":        {},
	"hey":          {},
	"good morning": {},
	"good evening": {},
}

var thanksPhrases = map[string]struct{}{
	"thanks":    {},
	"thank you": {},
	"thx":       {},
	"thankyou":  {},
}
