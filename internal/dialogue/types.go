package dialogue

// --- UseCase Inputs ---

type HandleMessageInput struct {
	SessionID string
	Username  string
	Text      string
}

// --- UseCase Outputs ---

type HandleMessageOutput struct {
	SessionID  string
	Reply      string
	Intent     string
	Confidence float64
	State      string
}

// Confidences are the fixed scores recorded for turns the classifier did not
// score itself.
type Confidences struct {
	QuickMatch  float64
	Flow        float64
	Keyword     float64
	LLMFallback float64
}

// DefaultConfidences returns the standard fixed scores.
func DefaultConfidences() Confidences {
	return Confidences{
		QuickMatch:  1.0,
		Flow:        0.95,
		Keyword:     0.90,
		LLMFallback: 0.85,
	}
}

// Config tunes the dialogue handler.
type Config struct {
	DefaultUsername string
	SystemPrompt    string
	Confidences     Confidences
}

// Intent names the dialogue handler routes on or records.
const (
	IntentGreetings     = "greetings"
	IntentCheckBalance  = "check_balance"
	IntentTransferMoney = "transfer_money"
	IntentCardBlock     = "card_block"
	IntentLLM           = "llm"
)
