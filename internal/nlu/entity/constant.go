package entity

import "regexp"

// Intents that unlock enrichment passes.
const (
	IntentCardBlock    = "card_block"
	IntentCheckBalance = "check_balance"
	IntentTransfer     = "transfer_money"
)

const (
	minBeneficiaryLen = 2
	minLocationLen    = 3
)

var (
	cardPattern    = regexp.MustCompile(`(?i)\b(?:cards?|debit|credit|atm)\b\D*?\b(\d{3,4})\b`)
	accountPattern = regexp.MustCompile(`\b\d{6,12}\b`)
	amountPattern  = regexp.MustCompile(`(?:₹|\$)?\b\d+(?:,\d+)*\b`)
	txnPattern     = regexp.MustCompile(`\bTXN\d+\b`)

	amountValuePattern = regexp.MustCompile(`(?:₹|\$)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)

	reasonPattern       = regexp.MustCompile(`\b(lost|stolen|fraud|damaged|compromised)`)
	cardTypePattern     = regexp.MustCompile(`\b(credit|debit|atm)\b`)
	accountTypePattern  = regexp.MustCompile(`\b(savings?|current|checking|salary)\b`)
	transferTypePattern = regexp.MustCompile(`\b(neft|rtgs|imps|upi)\b`)
	beneficiaryPattern  = regexp.MustCompile(`\bto\s+([a-z][a-z\s]*?)(?:'s)?(?:\s+(?:account|acc|a/c)\b|\s+\d|\s*$)`)
	locationPattern     = regexp.MustCompile(`(?i)\b(?:near|at|in)\s+([a-z][a-z\s]*?)(?:\s+area\b|\s*$|,|\?|\.)`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(today|yesterday|tomorrow)\b`),
		regexp.MustCompile(`\b(?:last|past|previous)\s+(?:week|month|year)\b`),
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	}

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+91[-\s]?)?\b[6-9]\d{9}\b`)
)

// Words the beneficiary pattern can capture that are never names.
var beneficiaryStopwords = map[string]struct{}{
	"account":  {},
	"my":       {},
	"the":      {},
	"transfer": {},
	"send":     {},
	"pay":      {},
	"move":     {},
}
