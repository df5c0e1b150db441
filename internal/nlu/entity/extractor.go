package entity

import (
	"strings"
	"time"

	"bankbot/pkg/datemath"
)

// Extractor pulls banking entities out of free text. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	dates *datemath.Parser
	now   func() time.Time
}

// New creates an Extractor. dates may be nil, in which case date entities
// are reported without a resolved value.
func New(dates *datemath.Parser) *Extractor {
	return &Extractor{dates: dates, now: time.Now}
}

// Extract returns card numbers, account numbers, amounts and transaction IDs
// in that order. A numeric value claimed by a higher-priority category is not
// reported again by a lower one. Extract never fails.
func (e *Extractor) Extract(text string) []Entity {
	var out []Entity
	claimed := make(map[string]struct{})
	seen := make(map[Type]map[string]struct{})

	add := func(t Type, value string) {
		if seen[t] == nil {
			seen[t] = make(map[string]struct{})
		}
		if _, dup := seen[t][value]; dup {
			return
		}
		seen[t][value] = struct{}{}
		out = append(out, Entity{Type: t, Value: value})
	}

	for _, m := range cardPattern.FindAllStringSubmatch(text, -1) {
		claimed[m[1]] = struct{}{}
		add(TypeCardNumber, m[1])
	}

	for _, m := range accountPattern.FindAllString(text, -1) {
		if _, ok := claimed[m]; ok {
			continue
		}
		claimed[m] = struct{}{}
		add(TypeAccountNumber, m)
	}

	for _, m := range amountPattern.FindAllString(text, -1) {
		if _, ok := claimed[digitsOnly(m)]; ok {
			continue
		}
		add(TypeAmount, m)
	}

	for _, m := range txnPattern.FindAllString(text, -1) {
		add(TypeTransactionID, m)
	}

	return out
}

// ExtractWithIntent runs Extract and then the intent-conditioned enrichment
// passes. Each enrichment field yields at most one entity.
func (e *Extractor) ExtractWithIntent(text, intent string) []Entity {
	out := e.Extract(text)
	lower := strings.ToLower(text)

	switch intent {
	case IntentCardBlock:
		out = appendFirst(out, TypeReason, reasonPattern, lower)
		out = appendFirst(out, TypeCardType, cardTypePattern, lower)
	case IntentCheckBalance:
		out = appendAccountType(out, lower)
	case IntentTransfer:
		out = appendAccountType(out, lower)
		if m := transferTypePattern.FindString(lower); m != "" {
			out = append(out, Entity{Type: TypeTransferType, Value: strings.ToUpper(m)})
		}
		if name, ok := beneficiary(lower); ok {
			out = append(out, Entity{Type: TypeBeneficiaryName, Value: name})
		}
	}

	if strings.Contains(lower, "atm") || strings.Contains(lower, "branch") {
		if m := locationPattern.FindStringSubmatch(text); m != nil {
			if loc := strings.TrimSpace(m[1]); len(loc) >= minLocationLen {
				out = append(out, Entity{Type: TypeLocation, Value: loc})
			}
		}
	}

	if d, ok := e.date(lower); ok {
		out = append(out, d)
	}

	if m := emailPattern.FindString(text); m != "" {
		out = append(out, Entity{Type: TypeEmail, Value: m})
	}
	if m := phonePattern.FindString(text); m != "" {
		out = append(out, Entity{Type: TypePhone, Value: m})
	}

	return out
}

func (e *Extractor) date(lower string) (Entity, bool) {
	for _, p := range datePatterns {
		m := p.FindString(lower)
		if m == "" {
			continue
		}
		ent := Entity{Type: TypeDate, Value: m}
		if e.dates != nil {
			if r, err := e.dates.Parse(m, e.now()); err == nil {
				ent.Resolved = formatRange(r)
			}
		}
		return ent, true
	}
	return Entity{}, false
}

func formatRange(r datemath.Range) string {
	const layout = "2006-01-02"
	if r.IsSingleDay() {
		return r.Start.Format(layout)
	}
	return r.Start.Format(layout) + "/" + r.End.Format(layout)
}

func appendFirst(out []Entity, t Type, p interface{ FindString(string) string }, lower string) []Entity {
	if m := p.FindString(lower); m != "" {
		out = append(out, Entity{Type: t, Value: m})
	}
	return out
}

func appendAccountType(out []Entity, lower string) []Entity {
	m := accountTypePattern.FindString(lower)
	if m == "" {
		return out
	}
	if m == "saving" {
		m = "savings"
	}
	return append(out, Entity{Type: TypeAccountType, Value: m})
}

func beneficiary(lower string) (string, bool) {
	for _, m := range beneficiaryPattern.FindAllStringSubmatch(lower, -1) {
		name := strings.TrimSpace(m[1])
		first := strings.Fields(name)
		if len(first) == 0 || len(name) < minBeneficiaryLen {
			continue
		}
		if _, stop := beneficiaryStopwords[first[0]]; stop {
			continue
		}
		return name, true
	}
	return "", false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
