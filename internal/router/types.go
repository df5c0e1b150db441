package router

import (
	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
)

// Result is the structured NLU output for one utterance.
type Result struct {
	Text       string          `json:"text"`
	TopIntent  string          `json:"top_intent"`
	Confidence float64         `json:"confidence"`
	Intents    []intent.Score  `json:"intents"`
	Entities   []entity.Entity `json:"entities"`
	Error      string          `json:"error,omitempty"`
}

// Distribution returns the intent scores as a map.
func (r Result) Distribution() map[string]float64 {
	out := make(map[string]float64, len(r.Intents))
	for _, s := range r.Intents {
		out[s.Intent] = s.Confidence
	}
	return out
}
