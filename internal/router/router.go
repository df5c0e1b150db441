package router

import (
	"context"
	"sort"

	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
)

// Process classifies text and extracts its entities. Intents are ranked by
// confidence; equal scores keep the classifier's label order.
//
// An utterance with several clauses ("block my card and where is the
// nearest atm") is scored clause by clause, so every requested intent
// keeps a share of the confidence.
func (r *NLURouter) Process(ctx context.Context, text string) Result {
	pred := r.classifier.Classify(ctx, text)

	scores := pred.AllIntents
	if pred.Error == "" && len(intent.Clauses(text)) > 1 {
		multi, err := r.classifier.PredictMulti(ctx, text)
		if err != nil {
			r.l.Warnf(ctx, "%s: clause scoring failed, using whole utterance: %v", LogPrefixProcess, err)
		} else if len(multi) > 0 {
			scores = mergeScores(multi, pred.AllIntents)
		}
	}

	ranked := make([]intent.Score, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Confidence > ranked[j].Confidence })

	entities := r.extractor.Extract(text)
	if entities == nil {
		entities = []entity.Entity{}
	}

	res := Result{
		Text:       text,
		TopIntent:  pred.Intent,
		Confidence: pred.Confidence,
		Intents:    ranked,
		Entities:   entities,
		Error:      pred.Error,
	}
	if len(ranked) > 0 {
		res.TopIntent = ranked[0].Intent
		res.Confidence = ranked[0].Confidence
	}

	r.l.Debugf(ctx, "%s: intent=%s confidence=%.2f entities=%d", LogPrefixProcess, res.TopIntent, res.Confidence, len(entities))
	return res
}

// mergeScores lists the clause winners first and every other known intent
// at zero, so the result still covers the full label set.
func mergeScores(multi, all []intent.Score) []intent.Score {
	out := make([]intent.Score, 0, len(all))
	seen := make(map[string]bool, len(multi))
	for _, s := range multi {
		out = append(out, s)
		seen[s.Intent] = true
	}
	for _, s := range all {
		if !seen[s.Intent] {
			out = append(out, intent.Score{Intent: s.Intent})
		}
	}
	return out
}
