package router

import (
	"context"

	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
	"bankbot/pkg/log"
)

// Router fuses intent scoring and entity extraction.
type Router interface {
	Process(ctx context.Context, text string) Result
}

// Classifier scores an utterance against the trained intents.
type Classifier interface {
	Classify(ctx context.Context, text string) intent.Prediction
	PredictMulti(ctx context.Context, text string) ([]intent.Score, error)
}

// Extractor pulls entities out of an utterance.
type Extractor interface {
	Extract(text string) []entity.Entity
}

// NLURouter is the default Router.
type NLURouter struct {
	classifier Classifier
	extractor  Extractor
	l          log.Logger
}

var _ Router = (*NLURouter)(nil)

// New creates a new NLURouter
func New(l log.Logger, classifier Classifier, extractor Extractor) *NLURouter {
	return &NLURouter{
		classifier: classifier,
		extractor:  extractor,
		l:          l,
	}
}
