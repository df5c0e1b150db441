package http

import (
	"context"

	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
	"bankbot/internal/router"
	"bankbot/pkg/log"
)

// Classifier is the part of the intent classifier the admin API drives.
type Classifier interface {
	PredictMulti(ctx context.Context, text string) ([]intent.Score, error)
	Train(ctx context.Context) (intent.TrainOutput, error)
	Retrain(ctx context.Context, intents []intent.Intent) (intent.TrainOutput, error)
	LoadIntents(ctx context.Context) []intent.Intent
	SaveIntents(ctx context.Context, intents []intent.Intent) error
	Version() string
}

// Extractor is the entity extractor.
type Extractor interface {
	Extract(text string) []entity.Entity
	ExtractWithIntent(text, intent string) []entity.Entity
}

type handler struct {
	l          log.Logger
	router     router.Router
	classifier Classifier
	extractor  Extractor
}

// New creates a new HTTP handler for the NLU endpoints.
func New(l log.Logger, r router.Router, c Classifier, e Extractor) *handler {
	return &handler{
		l:          l,
		router:     r,
		classifier: c,
		extractor:  e,
	}
}
