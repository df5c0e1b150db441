package intent

import "errors"

var (
	ErrModelNotTrained   = errors.New("model not trained")
	ErrArtifactMismatch  = errors.New("artifact blobs belong to different training runs")
	ErrIntentsNotFound   = errors.New("training data not found")
	ErrInvalidIntents    = errors.New("invalid training data")
	ErrDuplicateIntent   = errors.New("duplicate intent name")
	ErrEmptyTrainingSet  = errors.New("training data has no examples")
	ErrTooFewIntents     = errors.New("at least two intents with examples are required")
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
)
