package intent

import "time"

// Log prefixes
const (
	LogPrefixClassify     = "internal.nlu.intent.Classify"
	LogPrefixTrain        = "internal.nlu.intent.Train"
	LogPrefixRetrain      = "internal.nlu.intent.Retrain"
	LogPrefixReload       = "internal.nlu.intent.Reload"
	LogPrefixLoadIntents  = "internal.nlu.intent.LoadIntents"
	LogPrefixSaveArtifact = "internal.nlu.intent.saveArtifact"
)

// Unknown is reported when no prediction can be made.
const Unknown = "unknown"

// Confidence policy defaults.
const (
	DefaultHighThreshold = 0.80
	DefaultNoiseFloor    = 0.10
)

// Vectorizer defaults.
const (
	DefaultNgramMin    = 1
	DefaultNgramMax    = 3
	DefaultMaxFeatures = 5000
	DefaultMinDF       = 1
)

// Model defaults.
const (
	DefaultC             = 10.0
	DefaultMaxIter       = 1000
	DefaultLearningRate  = 1.0
	DefaultTolerance     = 1e-6
	DefaultIntentsPath   = "data/intents.json"
	DefaultModelDir      = "data/model"
	artifactCurrentFile  = "CURRENT"
	artifactVectorizer   = "vectorizer.gob"
	artifactModel        = "model.gob"
	artifactLabelEncoder = "label_encoder.gob"
	artifactTmpPrefix    = ".tmp-"
	intentsIndent        = "    "
	fileMode             = 0o644
	dirMode              = 0o755
	trainTimeout         = 5 * time.Minute
)

// Error annotations surfaced on predictions.
const (
	ErrMsgModelNotTrained     = "Model not trained. Please train the model first."
	ErrMsgClassificationError = "Classification error: "
)
