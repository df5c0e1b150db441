package intent

import "time"

// Intent is one entry of the training-data document.
type Intent struct {
	Name     string   `json:"name"`
	Examples []string `json:"examples"`
}

// Document is the on-disk shape of the training data.
type Document struct {
	Intents []Intent `json:"intents"`
}

// Score is the reported confidence for one intent.
type Score struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Prediction is the result of Classify. AllIntents follows the label
// encoder order. Error is set, and Intent is Unknown, when no trained
// artifact is available or inference fails.
type Prediction struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	AllIntents []Score `json:"all_intents"`
	Error      string  `json:"error,omitempty"`
}

// TrainOutput describes a published artifact.
type TrainOutput struct {
	Version   string
	Intents   int
	Examples  int
	Features  int
	TrainedAt time.Time
}

// Options configures a Classifier. Zero values fall back to the defaults
// in constant.go.
type Options struct {
	IntentsPath   string
	ModelDir      string
	HighThreshold float64
	NoiseFloor    float64
	Vectorizer    VectorizerOptions
	Model         ModelOptions
}

// VectorizerOptions configures TF-IDF fitting.
type VectorizerOptions struct {
	NgramMin    int
	NgramMax    int
	MaxFeatures int
	MinDF       int
	LinearTF    bool
}

// ModelOptions configures logistic regression training.
type ModelOptions struct {
	C            float64
	MaxIter      int
	LearningRate float64
	Tolerance    float64
}

func (o Options) withDefaults() Options {
	if o.IntentsPath == "" {
		o.IntentsPath = DefaultIntentsPath
	}
	if o.ModelDir == "" {
		o.ModelDir = DefaultModelDir
	}
	if o.HighThreshold <= 0 {
		o.HighThreshold = DefaultHighThreshold
	}
	if o.NoiseFloor <= 0 {
		o.NoiseFloor = DefaultNoiseFloor
	}
	o.Vectorizer = o.Vectorizer.withDefaults()
	o.Model = o.Model.withDefaults()
	return o
}

func (o VectorizerOptions) withDefaults() VectorizerOptions {
	if o.NgramMin <= 0 {
		o.NgramMin = DefaultNgramMin
	}
	if o.NgramMax < o.NgramMin {
		o.NgramMax = DefaultNgramMax
	}
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = DefaultMaxFeatures
	}
	if o.MinDF <= 0 {
		o.MinDF = DefaultMinDF
	}
	return o
}

func (o ModelOptions) withDefaults() ModelOptions {
	if o.C <= 0 {
		o.C = DefaultC
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.LearningRate <= 0 {
		o.LearningRate = DefaultLearningRate
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}
