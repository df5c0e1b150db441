package intent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"bankbot/internal/metrics"
	"bankbot/pkg/log"
)

// Classifier scores utterances against the trained intent set.
//
// The live artifact sits behind an atomic pointer. Inference never touches
// disk once an artifact is cached; training builds a complete artifact,
// persists it and only then swaps the pointer and bumps the generation.
type Classifier struct {
	l       log.Logger
	opts    Options
	dataset *DatasetStore
	store   *artifactStore

	current    atomic.Pointer[Artifact]
	generation atomic.Uint64
	loadMu     sync.Mutex
	trainMu    sync.Mutex
}

// New creates a Classifier. No artifact is loaded until first use.
func New(l log.Logger, opts Options) *Classifier {
	opts = opts.withDefaults()
	return &Classifier{
		l:       l,
		opts:    opts,
		dataset: NewDatasetStore(l, opts.IntentsPath),
		store:   newArtifactStore(opts.ModelDir),
	}
}

// Dataset returns the training-data store backing this classifier.
func (c *Classifier) Dataset() *DatasetStore {
	return c.dataset
}

// Generation increases every time a new artifact becomes live.
func (c *Classifier) Generation() uint64 {
	return c.generation.Load()
}

// Version returns the live artifact version, or "" if none is cached.
func (c *Classifier) Version() string {
	if a := c.current.Load(); a != nil {
		return a.Version
	}
	return ""
}

// Classify predicts the intent of text. It never returns an error: a
// missing model or a failed inference yields Unknown with Error set.
func (c *Classifier) Classify(ctx context.Context, text string) Prediction {
	start := time.Now()
	defer func() { metrics.ClassifierDuration.Observe(time.Since(start).Seconds()) }()

	art, err := c.artifact(ctx)
	if errors.Is(err, ErrModelNotTrained) {
		metrics.ClassifierPredictions.WithLabelValues(metrics.StatusUnknown).Inc()
		return unknownPrediction(ErrMsgModelNotTrained)
	}
	if err != nil {
		c.l.Errorf(ctx, "%s: load artifact: %v", LogPrefixClassify, err)
		metrics.ClassifierPredictions.WithLabelValues(metrics.StatusUnknown).Inc()
		return unknownPrediction(ErrMsgClassificationError + err.Error())
	}

	probs, err := art.predict(text)
	if err != nil {
		c.l.Errorf(ctx, "%s: predict: %v", LogPrefixClassify, err)
		metrics.ClassifierPredictions.WithLabelValues(metrics.StatusUnknown).Inc()
		return unknownPrediction(ErrMsgClassificationError + err.Error())
	}

	scores, best := applyConfidencePolicy(probs, c.opts.HighThreshold, c.opts.NoiseFloor)
	all := make([]Score, len(scores))
	for i, s := range scores {
		all[i] = Score{Intent: art.Labels.decode(i), Confidence: s}
	}

	metrics.ClassifierPredictions.WithLabelValues(metrics.StatusOK).Inc()
	return Prediction{
		Intent:     all[best].Intent,
		Confidence: all[best].Confidence,
		AllIntents: all,
	}
}

// PredictMulti scores each clause of text separately and reports the
// intents that win at least one clause, normalized and sorted by
// confidence. Clauses are split on "and", "?", "." and ",".
func (c *Classifier) PredictMulti(ctx context.Context, text string) ([]Score, error) {
	art, err := c.artifact(ctx)
	if err != nil {
		return nil, err
	}

	classes := len(art.Labels.Classes)
	sums := make([]float64, classes)
	winners := make([]bool, classes)
	for _, clause := range Clauses(text) {
		probs, err := art.predict(clause)
		if err != nil {
			return nil, err
		}
		best := 0
		for k, p := range probs {
			sums[k] += p
			if p > probs[best] {
				best = k
			}
		}
		winners[best] = true
	}

	var total float64
	for k := range sums {
		if !winners[k] {
			sums[k] = 0
		}
		total += sums[k]
	}
	if total == 0 {
		return []Score{}, nil
	}

	var out []Score
	for k, s := range sums {
		if s > 0 {
			out = append(out, Score{Intent: art.Labels.decode(k), Confidence: round2(s / total)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out, nil
}

// Train fits a new artifact from the training-data store and makes it live.
func (c *Classifier) Train(ctx context.Context) (TrainOutput, error) {
	c.trainMu.Lock()
	defer c.trainMu.Unlock()

	intents, err := c.dataset.Load(ctx)
	if err != nil {
		c.l.Errorf(ctx, "%s: load training data: %v", LogPrefixTrain, err)
		return TrainOutput{}, err
	}
	return c.fitAndPublish(ctx, intents)
}

// Retrain replaces the training-data store with intents and trains on it.
// The new artifact is fully built before anything is written, and
// concurrent Classify calls keep using the previous artifact until the swap.
func (c *Classifier) Retrain(ctx context.Context, intents []Intent) (TrainOutput, error) {
	c.trainMu.Lock()
	defer c.trainMu.Unlock()

	out, err := c.retrain(ctx, intents)
	if err != nil {
		metrics.RetrainTotal.WithLabelValues(metrics.ResultFailure).Inc()
		c.l.Errorf(ctx, "%s: %v", LogPrefixRetrain, err)
		return TrainOutput{}, err
	}
	metrics.RetrainTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return out, nil
}

func (c *Classifier) retrain(ctx context.Context, intents []Intent) (TrainOutput, error) {
	if err := ValidateIntents(intents); err != nil {
		return TrainOutput{}, err
	}
	art, out, err := c.fit(ctx, intents)
	if err != nil {
		return TrainOutput{}, err
	}
	prev, err := c.dataset.snapshot()
	if err != nil {
		return TrainOutput{}, err
	}
	if err := c.dataset.Save(ctx, intents); err != nil {
		return TrainOutput{}, err
	}
	if err := c.publish(ctx, art); err != nil {
		if rerr := c.dataset.restore(prev); rerr != nil {
			c.l.Errorf(ctx, "%s: restore training data: %v", LogPrefixRetrain, rerr)
		}
		return TrainOutput{}, err
	}
	return out, nil
}

// Reload drops the cached artifact and reads the live one from disk. Use it
// after another process has trained.
func (c *Classifier) Reload(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	art, err := c.store.load()
	if err != nil {
		c.l.Warnf(ctx, "%s: %v", LogPrefixReload, err)
		return err
	}
	c.swap(art)
	c.l.Infof(ctx, "%s: loaded version %s", LogPrefixReload, art.Version)
	return nil
}

// LoadIntents returns the training data, or an empty list if it is missing
// or unreadable.
func (c *Classifier) LoadIntents(ctx context.Context) []Intent {
	return c.dataset.LoadOrEmpty(ctx)
}

// SaveIntents replaces the training data without retraining.
func (c *Classifier) SaveIntents(ctx context.Context, intents []Intent) error {
	return c.dataset.Save(ctx, intents)
}

// artifact returns the cached artifact, loading it once from disk. A missing
// model is not cached so a later training run is picked up.
func (c *Classifier) artifact(ctx context.Context) (*Artifact, error) {
	if a := c.current.Load(); a != nil {
		return a, nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if a := c.current.Load(); a != nil {
		return a, nil
	}

	art, err := c.store.load()
	if err != nil {
		return nil, err
	}
	c.swap(art)
	c.l.Infof(ctx, "%s: loaded version %s", LogPrefixClassify, art.Version)
	return art, nil
}

func (c *Classifier) fitAndPublish(ctx context.Context, intents []Intent) (TrainOutput, error) {
	art, out, err := c.fit(ctx, intents)
	if err != nil {
		return TrainOutput{}, err
	}
	if err := c.publish(ctx, art); err != nil {
		return TrainOutput{}, err
	}
	return out, nil
}

// fit builds an artifact in memory. Texts are lowercased by the analyzer.
func (c *Classifier) fit(ctx context.Context, intents []Intent) (*Artifact, TrainOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, trainTimeout)
	defer cancel()

	var texts, labels []string
	for _, in := range intents {
		for _, ex := range in.Examples {
			texts = append(texts, ex)
			labels = append(labels, in.Name)
		}
	}
	if len(texts) == 0 {
		return nil, TrainOutput{}, ErrEmptyTrainingSet
	}

	enc := fitLabelEncoder(labels)
	if len(enc.Classes) < 2 {
		return nil, TrainOutput{}, ErrTooFewIntents
	}

	vec := fitVectorizer(texts, c.opts.Vectorizer)
	xs := make([]sparseVector, len(texts))
	ys := make([]int, len(texts))
	for i, t := range texts {
		xs[i] = vec.transform(t)
		y, err := enc.encode(labels[i])
		if err != nil {
			return nil, TrainOutput{}, err
		}
		ys[i] = y
	}

	model, err := trainModel(ctx, xs, ys, len(enc.Classes), vec.Features(), c.opts.Model)
	if err != nil {
		return nil, TrainOutput{}, fmt.Errorf("train model: %w", err)
	}

	art := &Artifact{
		Version:    newVersion(),
		TrainedAt:  time.Now().UTC(),
		Vectorizer: vec,
		Model:      model,
		Labels:     enc,
	}
	c.l.Infof(ctx, "%s: fitted %d examples, %d intents, %d features", LogPrefixTrain, len(texts), len(enc.Classes), vec.Features())
	return art, TrainOutput{
		Version:   art.Version,
		Intents:   len(enc.Classes),
		Examples:  len(texts),
		Features:  vec.Features(),
		TrainedAt: art.TrainedAt,
	}, nil
}

// publish persists art and swaps it in.
func (c *Classifier) publish(ctx context.Context, art *Artifact) error {
	previous, err := c.store.save(art)
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	c.loadMu.Lock()
	c.swap(art)
	c.loadMu.Unlock()

	if previous != "" && previous != art.Version {
		if err := c.store.prune(art.Version); err != nil {
			c.l.Warnf(ctx, "%s: prune old versions: %v", LogPrefixSaveArtifact, err)
		}
	}
	return nil
}

func (c *Classifier) swap(art *Artifact) {
	c.current.Store(art)
	metrics.ClassifierGeneration.Set(float64(c.generation.Add(1)))
}

func unknownPrediction(msg string) Prediction {
	return Prediction{
		Intent:     Unknown,
		Confidence: 0,
		AllIntents: []Score{},
		Error:      msg,
	}
}
