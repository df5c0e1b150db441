package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogueTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankbot_dialogue_turns_total",
			Help: "Total number of dialogue turns by resolved intent",
		},
		[]string{"intent"},
	)

	ClassifierPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankbot_classifier_predictions_total",
			Help: "Total number of intent predictions by outcome",
		},
		[]string{"status"},
	)

	ClassifierDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bankbot_classifier_duration_seconds",
			Help:    "Duration of a single intent prediction in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)

	ClassifierGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bankbot_classifier_generation",
			Help: "Generation counter of the in-memory classifier artifact",
		},
	)

	RetrainTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankbot_classifier_retrain_total",
			Help: "Total number of retraining runs by result",
		},
		[]string{"result"},
	)

	LLMFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankbot_llm_fallback_total",
			Help: "Total number of language model fallback calls by result",
		},
		[]string{"result"},
	)

	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankbot_transfers_total",
			Help: "Total number of fund transfers by result",
		},
		[]string{"result"},
	)
)

// Label values shared by the collectors above.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	StatusOK      = "ok"
	StatusUnknown = "unknown"
)
