package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Encoder metrics
var (
	EncoderInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gif_shrink_encoder_invocations_total",
			Help: "Total number of external encoder invocations",
		},
		[]string{"mode", "status"},
	)

	EncoderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gif_shrink_encoder_duration_seconds",
			Help:    "External encoder invocation duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"mode"},
	)
)

// Search metrics
var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gif_shrink_searches_total",
			Help: "Total number of compression searches by outcome",
		},
		[]string{"outcome"}, // "target_met", "best_effort", "noop", "error"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gif_shrink_search_duration_seconds",
			Help:    "End-to-end compression search duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	StrategiesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gif_shrink_strategies_generated_total",
			Help: "Total number of frame-subsampling strategies generated",
		},
	)

	CandidatesProducedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gif_shrink_candidates_produced_total",
			Help: "Total number of candidate files produced by lossy refinement",
		},
	)
)

// Artifact metrics
var (
	ArtifactsReleasedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gif_shrink_artifacts_released_total",
			Help: "Total number of temporary artifacts deleted",
		},
	)
)
