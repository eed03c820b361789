package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/corpuskit/winnow/internal/cleaner"
)

// Drop reasons for the records counter.
const (
	OutcomeKept           = "kept"
	OutcomeLowQuality     = "low_quality"
	OutcomeExactDuplicate = "exact_duplicate"
	OutcomeNearDuplicate  = "near_duplicate"
)

var (
	cleanRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "winnow",
			Name:      "clean_records_total",
			Help:      "Records processed by the cleaning pipeline, by outcome",
		},
		[]string{"outcome"},
	)

	cleanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "winnow",
			Name:      "clean_duration_seconds",
			Help:      "Cleaning pipeline duration per batch in seconds",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60},
		},
	)

	cleanBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "winnow",
			Name:      "clean_batch_size",
			Help:      "Input batch size per cleaning run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// RegisterCleaningMetrics registers cleaning metrics explicitly (no init()).
func RegisterCleaningMetrics() {
	prometheus.MustRegister(cleanRecordsTotal)
	prometheus.MustRegister(cleanDuration)
	prometheus.MustRegister(cleanBatchSize)
}

// ObserveClean records the outcome counts and duration of one pipeline run.
func ObserveClean(stats cleaner.Stats, elapsed time.Duration) {
	cleanRecordsTotal.WithLabelValues(OutcomeKept).Add(float64(stats.Output))
	cleanRecordsTotal.WithLabelValues(OutcomeLowQuality).Add(float64(stats.LowQuality))
	cleanRecordsTotal.WithLabelValues(OutcomeExactDuplicate).Add(float64(stats.ExactDuplicates))
	cleanRecordsTotal.WithLabelValues(OutcomeNearDuplicate).Add(float64(stats.NearDuplicates))
	cleanDuration.Observe(elapsed.Seconds())
	cleanBatchSize.Observe(float64(stats.Input))
}
