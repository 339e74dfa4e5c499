// Package metrics holds the Prometheus instruments for extraction and search.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metadex metric name.
const Namespace = "metadex"

// Extraction and search Prometheus metrics.
var (
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "extractions_total",
			Help:      "Documents processed by extraction strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	ExtractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Per-document extraction duration in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"strategy"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Searches executed by mode",
		},
		[]string{"mode"}, // "filtered" / "unfiltered"
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_results",
			Help:      "Number of documents returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"mode"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ExtractionsTotal,
		ExtractionDuration,
		SearchesTotal,
		SearchResults,
	}
}

// Register adds every metric to reg. Collectors already registered with reg
// are skipped, so calling Register twice is harmless.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveExtraction records one document passing through a strategy.
func ObserveExtraction(strategy, outcome string, elapsed time.Duration) {
	ExtractionsTotal.WithLabelValues(strategy, outcome).Inc()
	ExtractionDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

// ObserveSearch records one search and its result count.
func ObserveSearch(mode string, results int) {
	SearchesTotal.WithLabelValues(mode).Inc()
	SearchResults.WithLabelValues(mode).Observe(float64(results))
}
