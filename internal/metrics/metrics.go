// Package metrics defines Prometheus metrics for devlog.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devlog"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Probe metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded, 0 otherwise.",
	})
)

// Listing metrics.
var (
	ListingRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_requests_total",
		Help:      "Total number of post listing queries, by whether a filter was applied.",
	}, []string{"filtered"})

	ListingStoreErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_store_errors_total",
		Help:      "Total number of listing queries that failed in the store.",
	})

	ListingResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "listing_results",
		Help:      "Total matching posts per listing query.",
		Buckets:   []float64{0, 1, 6, 12, 24, 48, 96, 192},
	})
)

// Authoring metrics.
var (
	PostsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_published_total",
		Help:      "Total number of posts published.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts by result.",
	}, []string{"result"})

	DraftsPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drafts_purged_total",
		Help:      "Total number of stale drafts removed by the purge job.",
	})
)

// ObserveListing records the outcome of one listing query.
func ObserveListing(filtered bool, total int, err error) {
	ListingRequestsTotal.WithLabelValues(strconv.FormatBool(filtered)).Inc()
	if err != nil {
		ListingStoreErrorsTotal.Inc()
		return
	}
	ListingResults.Observe(float64(total))
}
