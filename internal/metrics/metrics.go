package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream calls.
const (
	OutcomeOK          = "ok"
	OutcomeHTTPError   = "http_error"
	OutcomeTimeout     = "timeout"
	OutcomeUnavailable = "unavailable"
	OutcomeCanceled    = "canceled"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of outbound requests to event sources",
		},
		[]string{"source", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Outbound request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	eventsNormalizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_normalized_total",
			Help: "Total number of source records converted to canonical events",
		},
		[]string{"source"},
	)
)

// RecordUpstream observes one outbound call.
func RecordUpstream(source, outcome string, d time.Duration) {
	upstreamRequestsTotal.WithLabelValues(source, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordNormalized counts canonical events produced for a source.
func RecordNormalized(source string, n int) {
	eventsNormalizedTotal.WithLabelValues(source).Add(float64(n))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
