package metrics

import (
	"strconv"
	"time"

	"relaykit/courier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayMetrics tracks metrics for relay request handling and upstream calls.
//
// Metrics:
//   - courier_relay_requests_total: Request count by method and status
//   - courier_relay_request_duration_seconds: Request duration histogram
//   - courier_relay_upstream_requests_total: Upstream call count by outcome
//   - courier_relay_upstream_request_duration_seconds: Upstream call duration
//   - courier_relay_masked_failures_total: Failures masked as empty replies
//   - courier_relay_empty_replies_total: Successful calls with no text
type RelayMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec

	maskedFailuresTotal *prometheus.CounterVec
	emptyRepliesTotal   prometheus.Counter
}

// NewRelayMetrics creates and registers relay metrics with the provided registry.
func NewRelayMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RelayMetrics {
	rm := &RelayMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of relay requests processed",
			},
			[]string{"method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of relay request handling in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method"},
		),

		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream calls by outcome",
			},
			[]string{"outcome"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of upstream calls in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"outcome"},
		),

		maskedFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "masked_failures_total",
				Help:      "Total number of failures masked as empty replies",
			},
			[]string{"kind"},
		),

		emptyRepliesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "empty_replies_total",
				Help:      "Total number of successful upstream calls that produced no text",
			},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.upstreamTotal,
		rm.upstreamDuration,
		rm.maskedFailuresTotal,
		rm.emptyRepliesTotal,
	)

	return rm
}

// RecordRequest records one handled relay request.
func (rm *RelayMetrics) RecordRequest(method string, status int, duration time.Duration) {
	normalized := normalizeMethod(method)

	rm.requestsTotal.WithLabelValues(normalized, strconv.Itoa(status)).Inc()
	rm.requestDuration.WithLabelValues(normalized).Observe(duration.Seconds())
}

// RecordUpstream records one upstream call by outcome.
func (rm *RelayMetrics) RecordUpstream(outcome string, duration time.Duration) {
	rm.upstreamTotal.WithLabelValues(outcome).Inc()
	rm.upstreamDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordMaskedFailure records a failure converted to the masked response.
func (rm *RelayMetrics) RecordMaskedFailure(kind string) {
	rm.maskedFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordEmptyReply records a successful call that produced no text.
func (rm *RelayMetrics) RecordEmptyReply() {
	rm.emptyRepliesTotal.Inc()
}

// normalizeMethod folds unknown HTTP methods into "other" so arbitrary
// method tokens cannot grow the label space.
func normalizeMethod(method string) string {
	switch method {
	case "GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS":
		return method
	default:
		return "other"
	}
}
