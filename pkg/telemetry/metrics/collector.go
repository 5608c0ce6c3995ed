package metrics

import (
	"time"

	"relaykit/courier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector orchestrates all Prometheus metrics for the relay.
// It manages metric registration and provides a unified interface for
// recording metrics across components.
//
// A nil *Collector is a valid no-op recorder, so transports that have no
// scrape endpoint (the Lambda entrypoint) can skip metrics entirely
// without guarding every call site.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	relayMetrics *RelayMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "courier",
//		Subsystem: "relay",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "courier"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "relay"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// The upstream call is capped at 8s, so the high buckets sit
		// just above the timeout to separate aborts from slow successes.
		cfg.RequestDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 4.0, 8.0, 10.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.relayMetrics = NewRelayMetrics(cfg, registry)

	return c
}

// RecordRequest records metrics for a completed relay request.
//
// Parameters:
//   - method: HTTP method of the inbound request
//   - status: HTTP status code of the relay response
//   - duration: total handling duration
func (c *Collector) RecordRequest(method string, status int, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.relayMetrics.RecordRequest(method, status, duration)
}

// RecordUpstream records the outcome of one upstream call.
//
// Parameters:
//   - outcome: "success" or a failure kind ("timeout", "http_error", ...)
//   - duration: upstream call duration
func (c *Collector) RecordUpstream(outcome string, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.relayMetrics.RecordUpstream(outcome, duration)
}

// RecordMaskedFailure records a pipeline failure that was converted into
// the masked success response.
//
// Parameters:
//   - kind: failure classification ("timeout", "http_error", "parse_error",
//     "request_parse_error", "config_error", "panic", "unknown")
func (c *Collector) RecordMaskedFailure(kind string) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.relayMetrics.RecordMaskedFailure(kind)
}

// RecordEmptyReply records a successful upstream call that produced no
// usable text.
func (c *Collector) RecordEmptyReply() {
	if c == nil || !c.config.Enabled {
		return
	}

	c.relayMetrics.RecordEmptyReply()
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}
