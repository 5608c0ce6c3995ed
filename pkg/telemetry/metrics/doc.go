// Package metrics provides Prometheus metrics collection for the relay.
//
// # Overview
//
// The metrics package tracks relay request handling and upstream call
// outcomes. Because every pipeline failure is masked into a successful
// response for the caller, these metrics are the primary place where
// failures remain visible to operators.
//
// # Metrics
//
//   - courier_relay_requests_total{method,status}: Handled requests
//   - courier_relay_request_duration_seconds{method}: Handling duration
//   - courier_relay_upstream_requests_total{outcome}: Upstream calls by
//     outcome ("success", "timeout", "http_error", "parse_error", ...)
//   - courier_relay_upstream_request_duration_seconds{outcome}: Upstream
//     call duration
//   - courier_relay_masked_failures_total{kind}: Failures converted into
//     the empty-reply response
//   - courier_relay_empty_replies_total: Successful upstream calls that
//     produced no usable text
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordRequest("POST", 200, 850*time.Millisecond)
//	collector.RecordUpstream("success", 820*time.Millisecond)
//	collector.RecordMaskedFailure("timeout")
//
//	http.Handle("/metrics", collector.Handler())
//
// A nil *Collector is a valid no-op recorder; the Lambda transport passes
// nil since there is no scrape endpoint in that deployment.
//
// # Histogram Buckets
//
// The default duration buckets bracket the 8 second upstream timeout:
//
//	0.05s, 0.1s, 0.25s, 0.5s, 1s, 2s, 4s, 8s, 10s
//
// # Cardinality
//
// Label values are bounded: methods are folded into a fixed set plus
// "other", statuses come from the relay's fixed response set, and outcome
// and kind values are drawn from the failure classification.
package metrics
