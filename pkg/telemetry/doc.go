// Package telemetry provides observability for Courier.
//
// # Overview
//
// The telemetry package implements structured logging and Prometheus
// metrics. Because the relay masks every pipeline failure as a 200
// response with an empty reply, responses carry no failure signal at
// all; logs and metrics are the only place an operator can see what
// actually happened.
//
// # Components
//
//   - logging: slog-based structured logging with credential redaction
//   - metrics: Prometheus metrics for relay and upstream outcomes
//
// # Usage
//
//	// Initialize logging from configuration
//	logger, err := logging.Init(&cfg.Telemetry.Logging)
//
//	// Create the metrics collector with a private registry
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// Record an upstream call outcome
//	collector.RecordUpstream("timeout", elapsed)
//
// # Credential Protection
//
// Log output always masks credential material (bearer tokens, api key
// values, password assignments). Redaction is built into the logging
// handler and is not configurable, so no logging configuration can
// leak the upstream API key.
package telemetry
