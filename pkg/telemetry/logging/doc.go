// Package logging provides structured logging with credential redaction.
//
// # Overview
//
// The logging package builds Go's standard log/slog loggers configured from
// the telemetry section:
//   - Structured logging with JSON and text formats
//   - Unconditional redaction of credentials, tokens, and email addresses
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Build and install the process default logger
//	logger, err := logging.Init(&cfg.Telemetry.Logging)
//	if err != nil {
//	    return err
//	}
//
//	// Log structured data
//	logger.Info("request completed",
//	    "request_id", "req-123",
//	    "api_key", "sk-abc123",  // Automatically redacted
//	    "duration_ms", 1234,
//	)
//
// # Redaction
//
// Every handler built by this package is wrapped in RedactingHandler. There
// is no configuration that disables it. Redaction applies to log messages,
// attribute values, grouped attributes, and error values:
//
//   - API keys: sk-abc123xyz → sk-***
//   - Bearer tokens: Bearer eyJhb... → Bearer ***
//   - Password assignments: password=hunter2 → password: ***
//   - Emails: user@example.com → ***@example.com
//   - Values under sensitive keys (token, secret, authorization, ...) are
//     masked to a 4-character hint regardless of content
package logging
