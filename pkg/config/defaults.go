package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Relay defaults
	DefaultRelayPath    = "/chat"
	DefaultMaxBodyBytes = int64(1048576) // 1MB

	// DefaultSystemInstruction is the instruction sent with every upstream
	// call when none is configured. Deployments embed this relay in a site
	// chat widget, so the default keeps answers short and on-topic.
	DefaultSystemInstruction = "You are a helpful assistant embedded in a personal portfolio website. " +
		"Answer questions about the site owner's background, projects, and experience. " +
		"Keep answers short, friendly, and factual."

	// Upstream defaults
	DefaultUpstreamEndpoint    = "https://api.openai.com/v1/responses"
	DefaultUpstreamModel       = "gpt-4.1-mini"
	DefaultUpstreamTimeout     = 8 * time.Second
	DefaultAPIKeySecret        = "openai-api-key"
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second

	// Secrets defaults
	DefaultSecretsCacheTTL = 5 * time.Minute

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
	DefaultMetricsNS      = "courier"
	DefaultMetricsSub     = "relay"
)

// DefaultSecretsSources returns the default secret provider chain.
func DefaultSecretsSources() []string {
	return []string{"env"}
}

// DefaultRequestDurationBuckets returns the default histogram buckets for
// request duration in seconds.
func DefaultRequestDurationBuckets() []float64 {
	return []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 4.0, 8.0, 10.0}
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Relay defaults. AllowedOrigin has no default: it must name the one
	// site the widget is embedded in.
	if cfg.Relay.Path == "" {
		cfg.Relay.Path = DefaultRelayPath
	}
	if cfg.Relay.SystemInstruction == "" {
		cfg.Relay.SystemInstruction = DefaultSystemInstruction
	}
	if cfg.Relay.MaxBodyBytes == 0 {
		cfg.Relay.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Upstream defaults
	if cfg.Upstream.Endpoint == "" {
		cfg.Upstream.Endpoint = DefaultUpstreamEndpoint
	}
	if cfg.Upstream.Model == "" {
		cfg.Upstream.Model = DefaultUpstreamModel
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstream.APIKeySecret == "" {
		cfg.Upstream.APIKeySecret = DefaultAPIKeySecret
	}
	if cfg.Upstream.MaxIdleConns == 0 {
		cfg.Upstream.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Upstream.MaxIdleConnsPerHost == 0 {
		cfg.Upstream.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.Upstream.IdleConnTimeout == 0 {
		cfg.Upstream.IdleConnTimeout = DefaultIdleConnTimeout
	}

	// Secrets defaults
	if len(cfg.Secrets.Sources) == 0 {
		cfg.Secrets.Sources = DefaultSecretsSources()
	}
	if cfg.Secrets.CacheTTL == 0 {
		cfg.Secrets.CacheTTL = DefaultSecretsCacheTTL
	}

	applyTelemetryDefaults(cfg)
}

// applyTelemetryDefaults applies default values to telemetry configuration.
func applyTelemetryDefaults(cfg *Config) {
	logging := &cfg.Telemetry.Logging
	if logging.Level == "" {
		logging.Level = DefaultLoggingLevel
	}
	if logging.Format == "" {
		logging.Format = DefaultLoggingFormat
	}

	metrics := &cfg.Telemetry.Metrics

	// Set enabled default (true)
	if !metrics.Enabled {
		// Check if any metrics fields are set - if so, user explicitly
		// disabled metrics. Otherwise, use default.
		hasAnyConfig := metrics.Path != "" ||
			metrics.Namespace != "" ||
			metrics.Subsystem != "" ||
			len(metrics.RequestDurationBuckets) > 0

		if !hasAnyConfig {
			metrics.Enabled = DefaultMetricsEnabled
		}
	}

	if metrics.Path == "" {
		metrics.Path = DefaultMetricsPath
	}
	if metrics.Namespace == "" {
		metrics.Namespace = DefaultMetricsNS
	}
	if metrics.Subsystem == "" {
		metrics.Subsystem = DefaultMetricsSub
	}
	if len(metrics.RequestDurationBuckets) == 0 {
		metrics.RequestDurationBuckets = DefaultRequestDurationBuckets()
	}
}
