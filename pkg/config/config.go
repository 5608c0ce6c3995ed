package config

import "time"

// Config is the root configuration structure for Courier.
// It contains all configuration sections for the HTTP server, the relay
// endpoint, the upstream model API, secret resolution, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and TLS settings.
	Server ServerConfig `yaml:"server"`

	// Relay contains configuration for the chat relay endpoint including
	// the allowed browser origin and the system instruction.
	Relay RelayConfig `yaml:"relay"`

	// Upstream contains configuration for the upstream model API call.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Secrets contains configuration for credential resolution.
	Secrets SecretsConfig `yaml:"secrets"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must leave room for the upstream call budget.
	// Default: 15s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// If requests are still in-flight after this timeout, the server will
	// force shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values, including the
	// request line. It does not limit the size of the request body.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// TLS contains TLS settings for the listener.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS settings for the HTTP listener.
type TLSConfig struct {
	// Enabled controls whether the server terminates TLS itself.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the PEM-encoded server certificate.
	// Required when Enabled is true.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded private key.
	// Required when Enabled is true.
	KeyFile string `yaml:"key_file"`
}

// RelayConfig contains configuration for the chat relay endpoint.
type RelayConfig struct {
	// Path is the HTTP path the relay endpoint is mounted on.
	// Default: "/chat"
	Path string `yaml:"path"`

	// AllowedOrigin is the single browser origin permitted to call the
	// relay. It is echoed verbatim in the Access-Control-Allow-Origin
	// header of every response.
	// Required.
	AllowedOrigin string `yaml:"allowed_origin"`

	// SystemInstruction is the fixed instruction sent as the first input
	// entry of every upstream call. Callers cannot influence it.
	// Default: a concise portfolio-assistant instruction.
	SystemInstruction string `yaml:"system_instruction"`

	// MaxBodyBytes limits how many bytes of the request body are read.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// UpstreamConfig contains configuration for the upstream model API.
type UpstreamConfig struct {
	// Endpoint is the URL of the upstream responses API.
	// Default: "https://api.openai.com/v1/responses"
	Endpoint string `yaml:"endpoint"`

	// Model is the model identifier sent with every request.
	// Default: "gpt-4.1-mini"
	Model string `yaml:"model"`

	// Timeout is the total budget for a single upstream call. When it
	// elapses the in-flight request is aborted.
	// Default: 8s
	Timeout time.Duration `yaml:"timeout"`

	// APIKeySecret is the name of the secret holding the upstream API key.
	// The key itself never appears in configuration files; it is resolved
	// through the secrets providers at call time.
	// Default: "openai-api-key"
	APIKeySecret string `yaml:"api_key_secret"`

	// MaxIdleConns is the connection pool size across all hosts.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the connection pool size per host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept in the pool.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// SecretsConfig contains configuration for credential resolution.
type SecretsConfig struct {
	// Sources lists the secret providers to consult, in order.
	// Options: "env" (COURIER_SECRET_* environment variables),
	// "file" (one file per secret in a directory, Kubernetes-style).
	// Default: ["env"]
	Sources []string `yaml:"sources"`

	// Directory is the directory containing secret files, one file per
	// secret named after the secret.
	// Required when Sources contains "file".
	Directory string `yaml:"directory"`

	// Watch enables reloading file-based secrets when they change on disk.
	// Only meaningful when Sources contains "file".
	// Default: false
	Watch bool `yaml:"watch"`

	// CacheTTL is how long resolved secrets are cached before the
	// providers are consulted again.
	// Default: 5m
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// RefreshSchedule is an optional cron expression for proactively
	// re-resolving cached secrets in the background (e.g. "@every 10m",
	// "*/5 * * * *"). Empty disables scheduled refresh.
	// Default: "" (disabled)
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	//
	// Credential redaction is not configurable: log output always masks
	// bearer tokens and API key material.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "courier"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "relay"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for request
	// duration (seconds). The default range brackets the 8s upstream
	// budget.
	// Default: [0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 4.0, 8.0, 10.0]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
