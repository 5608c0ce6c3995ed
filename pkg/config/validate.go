package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateRelay(&cfg.Relay)...)
	errs = append(errs, validateUpstream(&cfg.Upstream)...)
	errs = append(errs, validateSecrets(&cfg.Secrets)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateServer validates server configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}

	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" {
			errs = append(errs, FieldError{
				Field:   "server.tls.cert_file",
				Message: "certificate file is required when TLS is enabled",
			})
		}
		if cfg.TLS.KeyFile == "" {
			errs = append(errs, FieldError{
				Field:   "server.tls.key_file",
				Message: "key file is required when TLS is enabled",
			})
		}
	}

	return errs
}

// validateRelay validates relay endpoint configuration.
func validateRelay(cfg *RelayConfig) []FieldError {
	var errs []FieldError

	if cfg.Path == "" || !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "relay.path",
			Message: "path must start with /",
		})
	}

	// The relay serves exactly one site. A wildcard origin would expose
	// the upstream credential to any page on the internet.
	if cfg.AllowedOrigin == "" {
		errs = append(errs, FieldError{
			Field:   "relay.allowed_origin",
			Message: "allowed origin is required",
		})
	} else if cfg.AllowedOrigin != "*" {
		if u, err := url.Parse(cfg.AllowedOrigin); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   "relay.allowed_origin",
				Message: fmt.Sprintf("invalid origin %q: must be scheme://host[:port]", cfg.AllowedOrigin),
			})
		}
	}

	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, FieldError{
			Field:   "relay.max_body_bytes",
			Message: "max body bytes must be positive",
		})
	}

	return errs
}

// validateUpstream validates upstream API configuration.
func validateUpstream(cfg *UpstreamConfig) []FieldError {
	var errs []FieldError

	if cfg.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.endpoint",
			Message: "endpoint is required",
		})
	} else if u, err := url.Parse(cfg.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.endpoint",
			Message: fmt.Sprintf("invalid endpoint URL %q", cfg.Endpoint),
		})
	}

	if cfg.Model == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.model",
			Message: "model is required",
		})
	}

	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "upstream.timeout",
			Message: "timeout must be positive",
		})
	}

	if cfg.APIKeySecret == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.api_key_secret",
			Message: "api key secret name is required",
		})
	}

	return errs
}

// validateSecrets validates secrets configuration.
func validateSecrets(cfg *SecretsConfig) []FieldError {
	var errs []FieldError

	hasFile := false
	for i, source := range cfg.Sources {
		switch source {
		case "env":
		case "file":
			hasFile = true
		default:
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("secrets.sources[%d]", i),
				Message: fmt.Sprintf("unknown source %q: must be \"env\" or \"file\"", source),
			})
		}
	}

	if hasFile && cfg.Directory == "" {
		errs = append(errs, FieldError{
			Field:   "secrets.directory",
			Message: "directory is required when the file source is configured",
		})
	}
	if cfg.Watch && !hasFile {
		errs = append(errs, FieldError{
			Field:   "secrets.watch",
			Message: "watch requires the file source",
		})
	}

	if cfg.CacheTTL < 0 {
		errs = append(errs, FieldError{
			Field:   "secrets.cache_ttl",
			Message: "cache TTL must be non-negative",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q: must be debug, info, warn, or error", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q: must be json or text", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}
