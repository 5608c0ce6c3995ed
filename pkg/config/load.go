package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	cfg, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention COURIER_SECTION_FIELD (e.g., COURIER_SERVER_LISTEN_ADDRESS).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
//
// Validation runs once, after the overrides, so a required field such as
// the allowed origin may live in the environment instead of the file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// readConfigFile reads and parses a YAML configuration file without
// applying defaults or validating.
func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromEnv builds a configuration entirely from defaults and environment
// variables, without a configuration file. This is the loading path for
// serverless deployments where all settings arrive through the execution
// environment.
func LoadFromEnv() (*Config, error) {
	var cfg Config

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// With no arguments it loads "./.env" if present; a missing default file is
// not an error. Explicitly named files must exist.
//
// Values already present in the environment are never overwritten, so real
// deployment settings always win over local development files.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format COURIER_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("COURIER_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("COURIER_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("COURIER_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("COURIER_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}
	if val := os.Getenv("COURIER_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("COURIER_SERVER_MAX_HEADER_BYTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.MaxHeaderBytes = i
		}
	}
	if val := os.Getenv("COURIER_SERVER_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.TLS.Enabled = b
		}
	}
	if val := os.Getenv("COURIER_SERVER_TLS_CERT_FILE"); val != "" {
		cfg.Server.TLS.CertFile = val
	}
	if val := os.Getenv("COURIER_SERVER_TLS_KEY_FILE"); val != "" {
		cfg.Server.TLS.KeyFile = val
	}

	// Relay overrides
	if val := os.Getenv("COURIER_RELAY_PATH"); val != "" {
		cfg.Relay.Path = val
	}
	if val := os.Getenv("COURIER_RELAY_ALLOWED_ORIGIN"); val != "" {
		cfg.Relay.AllowedOrigin = val
	}
	if val := os.Getenv("COURIER_RELAY_SYSTEM_INSTRUCTION"); val != "" {
		cfg.Relay.SystemInstruction = val
	}
	if val := os.Getenv("COURIER_RELAY_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Relay.MaxBodyBytes = i
		}
	}

	// Upstream overrides
	if val := os.Getenv("COURIER_UPSTREAM_ENDPOINT"); val != "" {
		cfg.Upstream.Endpoint = val
	}
	if val := os.Getenv("COURIER_UPSTREAM_MODEL"); val != "" {
		cfg.Upstream.Model = val
	}
	if val := os.Getenv("COURIER_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if val := os.Getenv("COURIER_UPSTREAM_API_KEY_SECRET"); val != "" {
		cfg.Upstream.APIKeySecret = val
	}
	if val := os.Getenv("COURIER_UPSTREAM_MAX_IDLE_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Upstream.MaxIdleConns = i
		}
	}
	if val := os.Getenv("COURIER_UPSTREAM_MAX_IDLE_CONNS_PER_HOST"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Upstream.MaxIdleConnsPerHost = i
		}
	}
	if val := os.Getenv("COURIER_UPSTREAM_IDLE_CONN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.IdleConnTimeout = d
		}
	}

	// Secrets overrides
	if val := os.Getenv("COURIER_SECRETS_SOURCES"); val != "" {
		sources := strings.Split(val, ",")
		for i := range sources {
			sources[i] = strings.TrimSpace(sources[i])
		}
		cfg.Secrets.Sources = sources
	}
	if val := os.Getenv("COURIER_SECRETS_DIRECTORY"); val != "" {
		cfg.Secrets.Directory = val
	}
	if val := os.Getenv("COURIER_SECRETS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Secrets.Watch = b
		}
	}
	if val := os.Getenv("COURIER_SECRETS_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Secrets.CacheTTL = d
		}
	}
	if val := os.Getenv("COURIER_SECRETS_REFRESH_SCHEDULE"); val != "" {
		cfg.Secrets.RefreshSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("COURIER_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("COURIER_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("COURIER_TELEMETRY_LOGGING_ADD_SOURCE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.AddSource = b
		}
	}
	if val := os.Getenv("COURIER_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("COURIER_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
