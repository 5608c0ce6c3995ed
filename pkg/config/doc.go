// Package config provides configuration management for Courier.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
//  3. From the environment alone, for serverless deployments:
//     cfg, err := config.LoadFromEnv()
//
// For local development, LoadDotEnv reads a .env file into the process
// environment before loading; values already set in the environment are
// never overwritten.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention COURIER_SECTION_FIELD.
// For example:
//
//   - COURIER_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - COURIER_RELAY_ALLOWED_ORIGIN overrides relay.allowed_origin
//   - COURIER_UPSTREAM_MODEL overrides upstream.model
//   - COURIER_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Credentials
//
// The upstream API key is never part of this configuration. Config carries
// only the name of the secret (upstream.api_key_secret); the secrets package
// resolves the value at call time. This keeps credential material out of
// configuration files, process listings, and logs.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., the relay's allowed origin)
//   - Range validation (e.g., timeouts must be positive)
//   - Format validation (e.g., the upstream endpoint must be an http(s) URL)
//   - Logical validation (e.g., the file secrets source requires a path)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - relay.allowed_origin: allowed origin is required
//	  - upstream.model: model is required
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	server:
//	  listen_address: "0.0.0.0:8080"
//
//	relay:
//	  path: "/chat"
//	  allowed_origin: "https://www.example.com"
//	  system_instruction: "You answer questions about the example site."
//
//	upstream:
//	  endpoint: "https://api.openai.com/v1/responses"
//	  model: "gpt-4.1-mini"
//	  timeout: "8s"
//	  api_key_secret: "openai-api-key"
//
//	secrets:
//	  sources: ["env", "file"]
//	  directory: "/etc/courier/secrets"
//	  watch: true
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  metrics:
//	    enabled: true
//
// # Thread Safety
//
// Loaded Config values are plain data and safe for concurrent reads. The
// package keeps no global state: configuration is passed explicitly to the
// components that need it.
package config
