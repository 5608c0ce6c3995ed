// Package secrets provides a pluggable framework for loading credentials from multiple sources.
//
// # Overview
//
// The secrets package allows Courier to load its upstream API key (and any other
// credentials) from environment variables or from files mounted into the container,
// without ever placing secret values in configuration files. Secrets are cached in
// memory with a TTL to reduce backend calls.
//
// # Secret Providers
//
// Providers implement the SecretProvider interface and can be chained together
// with priority-based fallback:
//
//   - Environment Variable Provider: Load secrets from environment variables
//   - File-Based Provider: Load secrets from individual files (Kubernetes-style)
//
// # Basic Usage
//
// Create a secret manager with multiple providers:
//
//	import (
//		"context"
//		"time"
//
//		"relaykit/courier/pkg/secrets"
//	)
//
//	// Create providers
//	envProvider := secrets.NewEnvProvider("COURIER_SECRET_")
//	fileProvider, _ := secrets.NewFileProvider("/var/secrets", true)
//
//	// Create manager with a 5 minute cache
//	manager := secrets.NewManager(
//		[]secrets.SecretProvider{envProvider, fileProvider},
//		5*time.Minute,
//	)
//	defer manager.Close()
//
//	// Get a secret
//	apiKey, err := manager.GetSecret(context.Background(), "openai-api-key")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Or build the manager straight from the secrets configuration section:
//
//	manager, err := secrets.NewManagerFromConfig(&cfg.Secrets)
//
// # Environment Variable Provider
//
// The environment variable provider loads secrets from environment variables
// with a prefix:
//
//	provider := secrets.NewEnvProvider("COURIER_SECRET_")
//
//	// Secret name "openai-api-key" maps to env var "COURIER_SECRET_OPENAI_API_KEY"
//	value, err := provider.GetSecret(ctx, "openai-api-key")
//
// Environment variable naming:
//   - Secret name: "openai-api-key"
//   - Env var name: "COURIER_SECRET_OPENAI_API_KEY"
//   - Conversion: uppercase, replace hyphens with underscores, add prefix
//
// # File-Based Provider
//
// The file-based provider loads secrets from individual files in a directory:
//
//	provider, err := secrets.NewFileProvider("/var/secrets", true)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer provider.Close()
//
//	// Secret name "openai-api-key" reads from "/var/secrets/openai-api-key"
//	value, err := provider.GetSecret(ctx, "openai-api-key")
//
// File-based features:
//   - File permissions validation (0600 or 0400 only)
//   - Optional file watching for auto-reload
//   - Kubernetes-style secret mounting support
//   - Automatic cache invalidation on file changes
//
// # Provider Priority
//
// When multiple providers are configured, they are tried in order. The first
// provider that supports the secret and successfully returns a value wins.
//
// # Secret Rotation
//
// Providers that implement RefreshableProvider can reload secrets without
// restart:
//
//	err := manager.Refresh(context.Background())
//
// File-based providers automatically refresh when files change if watching is
// enabled. For scheduled rotation, the Refresher runs manager.Refresh on a cron
// schedule:
//
//	refresher := secrets.NewRefresher(manager, "0 */6 * * *")
//	if err := refresher.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Credential Sources
//
// KeySource binds a manager to a single secret name and resolves it on demand.
// The upstream client reads the credential through this interface once per
// request, so rotated keys take effect without a restart:
//
//	source := secrets.NewKeySource(manager, cfg.Upstream.APIKeySecret)
//	client, err := upstream.NewClient(clientConfig, source)
//
// # Security Considerations
//
// Secret values are protected:
//   - Never logged (secret names are redacted in logs)
//   - Never included in error messages
//   - File permissions validated (0600 or 0400 only)
//   - Cached with TTL to minimize exposure window
//   - Cleared from cache on refresh
//
// # Thread Safety
//
// All components are thread-safe:
//   - Cache uses sync.RWMutex for concurrent access
//   - Manager supports concurrent GetSecret calls
//   - Providers implement their own synchronization as needed
package secrets
