package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the provider's response-generation endpoint.
	DefaultEndpoint = "https://api.openai.com/v1/responses"

	// DefaultTimeout is the upper bound on a single upstream call.
	// The in-flight request is aborted when it expires.
	DefaultTimeout = 8000 * time.Millisecond

	// maxErrorBody bounds how much of a non-success response body is
	// read for diagnostics.
	maxErrorBody = 8 * 1024
)

// CredentialSource supplies the upstream API credential.
//
// The client never reads the environment ad hoc; whatever owns the
// credential (static config, a secrets manager) is injected at
// construction. Implementations must be safe for concurrent use.
type CredentialSource interface {
	// Credential returns the bearer token for the next call.
	Credential(ctx context.Context) (string, error)
}

// StaticCredential is a CredentialSource holding a fixed token.
type StaticCredential string

// Credential returns the fixed token.
func (s StaticCredential) Credential(ctx context.Context) (string, error) {
	return string(s), nil
}

// Config holds the upstream client configuration.
type Config struct {
	// Endpoint is the provider URL. Default: DefaultEndpoint.
	Endpoint string

	// Model is the model identifier sent with every request.
	Model string

	// Timeout bounds each call. Default: DefaultTimeout.
	Timeout time.Duration

	// Connection pool settings. Defaults: 100 idle connections,
	// 10 per host, 90s idle timeout.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// Client issues response-generation calls to the upstream provider.
//
// Each call is a single attempt: no retries, no backoff. A call either
// completes within the configured deadline or fails with a typed error
// the relay handler maps to its masked-response policy.
type Client struct {
	// config contains the client configuration
	config Config

	// credentials supplies the bearer token per call
	credentials CredentialSource

	// client is the HTTP client with connection pooling
	client *http.Client
}

// NewClient creates a new upstream client with connection pooling.
// The credential source is required; the credential itself is resolved
// per call so rotated secrets are picked up without reconstruction.
func NewClient(config Config, credentials CredentialSource) (*Client, error) {
	if config.Model == "" {
		return nil, &ConfigError{
			Field:   "model",
			Message: "model identifier is required",
		}
	}

	if credentials == nil {
		return nil, &ConfigError{
			Field:   "api_key",
			Message: "credential source is required",
		}
	}

	// Set defaults if not provided
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}
	if config.IdleConnTimeout == 0 {
		config.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		DisableCompression:  false,
		// Enable HTTP/2
		ForceAttemptHTTP2: true,
	}

	c := &Client{
		config:      config,
		credentials: credentials,
		client:      &http.Client{Transport: transport},
	}

	slog.Info("upstream client initialized",
		"endpoint", config.Endpoint,
		"model", config.Model,
		"timeout", config.Timeout,
	)

	return c, nil
}

// Generate sends one response-generation request and returns the
// assistant's extracted reply text.
//
// The payload carries the fixed model and a two-entry input list with
// the system instruction first and the user message second. The call
// is bounded by the configured timeout; expiry aborts the in-flight
// request and surfaces as *TimeoutError. A non-success status surfaces
// as *HTTPError with the response body attached for diagnostics, and a
// body that is not JSON as *ParseError. The extracted text may be
// empty; that is a successful call, not an error.
func (c *Client) Generate(ctx context.Context, message, instruction string) (string, error) {
	credential, err := c.credentials.Credential(ctx)
	if err != nil {
		return "", &ConfigError{
			Field:   "api_key",
			Message: fmt.Sprintf("credential source failed: %v", err),
		}
	}
	if credential == "" {
		return "", &ConfigError{
			Field:   "api_key",
			Message: "credential source returned an empty credential",
		}
	}

	payload, err := json.Marshal(buildRequest(c.config.Model, instruction, message))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Race the call against the deadline; whichever settles first wins.
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("sending upstream request",
		"endpoint", c.config.Endpoint,
		"model", c.config.Model,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Deadline expired and the request was aborted
			return "", &TimeoutError{Timeout: c.config.Timeout}
		}
		return "", &HTTPError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read the body as text for diagnostics
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(errorBody),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &HTTPError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	reply, err := extractText(body)
	if err != nil {
		return "", err
	}

	slog.Debug("upstream reply extracted",
		"model", c.config.Model,
		"reply_chars", len(reply),
	)

	return reply, nil
}

// Config returns the client's effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close releases idle connections held by the client's pool.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
