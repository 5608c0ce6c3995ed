//go:build integration

package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"relaykit/courier/internal/upstreamtest"
	"relaykit/courier/pkg/config"
	"relaykit/courier/pkg/relay"
	"relaykit/courier/pkg/secrets"
	"relaykit/courier/pkg/server"
	"relaykit/courier/pkg/telemetry/metrics"
	"relaykit/courier/pkg/upstream"
)

const (
	testOrigin = "https://portfolio.example.com"
	testAPIKey = "sk-test-integration-key"
)

// relayStack is the fully wired relay: mock upstream, secret resolution,
// upstream client, relay pipeline, and the HTTP server's route chain.
type relayStack struct {
	upstream *upstreamtest.MockServer
	server   *httptest.Server
}

func (s *relayStack) Close() {
	s.server.Close()
	s.upstream.Close()
}

// newRelayStack builds the relay end to end against a mock upstream.
// The credential travels the real path: environment variable, secret
// manager, key source, bearer header.
func newRelayStack(t *testing.T, timeout time.Duration) *relayStack {
	t.Helper()

	t.Setenv("COURIER_SECRET_OPENAI_API_KEY", testAPIKey)

	mock := upstreamtest.NewMockServer()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Relay.AllowedOrigin = testOrigin
	cfg.Upstream.Endpoint = mock.URL() + "/v1/responses"
	cfg.Upstream.Timeout = timeout
	if err := config.Validate(cfg); err != nil {
		mock.Close()
		t.Fatalf("test configuration invalid: %v", err)
	}

	manager, err := secrets.NewManagerFromConfig(&cfg.Secrets)
	if err != nil {
		mock.Close()
		t.Fatalf("failed to build secrets manager: %v", err)
	}
	keySource := secrets.NewKeySource(manager, cfg.Upstream.APIKeySecret)

	client, err := upstream.NewClient(upstream.Config{
		Endpoint: cfg.Upstream.Endpoint,
		Model:    cfg.Upstream.Model,
		Timeout:  cfg.Upstream.Timeout,
	}, keySource)
	if err != nil {
		mock.Close()
		t.Fatalf("failed to build upstream client: %v", err)
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	handler := relay.NewHandler(
		client,
		cfg.Relay.SystemInstruction,
		relay.NewCORSPolicy(cfg.Relay.AllowedOrigin),
		collector,
	)
	relayHandler := relay.NewHTTPHandler(handler, cfg.Relay.MaxBodyBytes)

	srv := server.NewServer(cfg, relayHandler, keySource, collector)

	stack := &relayStack{
		upstream: mock,
		server:   httptest.NewServer(srv.Handler()),
	}
	t.Cleanup(stack.Close)

	return stack
}

func postChat(t *testing.T, stack *relayStack, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(stack.server.URL+"/chat", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v (body: %q)", err, raw)
	}
	return body
}

func assertRelayHeaders(t *testing.T, resp *http.Response) {
	t.Helper()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, testOrigin)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "POST, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "POST, OPTIONS")
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("Access-Control-Allow-Headers = %q, want %q", got, "Content-Type")
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want %q", got, "application/json")
	}
}

// TestRelayIntegration exercises the full request path from the HTTP
// edge through secret resolution to the upstream call and back.
func TestRelayIntegration(t *testing.T) {
	stack := newRelayStack(t, 8*time.Second)

	t.Run("chat round trip", func(t *testing.T) {
		stack.upstream.SetResponse("/v1/responses", upstreamtest.MockResponse{
			StatusCode: http.StatusOK,
			Body:       upstreamtest.MockGenerateResponse("5 ", "years."),
		})
		stack.upstream.Reset()

		resp := postChat(t, stack, `{"message":"What is your experience?"}`)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		assertRelayHeaders(t, resp)
		if resp.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header on response")
		}

		body := decodeJSON(t, resp)
		// Two output_text pieces concatenated in document order.
		if body["reply"] != "5 years." {
			t.Errorf("reply = %v, want %q", body["reply"], "5 years.")
		}

		captured := stack.upstream.LastRequest()
		if captured == nil {
			t.Fatal("upstream received no request")
		}
		if err := upstreamtest.ExpectHeader(captured, "Authorization", "Bearer "+testAPIKey); err != nil {
			t.Error(err)
		}
		if err := upstreamtest.ExpectHeader(captured, "Content-Type", "application/json"); err != nil {
			t.Error(err)
		}

		var payload struct {
			Model string `json:"model"`
			Input []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"input"`
		}
		if err := json.Unmarshal(captured.Body, &payload); err != nil {
			t.Fatalf("upstream payload is not valid JSON: %v", err)
		}
		if payload.Model == "" {
			t.Error("upstream payload missing model")
		}
		if len(payload.Input) != 2 {
			t.Fatalf("upstream input length = %d, want 2", len(payload.Input))
		}
		if payload.Input[0].Role != "system" {
			t.Errorf("first input role = %q, want system", payload.Input[0].Role)
		}
		if payload.Input[1].Role != "user" || payload.Input[1].Content != "What is your experience?" {
			t.Errorf("second input = %+v, want the visitor message as user", payload.Input[1])
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, stack.server.URL+"/chat", nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("failed to send request: %v", err)
		}

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		assertRelayHeaders(t, resp)

		body := decodeJSON(t, resp)
		if body["ok"] != true {
			t.Errorf("body = %v, want ok:true", body)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := http.Get(stack.server.URL + "/chat")
		if err != nil {
			t.Fatalf("failed to send request: %v", err)
		}

		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
		}
		assertRelayHeaders(t, resp)

		body := decodeJSON(t, resp)
		if body["error"] != "Method not allowed" {
			t.Errorf("error = %v, want %q", body["error"], "Method not allowed")
		}
	})

	t.Run("missing message", func(t *testing.T) {
		stack.upstream.Reset()

		resp := postChat(t, stack, `{}`)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
		assertRelayHeaders(t, resp)

		body := decodeJSON(t, resp)
		if body["error"] != "No message provided" {
			t.Errorf("error = %v, want %q", body["error"], "No message provided")
		}
		if stack.upstream.RequestCount() != 0 {
			t.Errorf("upstream called %d times for a missing message", stack.upstream.RequestCount())
		}
	})

	t.Run("malformed body masked", func(t *testing.T) {
		stack.upstream.Reset()

		resp := postChat(t, stack, `{not json`)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want masked %d", resp.StatusCode, http.StatusOK)
		}
		assertRelayHeaders(t, resp)

		body := decodeJSON(t, resp)
		if body["reply"] != "" {
			t.Errorf("reply = %v, want empty", body["reply"])
		}
		if stack.upstream.RequestCount() != 0 {
			t.Errorf("upstream called %d times for a malformed body", stack.upstream.RequestCount())
		}
	})

	t.Run("health check", func(t *testing.T) {
		resp, err := http.Get(stack.server.URL + "/health")
		if err != nil {
			t.Fatalf("failed to send health check: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("readiness check", func(t *testing.T) {
		resp, err := http.Get(stack.server.URL + "/ready")
		if err != nil {
			t.Fatalf("failed to send readiness check: %v", err)
		}
		defer resp.Body.Close()

		// The credential resolves through the env provider, so the
		// relay reports ready.
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		resp, err := http.Get(stack.server.URL + "/metrics")
		if err != nil {
			t.Fatalf("failed to scrape metrics: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed to read metrics body: %v", err)
		}
		// Requests from earlier subtests must have been recorded.
		if !strings.Contains(string(raw), "courier_relay_requests_total") {
			t.Error("metrics output missing courier_relay_requests_total")
		}
	})
}

// TestRelayIntegrationUpstreamFailures verifies that upstream failures
// of every class surface to the caller as the masked empty reply.
func TestRelayIntegrationUpstreamFailures(t *testing.T) {
	tests := []struct {
		name     string
		response upstreamtest.MockResponse
	}{
		{
			name:     "authentication rejected",
			response: upstreamtest.MockAuthError(),
		},
		{
			name:     "server error",
			response: upstreamtest.MockErrorResponse(http.StatusInternalServerError, "backend exploded"),
		},
		{
			name:     "rate limited",
			response: upstreamtest.MockErrorResponse(http.StatusTooManyRequests, "slow down"),
		},
		{
			name: "response not json",
			response: upstreamtest.MockResponse{
				StatusCode: http.StatusOK,
				Body:       "<html>gateway error</html>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := newRelayStack(t, 8*time.Second)
			stack.upstream.SetResponse("/v1/responses", tt.response)

			resp := postChat(t, stack, `{"message":"hi"}`)

			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want masked %d", resp.StatusCode, http.StatusOK)
			}
			assertRelayHeaders(t, resp)

			body := decodeJSON(t, resp)
			if body["reply"] != "" {
				t.Errorf("reply = %v, want empty", body["reply"])
			}
		})
	}
}

// TestRelayIntegrationTimeout verifies the call budget: a slow upstream
// is abandoned and the caller still gets the masked success response.
func TestRelayIntegrationTimeout(t *testing.T) {
	stack := newRelayStack(t, 250*time.Millisecond)
	stack.upstream.SetResponse("/v1/responses", upstreamtest.MockSlowResponse(3*time.Second))

	start := time.Now()
	resp := postChat(t, stack, `{"message":"hi"}`)
	elapsed := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want masked %d", resp.StatusCode, http.StatusOK)
	}
	assertRelayHeaders(t, resp)

	body := decodeJSON(t, resp)
	if body["reply"] != "" {
		t.Errorf("reply = %v, want empty", body["reply"])
	}

	// The response must arrive once the budget expires, well before the
	// upstream would have answered.
	if elapsed > 2*time.Second {
		t.Errorf("response took %s; the in-flight call was not abandoned at the deadline", elapsed)
	}
}

// TestRelayIntegrationFallbackExtraction verifies the top-level
// output_text fallback when the response carries no output list.
func TestRelayIntegrationFallbackExtraction(t *testing.T) {
	stack := newRelayStack(t, 8*time.Second)
	stack.upstream.SetResponse("/v1/responses", upstreamtest.MockResponse{
		StatusCode: http.StatusOK,
		Body:       upstreamtest.MockFallbackResponse("fallback answer"),
	})

	resp := postChat(t, stack, `{"message":"hi"}`)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body := decodeJSON(t, resp)
	if body["reply"] != "fallback answer" {
		t.Errorf("reply = %v, want %q", body["reply"], "fallback answer")
	}
}

// TestRelayIntegrationCredentialRotation verifies that a rotated secret
// reaches the upstream without restarting anything. Caching is disabled
// so every call resolves the credential fresh.
func TestRelayIntegrationCredentialRotation(t *testing.T) {
	t.Setenv("COURIER_SECRET_OPENAI_API_KEY", "first-key")

	mock := upstreamtest.NewMockServer()
	defer mock.Close()
	mock.SetResponse("/v1/responses", upstreamtest.MockResponse{
		StatusCode: http.StatusOK,
		Body:       upstreamtest.MockGenerateResponse("ok"),
	})

	manager := secrets.NewManager([]secrets.SecretProvider{
		secrets.NewEnvProvider(secrets.DefaultEnvPrefix),
	}, 0)
	keySource := secrets.NewKeySource(manager, "openai-api-key")

	client, err := upstream.NewClient(upstream.Config{
		Endpoint: mock.URL() + "/v1/responses",
		Model:    "gpt-4.1-mini",
	}, keySource)
	if err != nil {
		t.Fatalf("failed to build upstream client: %v", err)
	}

	handler := relay.NewHandler(client, "instruction", relay.NewCORSPolicy(testOrigin), nil)
	relayServer := httptest.NewServer(relay.NewHTTPHandler(handler, 0))
	defer relayServer.Close()

	if _, err := http.Post(relayServer.URL, "application/json", strings.NewReader(`{"message":"hi"}`)); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if err := upstreamtest.ExpectHeader(mock.LastRequest(), "Authorization", "Bearer first-key"); err != nil {
		t.Error(err)
	}

	t.Setenv("COURIER_SECRET_OPENAI_API_KEY", "second-key")

	if _, err := http.Post(relayServer.URL, "application/json", strings.NewReader(`{"message":"hi"}`)); err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	if err := upstreamtest.ExpectHeader(mock.LastRequest(), "Authorization", "Bearer second-key"); err != nil {
		t.Error(err)
	}
}
