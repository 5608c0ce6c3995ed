package upstreamtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockServer is a mock HTTP server standing in for the upstream
// provider's response-generation endpoint. It serves configured
// canned responses and captures received requests so tests can assert
// the payload shape and authentication headers.
type MockServer struct {
	server       *httptest.Server
	responses    map[string]MockResponse
	requestCount int
	lastRequest  *CapturedRequest
	mu           sync.Mutex
}

// MockResponse defines a mock response configuration.
type MockResponse struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string
}

// CapturedRequest records one request received by the mock server.
type CapturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// NewMockServer creates a new mock server.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]MockResponse),
	}

	ms.server = httptest.NewServer(http.HandlerFunc(ms.handler))

	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close closes the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse sets a mock response for a specific endpoint.
func (ms *MockServer) SetResponse(path string, response MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.responses[path] = response
}

// RequestCount returns the number of requests received.
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return ms.requestCount
}

// LastRequest returns the most recently captured request, or nil when
// no request has been received.
func (ms *MockServer) LastRequest() *CapturedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return ms.lastRequest
}

// Reset clears the request counter and captured request.
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.requestCount = 0
	ms.lastRequest = nil
}

// handler handles incoming HTTP requests.
func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	ms.requestCount++
	ms.lastRequest = &CapturedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	}
	response, ok := ms.responses[r.URL.Path]
	ms.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	// Apply delay if specified (used to exercise client timeouts)
	if response.Delay > 0 {
		time.Sleep(response.Delay)
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}

	w.WriteHeader(response.StatusCode)

	if response.Body != nil {
		switch v := response.Body.(type) {
		case string:
			_, _ = w.Write([]byte(v))
		case []byte:
			_, _ = w.Write(v)
		default:
			_ = json.NewEncoder(w).Encode(response.Body)
		}
	}
}

// MockGenerateResponse creates a well-formed response document whose
// output list carries one output_text piece per given fragment.
func MockGenerateResponse(pieces ...string) map[string]interface{} {
	content := make([]map[string]interface{}, 0, len(pieces))
	for _, piece := range pieces {
		content = append(content, map[string]interface{}{
			"type": "output_text",
			"text": piece,
		})
	}

	return map[string]interface{}{
		"id":     "resp_123",
		"status": "completed",
		"output": []map[string]interface{}{
			{
				"type":    "message",
				"role":    "assistant",
				"content": content,
			},
		},
	}
}

// MockFallbackResponse creates a response document with no output list
// and only the top-level output_text field set.
func MockFallbackResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"id":          "resp_123",
		"status":      "completed",
		"output_text": text,
	}
}

// MockErrorResponse creates a non-success response with a provider
// style error body.
func MockErrorResponse(statusCode int, message string) MockResponse {
	body := map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"type":    "invalid_request_error",
		},
	}

	return MockResponse{
		StatusCode: statusCode,
		Body:       body,
	}
}

// MockAuthError creates a 401 authentication error response.
func MockAuthError() MockResponse {
	return MockErrorResponse(http.StatusUnauthorized, "Invalid API key")
}

// MockSlowResponse creates a delayed success response to exercise the
// client's deadline handling.
func MockSlowResponse(delay time.Duration) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       MockGenerateResponse("too late"),
		Delay:      delay,
	}
}

// ExpectHeader checks that a captured request carries a header value.
func ExpectHeader(req *CapturedRequest, key, value string) error {
	actual := req.Header.Get(key)
	if !strings.Contains(actual, value) {
		return fmt.Errorf("header %q mismatch: expected %q, got %q", key, value, actual)
	}
	return nil
}
