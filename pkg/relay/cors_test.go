package relay

import "testing"

func TestCORSPolicyHeaders(t *testing.T) {
	policy := NewCORSPolicy("https://widget.example.com")

	headers := policy.Headers()

	want := map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "https://widget.example.com",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
	}

	if len(headers) != len(want) {
		t.Errorf("got %d headers, want %d: %v", len(headers), len(want), headers)
	}
	for key, value := range want {
		if headers[key] != value {
			t.Errorf("header %s = %q, want %q", key, headers[key], value)
		}
	}
}

func TestCORSPolicyHeadersFreshMap(t *testing.T) {
	policy := NewCORSPolicy("https://example.com")

	first := policy.Headers()
	first["X-Extra"] = "mutated"

	second := policy.Headers()
	if _, ok := second["X-Extra"]; ok {
		t.Error("Headers must return a fresh map on each call")
	}
}

func TestCORSPolicyOrigin(t *testing.T) {
	policy := NewCORSPolicy("https://example.com")
	if policy.Origin() != "https://example.com" {
		t.Errorf("Origin() = %q, want %q", policy.Origin(), "https://example.com")
	}
}
