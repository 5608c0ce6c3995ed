package upstream

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestBuildRequest(t *testing.T) {
	req := buildRequest("gpt-4.1-mini", "You are a helpful assistant.", "Hello!")

	if req.Model != "gpt-4.1-mini" {
		t.Errorf("expected model 'gpt-4.1-mini', got %q", req.Model)
	}

	if len(req.Input) != 2 {
		t.Fatalf("expected exactly 2 input entries, got %d", len(req.Input))
	}

	if req.Input[0].Role != RoleSystem {
		t.Errorf("expected first entry role %q, got %q", RoleSystem, req.Input[0].Role)
	}
	if req.Input[0].Content != "You are a helpful assistant." {
		t.Errorf("expected system instruction first, got %q", req.Input[0].Content)
	}

	if req.Input[1].Role != RoleUser {
		t.Errorf("expected second entry role %q, got %q", RoleUser, req.Input[1].Role)
	}
	if req.Input[1].Content != "Hello!" {
		t.Errorf("expected user message second, got %q", req.Input[1].Content)
	}
}

func TestBuildRequestSerialization(t *testing.T) {
	req := buildRequest("gpt-4.1-mini", "instruction", "message")

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	expected := `{"model":"gpt-4.1-mini","input":[{"role":"system","content":"instruction"},{"role":"user","content":"message"}]}`
	if string(data) != expected {
		t.Errorf("expected payload %s, got %s", expected, data)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single output_text piece",
			body: `{"output":[{"type":"message","content":[{"type":"output_text","text":"5 years."}]}]}`,
			want: "5 years.",
		},
		{
			name: "multiple pieces concatenated in order",
			body: `{"output":[
				{"content":[{"type":"output_text","text":"Hello"},{"type":"output_text","text":", "}]},
				{"content":[{"type":"output_text","text":"world!"}]}
			]}`,
			want: "Hello, world!",
		},
		{
			name: "non output_text parts skipped",
			body: `{"output":[{"content":[
				{"type":"reasoning","text":"thinking..."},
				{"type":"output_text","text":"answer"},
				{"type":"refusal","text":"nope"}
			]}]}`,
			want: "answer",
		},
		{
			name: "entry without content list skipped",
			body: `{"output":[
				{"type":"reasoning"},
				{"content":"not a list"},
				{"content":[{"type":"output_text","text":"kept"}]}
			]}`,
			want: "kept",
		},
		{
			name: "non-object entries skipped",
			body: `{"output":["stray string", 42, null, {"content":[{"type":"output_text","text":"kept"}]}]}`,
			want: "kept",
		},
		{
			name: "non-string text skipped",
			body: `{"output":[{"content":[
				{"type":"output_text","text":42},
				{"type":"output_text","text":null},
				{"type":"output_text"},
				{"type":"output_text","text":"kept"}
			]}]}`,
			want: "kept",
		},
		{
			name: "fallback to top-level output_text",
			body: `{"output_text":"hello"}`,
			want: "hello",
		},
		{
			name: "fallback when output is not a list",
			body: `{"output":"unexpected","output_text":"fallback"}`,
			want: "fallback",
		},
		{
			name: "fallback ignored when pieces were found",
			body: `{"output":[{"content":[{"type":"output_text","text":"primary"}]}],"output_text":"fallback"}`,
			want: "primary",
		},
		{
			name: "non-string fallback skipped",
			body: `{"output_text":123}`,
			want: "",
		},
		{
			name: "neither structure present",
			body: `{"id":"resp_123","status":"completed"}`,
			want: "",
		},
		{
			name: "result trimmed",
			body: `{"output":[{"content":[{"type":"output_text","text":"  padded  "}]}]}`,
			want: "padded",
		},
		{
			name: "whitespace-only pieces trim to empty without fallback",
			body: `{"output":[{"content":[{"type":"output_text","text":"   "}]}],"output_text":"fallback"}`,
			want: "",
		},
		{
			name: "empty document",
			body: `{}`,
			want: "",
		},
		{
			name: "null output",
			body: `{"output":null,"output_text":"hello"}`,
			want: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractText([]byte(tt.body))
			if err != nil {
				t.Fatalf("extractText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("extractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>502 Bad Gateway</html>"},
		{"truncated json", `{"output":[{"content":`},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractText([]byte(tt.body))

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T (%v)", err, err)
			}
			if parseErr.RawResponse != tt.body {
				t.Errorf("expected raw response to be preserved, got %q", parseErr.RawResponse)
			}
		})
	}
}
