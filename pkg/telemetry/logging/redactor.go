package logging

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Common redaction pattern names.
const (
	PatternBearerToken = "bearer_token"
	PatternAPIKey      = "api_key"
	PatternPassword    = "password"
	PatternEmail       = "email"
)

// Redactor masks credential and token material in log text.
type Redactor struct {
	patterns []*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a Redactor with the built-in patterns.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*redactPattern{
			// Bearer tokens in header dumps or error text
			{
				name:        PatternBearerToken,
				regex:       regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
				replacement: "Bearer ***",
			},
			// API keys (sk- prefixed, or api_key/apikey assignments)
			{
				name:        PatternAPIKey,
				regex:       regexp.MustCompile(`(sk-[a-zA-Z0-9_-]+|api[-_]?key[-_:=]\s*[a-zA-Z0-9_-]+)`),
				replacement: "sk-***",
			},
			// Generic password fields
			{
				name:        PatternPassword,
				regex:       regexp.MustCompile(`(password|passwd|pwd)[:=]\s*[^\s]+`),
				replacement: "$1: ***",
			},
			// Email addresses in relayed message text
			{
				name:        PatternEmail,
				regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
				replacement: "***@$1",
			},
		},
	}
}

// RedactString masks all matching patterns in a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}

	return redacted
}

// isSensitiveKey checks if an attribute key indicates sensitive data.
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	sensitiveKeys := []string{
		"password", "passwd", "pwd",
		"secret", "token",
		"api_key", "apikey",
		"auth", "authorization",
		"credential",
	}

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}

	return false
}

// maskValue redacts a sensitive value, keeping a short prefix as a hint.
func maskValue(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "***"
	}
	return value[:4] + "***"
}

// RedactingHandler wraps a slog.Handler and masks sensitive material in
// every record before it reaches the underlying handler. The wrap is
// applied by logging.New to all handlers it builds, so no log line
// escapes redaction.
type RedactingHandler struct {
	inner    slog.Handler
	redactor *Redactor
}

// NewRedactingHandler wraps the given handler with credential redaction.
func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{
		inner:    inner,
		redactor: NewRedactor(),
	}
}

// Enabled reports whether the underlying handler handles the level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts the record's message and attributes, then delegates.
func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, h.redactor.RedactString(record.Message), record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clean.AddAttrs(h.redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

// WithAttrs redacts the attributes before attaching them.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		redacted[i] = h.redactAttr(attr)
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(redacted), redactor: h.redactor}
}

// WithGroup delegates group handling to the underlying handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name), redactor: h.redactor}
}

// redactAttr returns a copy of the attribute with sensitive content masked.
func (h *RedactingHandler) redactAttr(attr slog.Attr) slog.Attr {
	if isSensitiveKey(attr.Key) {
		return slog.String(attr.Key, maskValue(attr.Value.String()))
	}

	switch attr.Value.Kind() {
	case slog.KindString:
		return slog.String(attr.Key, h.redactor.RedactString(attr.Value.String()))
	case slog.KindGroup:
		members := attr.Value.Group()
		redacted := make([]slog.Attr, len(members))
		for i, member := range members {
			redacted[i] = h.redactAttr(member)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindAny:
		// Error text can quote request details, including header values.
		if err, ok := attr.Value.Any().(error); ok {
			return slog.String(attr.Key, h.redactor.RedactString(err.Error()))
		}
		return attr
	default:
		return attr
	}
}
