package relay

import (
	"io"
	"log/slog"
	"net/http"

	"relaykit/courier/pkg/relay/middleware"
)

// defaultMaxBodyBytes caps request bodies when no limit is configured.
const defaultMaxBodyBytes = 1 << 20

// HTTPHandler adapts the relay pipeline to net/http for server mode.
type HTTPHandler struct {
	handler      *Handler
	maxBodyBytes int64
}

// NewHTTPHandler wraps the relay pipeline in an http.Handler. Request
// bodies are read up to maxBodyBytes; a non-positive limit applies the
// default of 1 MiB.
func NewHTTPHandler(handler *Handler, maxBodyBytes int64) *HTTPHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &HTTPHandler{
		handler:      handler,
		maxBodyBytes: maxBodyBytes,
	}
}

// ServeHTTP reduces the HTTP request to the transport-neutral form, runs
// the pipeline, and writes the result.
//
// A body the transport cannot read is treated like any other pipeline
// failure and masked. A body larger than the limit is truncated at the
// limit; the truncated JSON then fails to parse and takes the same
// masked path.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodyBytes))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to read request body",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		h.handler.metrics.RecordMaskedFailure("request_read_error")
		writeResponse(w, h.handler.masked())
		return
	}

	resp := h.handler.Handle(r.Context(), Request{
		Method: r.Method,
		Body:   string(body),
	})

	writeResponse(w, resp)
}

// writeResponse writes a transport-neutral response to the wire.
func writeResponse(w http.ResponseWriter, resp Response) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.WriteString(w, resp.Body); err != nil {
		// The client is gone; nothing to do but note it.
		slog.Debug("failed to write response body", "error", err)
	}
}
