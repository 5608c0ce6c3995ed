package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"relaykit/courier/pkg/relay/middleware"
	"relaykit/courier/pkg/telemetry/metrics"
	"relaykit/courier/pkg/upstream"
)

// maskedBody is the literal body used when anything in the pipeline
// fails. The masked path must not depend on json.Marshal succeeding.
const maskedBody = `{"reply":""}`

// Handler implements the relay pipeline: method dispatch, request
// parsing, the upstream call, and response shaping.
//
// Every failure inside the pipeline is masked as a successful empty
// reply. The caller can only distinguish two of its own mistakes: a
// missing message (400) and an unsupported method (405). Everything
// else, malformed bodies and upstream failures included, is a 200.
// Diagnostics go to logs and metrics instead.
type Handler struct {
	caller      Caller
	instruction string
	cors        CORSPolicy
	metrics     *metrics.Collector
}

// NewHandler creates a relay handler.
//
// The instruction is the system prompt sent ahead of every visitor
// message. The collector may be nil; recording is skipped in that case.
func NewHandler(caller Caller, instruction string, cors CORSPolicy, collector *metrics.Collector) *Handler {
	return &Handler{
		caller:      caller,
		instruction: instruction,
		cors:        cors,
		metrics:     collector,
	}
}

// Handle processes one relay request.
//
// The returned response always carries the CORS headers. Handle never
// panics outward and never produces a server error status: a panic
// anywhere in the pipeline is logged and converted to the masked reply.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	start := time.Now()
	requestID := middleware.GetRequestID(ctx)

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "relay pipeline panic",
				"request_id", requestID,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			h.metrics.RecordMaskedFailure("panic")
			resp = h.masked()
		}
		h.metrics.RecordRequest(req.Method, resp.StatusCode, time.Since(start))
	}()

	switch req.Method {
	case http.MethodOptions:
		slog.DebugContext(ctx, "preflight request",
			"request_id", requestID,
			"status", http.StatusOK,
		)
		return h.respond(http.StatusOK, okBody{OK: true})
	case http.MethodPost:
		// Handled below.
	default:
		slog.WarnContext(ctx, "method not allowed",
			"request_id", requestID,
			"method", req.Method,
			"status", http.StatusMethodNotAllowed,
		)
		return h.respond(http.StatusMethodNotAllowed, errorBody{Error: msgMethodNotAllowed})
	}

	chatReq, err := parseChatRequest(req.Body)
	if err != nil {
		// A malformed body gets the masked success response, not a 400.
		// The widget renders {"reply":""} as a quiet non-answer; an
		// error status would surface a failure state to the visitor.
		slog.ErrorContext(ctx, "failed to parse request body",
			"request_id", requestID,
			"error", err,
			"body_bytes", len(req.Body),
			"status", http.StatusOK,
		)
		h.metrics.RecordMaskedFailure("request_parse_error")
		return h.masked()
	}

	slog.InfoContext(ctx, "processing relay request",
		"request_id", requestID,
		"method", req.Method,
		"message", chatReq.Message,
	)

	if chatReq.Message == "" {
		slog.WarnContext(ctx, "missing message",
			"request_id", requestID,
			"status", http.StatusBadRequest,
		)
		return h.respond(http.StatusBadRequest, errorBody{Error: msgNoMessage})
	}

	upstreamStart := time.Now()
	reply, err := h.caller.Generate(ctx, chatReq.Message, h.instruction)
	upstreamLatency := time.Since(upstreamStart)

	if err != nil {
		kind := upstream.FailureKind(err)
		slog.ErrorContext(ctx, "upstream call failed",
			"request_id", requestID,
			"failure_kind", kind,
			"error", err,
			"upstream_latency_ms", upstreamLatency.Milliseconds(),
			"status", http.StatusOK,
		)
		h.metrics.RecordUpstream(kind, upstreamLatency)
		h.metrics.RecordMaskedFailure(kind)
		return h.masked()
	}

	h.metrics.RecordUpstream("success", upstreamLatency)
	if reply == "" {
		// A successful call with no usable text is still a success for
		// the caller, but worth counting.
		slog.WarnContext(ctx, "upstream returned no text", "request_id", requestID)
		h.metrics.RecordEmptyReply()
	}

	slog.InfoContext(ctx, "relay request completed",
		"request_id", requestID,
		"reply_bytes", len(reply),
		"upstream_latency_ms", upstreamLatency.Milliseconds(),
		"total_latency_ms", time.Since(start).Milliseconds(),
		"status", http.StatusOK,
	)

	return h.respond(http.StatusOK, replyBody{Reply: reply})
}

// respond shapes one response with the CORS headers attached.
func (h *Handler) respond(status int, body any) Response {
	data, err := json.Marshal(body)
	if err != nil {
		slog.Error("failed to marshal response body", "error", err)
		return h.masked()
	}
	return Response{
		StatusCode: status,
		Headers:    h.cors.Headers(),
		Body:       string(data),
	}
}

// masked returns the uniform failure response: a 200 with an empty reply.
func (h *Handler) masked() Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers:    h.cors.Headers(),
		Body:       maskedBody,
	}
}
