package relay

import "context"

// Request is a transport-neutral inbound request. The HTTP server and
// the Lambda entrypoint both reduce their native request shapes to this
// before invoking the pipeline, so every transport gets identical
// behavior.
type Request struct {
	// Method is the HTTP method of the inbound request.
	Method string

	// Body is the raw request body. Empty when the request carried none.
	Body string
}

// Response is a transport-neutral outbound response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Caller produces a reply for a visitor message under a system
// instruction. Implemented by the upstream client; tests substitute
// their own.
type Caller interface {
	Generate(ctx context.Context, message, instruction string) (string, error)
}

// chatRequest is the inbound body shape. Unknown fields are ignored.
type chatRequest struct {
	Message string `json:"message"`
}

// replyBody is the success response shape, also used for masked failures.
type replyBody struct {
	Reply string `json:"reply"`
}

// errorBody is the client-error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// okBody acknowledges CORS preflight requests.
type okBody struct {
	OK bool `json:"ok"`
}

// Client-facing messages. These strings are part of the wire contract.
const (
	msgNoMessage        = "No message provided"
	msgMethodNotAllowed = "Method not allowed"
)
