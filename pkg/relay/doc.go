// Package relay implements the chat relay pipeline: method dispatch,
// request parsing, the upstream call, and response shaping.
//
// The pipeline is transport-neutral. The HTTP server and the Lambda
// entrypoint both reduce their native request shapes to relay.Request,
// invoke the same Handler, and write the resulting relay.Response back
// out, so both deployment modes answer byte-identically.
//
// # Request Flow
//
//  1. OPTIONS is acknowledged with 200 {"ok":true} (CORS preflight).
//  2. Any method other than OPTIONS or POST is rejected with 405.
//  3. POST bodies are parsed as JSON; an absent body counts as an empty
//     request, and a request without a message is rejected with 400
//     {"error":"No message provided"} before any upstream work.
//  4. The upstream caller is invoked once with the visitor message and
//     the fixed system instruction, and the extracted reply is returned
//     as 200 {"reply":"..."}.
//
// # Failure Masking
//
// Every failure inside the forwarding pipeline - a body that is not
// JSON, an upstream timeout, a non-success upstream status, a transport
// failure, an unparseable upstream payload, even a panic - converts to
// 200 {"reply":""}. The relay never emits a 5xx. The chat widget on the
// other end renders an empty reply as a quiet non-answer instead of a
// broken error state; diagnostics go to logs and metrics, where each
// failure keeps its kind.
//
// The only errors a caller can see are its own: a missing message (400)
// and an unsupported method (405).
//
// # CORS
//
// The relay fronts exactly one site. Every response, error and preflight
// responses included, carries the same four headers: the JSON content
// type, the single allowed origin, the allowed request headers
// (Content-Type), and the allowed methods (POST, OPTIONS). The headers
// are attached by the handler itself rather than by server middleware so
// the Lambda transport emits them identically.
//
// # Basic Usage
//
//	client, err := upstream.NewClient(upstreamCfg, credentials)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handler := relay.NewHandler(client, cfg.Relay.SystemInstruction,
//	    relay.NewCORSPolicy(cfg.Relay.AllowedOrigin), collector)
//
//	// Server mode:
//	mux.Handle(cfg.Relay.Path, relay.NewHTTPHandler(handler, cfg.Relay.MaxBodyBytes))
//
//	// Lambda mode:
//	resp := handler.Handle(ctx, relay.Request{Method: event.HTTPMethod, Body: event.Body})
//
// # Thread Safety
//
// A Handler holds no per-request state and is safe for concurrent use.
package relay
