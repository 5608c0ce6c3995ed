// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// This package implements middleware functions that handle common functionality
// across all HTTP requests including request ID generation, logging, and panic
// recovery.
//
// # Middleware Chain
//
// Middleware functions are chained in a specific order for optimal functionality:
//
//	handler = Recovery(RequestID(Logging(handler)))
//
// Order (innermost to outermost):
//  1. Logging: Log request/response details
//  2. RequestID: Generate and propagate request ID
//  3. Recovery: Recover from panics
//
// RequestID wraps Logging so that the ID is already in the context when
// the logging middleware reads it.
//
// CORS is deliberately not middleware here: the relay attaches its fixed
// response headers inside the handler so that the Lambda transport, which
// has no middleware chain, produces identical responses.
//
// # Request ID
//
// RequestIDMiddleware generates a unique ID for each request using UUID v4:
//
//	X-Request-ID: 550e8400-e29b-41d4-a716-446655440000
//
// The request ID is:
//   - Added to context for handler access
//   - Included in response headers
//   - Logged with all request/response logs
//
// Transports without middleware can seed the same context value directly
// with WithRequestID (the Lambda entrypoint does this with the API Gateway
// request ID).
//
// # Logging
//
// LoggingMiddleware uses structured logging (log/slog) to record request details:
//
//	{
//	  "time": "2026-08-23T10:30:00Z",
//	  "level": "INFO",
//	  "msg": "request completed",
//	  "method": "POST",
//	  "path": "/chat",
//	  "status": 200,
//	  "latency_ms": 1250,
//	  "request_id": "550e8400-e29b-41d4-a716-446655440000",
//	  "user_agent": "Mozilla/5.0 ..."
//	}
//
// # Recovery
//
// RecoveryMiddleware catches panics in handlers and converts them to HTTP
// 500 errors:
//
//	{"error": "An internal error occurred. Please try again later."}
//
// The panic stack trace is logged but not exposed to clients for security.
// Note that the relay endpoint never takes this path: its handler recovers
// internally and responds with the masked empty reply instead.
//
// # Context Values
//
// Middleware stores values in context for handler access:
//
//	type contextKey string
//
//	const (
//	    RequestIDKey contextKey = "request_id"
//	    StartTimeKey contextKey = "start_time"
//	)
//
// Handlers retrieve values through the accessor helpers:
//
//	requestID := middleware.GetRequestID(ctx)
//
// # Thread Safety
//
// All middleware functions are thread-safe and can be called concurrently
// from multiple goroutines.
package middleware
