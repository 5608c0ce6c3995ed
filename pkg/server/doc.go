// Package server provides the standalone HTTP server hosting the chat relay.
//
// The server is the network-facing surface for non-serverless deployments
// and local development. It mounts the relay endpoint next to operational
// routes and manages the listener lifecycle.
//
// # Routes
//
//   - POST/OPTIONS <relay.path> - the chat relay endpoint (default /chat)
//   - GET /health - liveness probe, always 200
//   - GET /ready - readiness probe, 200 when the upstream credential is
//     resolvable, 503 otherwise
//   - GET <telemetry.metrics.path> - Prometheus exposition (default /metrics,
//     only when metrics are enabled)
//
// # Middleware Chain
//
// Every route runs through the same chain:
//
//	handler = Recovery(RequestID(Logging(mux)))
//
// Recovery is outermost so a panic anywhere below it becomes a logged 500
// instead of a dropped connection. The relay endpoint itself never takes
// that path: its handler recovers internally and answers with the masked
// empty reply.
//
// # Basic Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv := server.NewServer(cfg, relayHandler, credentials, collector)
//	if err := srv.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until the context is cancelled, a shutdown signal arrives,
// or the listener fails. Shutdown drains in-flight requests up to the
// configured shutdown timeout.
//
// # TLS
//
// When server.tls.enabled is set the listener terminates TLS itself with
// a TLS 1.3 minimum version. Deployments behind a terminating proxy or
// API gateway leave it off.
package server
