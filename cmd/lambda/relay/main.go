// Lambda entrypoint for the Courier relay.
//
// The same pipeline that backs the HTTP server runs here behind API
// Gateway. Configuration comes entirely from the execution environment;
// there is no config file, no listener, and no metrics endpoint in this
// deployment shape.
package main

import (
	"context"

	"relaykit/courier/pkg/config"
	"relaykit/courier/pkg/relay"
	"relaykit/courier/pkg/relay/middleware"
	"relaykit/courier/pkg/secrets"
	"relaykit/courier/pkg/telemetry/logging"
	"relaykit/courier/pkg/upstream"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
)

var handler *relay.Handler

func init() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if _, err := logging.Init(&cfg.Telemetry.Logging); err != nil {
		panic("Failed to initialize logging: " + err.Error())
	}

	manager, err := secrets.NewManagerFromConfig(&cfg.Secrets)
	if err != nil {
		panic("Failed to initialize secrets: " + err.Error())
	}

	// The credential is resolved per call, so a secret missing at cold
	// start surfaces as a masked response, not a crashed function.
	keySource := secrets.NewKeySource(manager, cfg.Upstream.APIKeySecret)

	client, err := upstream.NewClient(upstream.Config{
		Endpoint:            cfg.Upstream.Endpoint,
		Model:               cfg.Upstream.Model,
		Timeout:             cfg.Upstream.Timeout,
		MaxIdleConns:        cfg.Upstream.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Upstream.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Upstream.IdleConnTimeout,
	}, keySource)
	if err != nil {
		panic("Failed to initialize upstream client: " + err.Error())
	}

	handler = relay.NewHandler(
		client,
		cfg.Relay.SystemInstruction,
		relay.NewCORSPolicy(cfg.Relay.AllowedOrigin),
		nil,
	)
}

// handle adapts one API Gateway event to the relay pipeline.
//
// The error return is always nil: returning an error would make API
// Gateway substitute its own 502 response, bypassing the masked-reply
// contract and the CORS headers.
func handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx = middleware.WithRequestID(ctx, requestID)

	resp := handler.Handle(ctx, relay.Request{
		Method: event.HTTPMethod,
		Body:   event.Body,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}, nil
}

func main() {
	awslambda.Start(handle)
}
