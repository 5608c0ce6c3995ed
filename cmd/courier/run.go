package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"relaykit/courier/pkg/cli"
	"relaykit/courier/pkg/config"
	"relaykit/courier/pkg/relay"
	"relaykit/courier/pkg/secrets"
	"relaykit/courier/pkg/server"
	"relaykit/courier/pkg/telemetry/logging"
	"relaykit/courier/pkg/telemetry/metrics"
	"relaykit/courier/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Courier relay server",
	Long: `Start the Courier relay server with the specified configuration.

The server listens on the configured address and relays chat messages
from the widget endpoint to the upstream responses API.

Examples:
  # Start with default config
  courier run

  # Start with custom config
  courier run --config /etc/courier/config.yaml

  # Override listen address
  courier run --listen 0.0.0.0:8080

  # Validate config without starting the server
  courier run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// A local .env file feeds development; deployed environments set real
	// variables, which always win.
	if err := config.LoadDotEnv(); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load .env: %v", err))
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.Init(&cfg.Telemetry.Logging)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	// Secret resolution backs the upstream credential. The credential is
	// re-resolved per call, so rotation needs no restart.
	manager, err := secrets.NewManagerFromConfig(&cfg.Secrets)
	if err != nil {
		return cli.NewConfigError("secrets", err.Error())
	}
	defer manager.Close()

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
		return cli.NewCommandError("run", fmt.Errorf("failed to create upstream client: %w", err))
	}
	defer client.Close()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	handler := relay.NewHandler(
		client,
		cfg.Relay.SystemInstruction,
		relay.NewCORSPolicy(cfg.Relay.AllowedOrigin),
		collector,
	)
	relayHandler := relay.NewHTTPHandler(handler, cfg.Relay.MaxBodyBytes)

	srv := server.NewServer(cfg, relayHandler, keySource, collector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduled secret refresh is optional; an empty schedule leaves the
	// per-call cache TTL as the only refresh mechanism.
	if cfg.Secrets.RefreshSchedule != "" {
		refresher := secrets.NewRefresher(manager, cfg.Secrets.RefreshSchedule)
		if err := refresher.Start(ctx); err != nil {
			logger.Warn("failed to start secrets refresher", "error", err)
		} else {
			defer refresher.Stop()
		}
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Println()
	fmt.Printf("✓ Relay listening on %s%s\n", cfg.Server.ListenAddress, cfg.Relay.Path)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for shutdown signal or server error
	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}

		fmt.Println("✓ Server stopped")
		return nil
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Courier v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")
	fmt.Printf("✓ Allowed origin: %s\n", cfg.Relay.AllowedOrigin)
	fmt.Printf("✓ Upstream model: %s (timeout %s)\n", cfg.Upstream.Model, cfg.Upstream.Timeout)
}
