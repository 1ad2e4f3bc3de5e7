package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/imports"
	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/mcp"
	"github.com/codegraft/codegraft/internal/observability"
	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/pkg/version"
)

const (
	// metricsReadHeaderTimeout bounds header reads on the scrape endpoint.
	metricsReadHeaderTimeout = 5 * time.Second

	// metricsShutdownTimeout bounds the metrics server drain on exit.
	metricsShutdownTimeout = 5 * time.Second
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var (
		debug       bool
		metricsAddr string
		configPath  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for IDE and agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes the integration pipeline as tools that IDEs and
AI agents can discover and invoke:
  - graft_integrate: Format, remediate, and merge a component into a file
  - graft_format: Normalize source style through the formatting engine
  - graft_analyze: Score accessibility and performance and apply safe fixes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			providers, err := initMCPObservability(debug)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			meter := providers.Meter

			if metricsAddr != "" {
				handler, promMeter, promErr := observability.PrometheusHandler()
				if promErr != nil {
					return promErr
				}

				meter = promMeter

				stopMetrics := startMetricsServer(metricsAddr, handler, providers.Logger)
				defer stopMetrics()
			}

			deps, err := buildServerDeps(cfg, providers, meter)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(deps)

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics and health endpoints on this address (e.g. :9464)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cmd
}

func initMCPObservability(debug bool) (observability.Providers, error) {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version.Version
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	cfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	cfg.Mode = observability.ModeMCP
	cfg.LogJSON = true

	if debug {
		cfg.LogLevel = slog.LevelDebug
		cfg.DebugTrace = true
	}

	return observability.Init(cfg)
}

// buildServerDeps wires the pipeline components the MCP tools serve.
// Instruments register on meter, which points at the Prometheus
// registry when a scrape endpoint is configured.
func buildServerDeps(cfg *config.Config, providers observability.Providers, meter metric.Meter) (mcp.ServerDeps, error) {
	red, err := observability.NewREDMetrics(meter)
	if err != nil {
		return mcp.ServerDeps{}, err
	}

	pipelineMetrics, err := observability.NewPipelineMetrics(meter)
	if err != nil {
		return mcp.ServerDeps{}, err
	}

	normalizer := newNormalizer(cfg, providers.Logger)
	analyzer := quality.NewAnalyzer(policyFrom(cfg))

	pipeline := integrate.New(integrate.Options{
		Normalizer: normalizer,
		Analyzer:   analyzer,
		Imports:    imports.NewEngine(cfg.Framework.Package),
		Logger:     providers.Logger,
		Tracer:     providers.Tracer,
		Metrics:    pipelineMetrics,
	})

	return mcp.ServerDeps{
		Pipeline:   pipeline,
		Normalizer: normalizer,
		Analyzer:   analyzer,
		Logger:     providers.Logger,
		Metrics:    red,
		Tracer:     providers.Tracer,
	}, nil
}

// startMetricsServer exposes the scrape and health endpoints in the
// background and returns a blocking stop function.
func startMetricsServer(addr string, handler http.Handler, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	mux.Handle("/healthz", observability.HealthHandler())
	mux.Handle("/readyz", observability.ReadyHandler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		serveErr := server.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", serveErr)
		}
	}()

	logger.Info("metrics server listening", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(ctx)
	}
}
