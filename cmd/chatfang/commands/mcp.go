package commands

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/chatfang/internal/config"
	"github.com/Sumatoshi-tech/chatfang/pkg/mcp"
	"github.com/Sumatoshi-tech/chatfang/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var configPath string

	var metricsAddr string

	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes chatfang analysis as tools that AI agents can
discover and invoke:
  - chatfang_analyze: full pipeline over a transcript (stats + personality profiles)
  - chatfang_parse: structured messages without analysis`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			providers, err := initMCPObservability(configPath, debug)
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
				meter, err = serveMetrics(metricsAddr, providers)
				if err != nil {
					return err
				}
			}

			red, redErr := observability.NewREDMetrics(meter)
			if redErr != nil {
				return redErr
			}

			deps := mcp.ServerDeps{Logger: providers.Logger, Metrics: red, Tracer: providers.Tracer}

			srv := mcp.NewServer(deps)

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .chatfang.yaml in CWD or $HOME)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}

// serveMetrics starts a background /metrics scrape endpoint and returns
// the meter whose instruments it exposes.
func serveMetrics(addr string, providers observability.Providers) (metric.Meter, error) {
	handler, provider, err := observability.PrometheusHandler()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		serveErr := srv.ListenAndServe()
		if serveErr != nil && serveErr != http.ErrServerClosed {
			providers.Logger.Error("metrics endpoint failed", "error", serveErr)
		}
	}()

	return provider.Meter("chatfang"), nil
}

func initMCPObservability(configPath string, debug bool) (observability.Providers, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return observability.Providers{}, err
	}

	settings := cfg.ObservabilitySettings()

	// On stdio transport stdout belongs to the protocol; logs go to
	// stderr as JSON.
	settings.LogFormat = observability.LogFormatJSON

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		settings.OTLPEndpoint = endpoint
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true" {
		settings.OTLPInsecure = true
	}

	if debug {
		settings.LogLevel = "debug"
	}

	return observability.Init(settings)
}
