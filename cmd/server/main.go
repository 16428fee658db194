package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/config"
	"github.com/mindsightventures/mcp-server-example/internal/fetch"
	"github.com/mindsightventures/mcp-server-example/internal/geocode"
	"github.com/mindsightventures/mcp-server-example/internal/observability"
	"github.com/mindsightventures/mcp-server-example/internal/server"
	"github.com/mindsightventures/mcp-server-example/internal/tools"
	"github.com/mindsightventures/mcp-server-example/internal/weather"
)

var version = "dev"

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = observability.FlushTelemetry(logger) }()

	rootCmd := &cobra.Command{
		Use:     "weather-mcp",
		Short:   "Weather MCP server",
		Long:    "Serves weather tools (current conditions, forecasts, alerts, geocoding) over the Model Context Protocol on stdio.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), logger)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio (the default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), logger)
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the API key and One Call 3.0 subscription, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := buildHandler(logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), handler.CheckKeyAndSubscription(cmd.Context()))
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, checkCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", zap.Error(err))
		_ = observability.FlushTelemetry(logger)
		os.Exit(1)
	}
}

// buildHandler wires the upstream clients into the tool handler.
func buildHandler(logger *zap.Logger) (*tools.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasAPIKey() {
		logger.Warn("OPENWEATHER_API_KEY is not set; weather requests will fail until one is configured")
	}

	fetcher := fetch.NewClient(cfg.APIKey, cfg.UserAgent, cfg.RequestTimeout, logger)
	resolver := geocode.NewResolver(fetcher, geocode.Endpoints{
		Direct:    cfg.GeocodeDirectURL,
		Zip:       cfg.GeocodeZipURL,
		Nominatim: cfg.NominatimURL,
		IPLocate:  cfg.IPLocateURL,
	}, logger)
	weatherClient := weather.NewClient(fetcher, weather.Endpoints{
		OneCall:        cfg.OneCallURL,
		LegacyWeather:  cfg.LegacyWeatherURL,
		LegacyForecast: cfg.LegacyForecastURL,
	}, logger)

	if cfg.MetricsAddr != "" {
		srv := observability.NewMetricsServer(cfg.MetricsAddr)
		go func() {
			logger.Info("metrics listener starting", zap.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics listener", zap.Error(err))
			}
		}()
	}

	return tools.NewHandler(resolver, weatherClient, logger), nil
}

func runServe(ctx context.Context, logger *zap.Logger) error {
	handler, err := buildHandler(logger)
	if err != nil {
		return err
	}

	srv := server.New(handler, version, logger)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
