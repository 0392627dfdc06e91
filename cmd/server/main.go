// Package main provides the ephemeris API HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/ephemeris-api/internal/adapter/store/csv"
	"go.ngs.io/ephemeris-api/internal/domain"
	httpHandler "go.ngs.io/ephemeris-api/internal/http"
	"go.ngs.io/ephemeris-api/internal/logging"
	"go.ngs.io/ephemeris-api/internal/observability"
	"go.ngs.io/ephemeris-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("ephemeris-api version %s\n", version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ephemeris-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Info(ctx, "starting ephemeris API server",
		logging.String("version", version),
		logging.String("port", cfg.Port),
		logging.String("series_source", cfg.SeriesSource),
		logging.String("delta_t", cfg.DeltaT),
	)

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, log)
	if err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewHTTPCollector(nil)
	if err != nil {
		return fmt.Errorf("failed to initialise metrics collector: %w", err)
	}

	// Initialize stores.
	seriesLoader, seriesDir, err := cfg.seriesLoader()
	if err != nil {
		return err
	}
	log.Info(ctx, "series store ready", logging.String("dir", seriesDir))

	shapeStore := csv.NewShapeStore(cfg.DataDir)

	provider, err := cfg.deltaTProvider()
	if err != nil {
		return err
	}

	// Initialize use case.
	ephemerisUC := usecase.NewEphemerisUseCase(
		seriesLoader,
		shapeStore,
		domain.NewTimeScaleConverter(provider),
		collector,
		log,
	)

	// Setup router.
	gin.SetMode(gin.ReleaseMode)
	router := httpHandler.SetupRouter(ephemerisUC, httpHandler.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
		Metrics:        collector,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", logging.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-stopCtx.Done():
	}

	log.Info(ctx, "shutting down ephemeris API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Ephemeris API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  ephemeris-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  DATA_DIR                CSV series and bodies.csv directory (default: ./data)")
	fmt.Println("  SERIES_SOURCE           csv, vsop87 or netcdf (default: csv)")
	fmt.Println("  VSOP87_DIR              Directory of VSOP87D.* files (default: $DATA_DIR/vsop87)")
	fmt.Println("  NETCDF_DIR              Directory of <body>.nc files (default: $DATA_DIR/netcdf)")
	fmt.Println("  DELTA_T                 espenak-meeus, table ($DATA_DIR/deltat.csv) or seconds (default: espenak-meeus)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  LOG_LEVEL               debug, info, warn or error (default: info)")
	fmt.Println("  LOG_FORMAT              text or json (default: text)")
	fmt.Println("  TRACING_ENABLED         Enable OpenTelemetry tracing (default: false)")
	fmt.Println("  TRACING_EXPORTER        stdout or otlp (default: stdout)")
	fmt.Println("  TRACING_SERVICE_NAME    Service name on exported spans (default: ephemeris-api)")
	fmt.Println("  TRACING_SAMPLE_RATIO    Parent-based sampling ratio in [0, 1] (default: 1)")
	fmt.Println("  OTLP_ENDPOINT           OTLP gRPC collector address (default: localhost:4317)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  ephemeris-api")
	fmt.Println()
	fmt.Println("  # Serve the published VSOP87D files")
	fmt.Println("  SERIES_SOURCE=vsop87 VSOP87_DIR=/srv/vsop87 ephemeris-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                          Health check")
	fmt.Println("  GET /metrics                         Prometheus metrics")
	fmt.Println("  GET /v1/time                         Convert between UT, TT and TAI")
	fmt.Println("  GET /v1/planets                      List planet numbers")
	fmt.Println("  GET /v1/planets/:number              Look up a planet by number")
	fmt.Println("  GET /v1/bodies                       List bodies with series data")
	fmt.Println("  GET /v1/bodies/:body/position        Heliocentric ecliptic position")
	fmt.Println("  GET /v1/bodies/:body/distance        Surface distance between two points")
	fmt.Println("  GET /v1/mars/sol                     Mars Sol Date")
	fmt.Println()
}
