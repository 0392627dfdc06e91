package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.ngs.io/ephemeris-api/internal/adapter/store"
	"go.ngs.io/ephemeris-api/internal/adapter/store/csv"
	"go.ngs.io/ephemeris-api/internal/adapter/store/source"
	"go.ngs.io/ephemeris-api/internal/domain"
	"go.ngs.io/ephemeris-api/internal/observability"
)

// config is the server configuration read from the environment.
type config struct {
	Port           string
	DataDir        string
	SeriesSource   string
	VSOP87Dir      string
	NetCDFDir      string
	DeltaT         string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	Tracing        observability.TracingConfig
}

// loadConfig reads the configuration through getenv (os.Getenv in main).
func loadConfig(getenv func(string) string) (config, error) {
	get := func(key, defaultValue string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return defaultValue
	}

	dataDir := get("DATA_DIR", "./data")
	cfg := config{
		Port:         get("PORT", "8080"),
		DataDir:      dataDir,
		SeriesSource: strings.ToLower(get("SERIES_SOURCE", source.CSV)),
		VSOP87Dir:    get("VSOP87_DIR", filepath.Join(dataDir, "vsop87")),
		NetCDFDir:    get("NETCDF_DIR", filepath.Join(dataDir, "netcdf")),
		DeltaT:       strings.ToLower(get("DELTA_T", domain.EspenakMeeusName)),
		LogLevel:     get("LOG_LEVEL", "info"),
		LogFormat:    get("LOG_FORMAT", "text"),
	}

	if origins := get("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if !source.Valid(cfg.SeriesSource) {
		return config{}, fmt.Errorf("invalid SERIES_SOURCE %q: want one of %s", cfg.SeriesSource, strings.Join(source.Kinds(), ", "))
	}

	if _, err := cfg.deltaTProvider(); err != nil {
		return config{}, err
	}

	ratio := 1.0
	if raw := get("TRACING_SAMPLE_RATIO", ""); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return config{}, fmt.Errorf("invalid TRACING_SAMPLE_RATIO %q: want a number in [0, 1]", raw)
		}
		ratio = parsed
	}

	enabled := false
	if raw := get("TRACING_ENABLED", ""); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return config{}, fmt.Errorf("invalid TRACING_ENABLED %q: %w", raw, err)
		}
		enabled = parsed
	}

	cfg.Tracing = observability.TracingConfig{
		Enabled:     enabled,
		ServiceName: get("TRACING_SERVICE_NAME", "ephemeris-api"),
		Exporter:    strings.ToLower(get("TRACING_EXPORTER", "stdout")),
		Endpoint:    get("OTLP_ENDPOINT", ""),
		SampleRatio: ratio,
	}

	return cfg, nil
}

// deltaTProvider returns the configured delta-T model. DELTA_T is
// "espenak-meeus", "table" (DATA_DIR/deltat.csv) or a constant in seconds.
func (c config) deltaTProvider() (domain.DeltaTProvider, error) {
	p, err := csv.ParseDeltaTProvider(c.DeltaT, c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("invalid DELTA_T: %w", err)
	}
	return p, nil
}

// seriesLoader builds the configured coefficient table source and returns
// the directory it reads.
func (c config) seriesLoader() (store.SeriesLoader, string, error) {
	dir := c.DataDir
	switch c.SeriesSource {
	case source.VSOP87:
		dir = c.VSOP87Dir
	case source.NetCDF:
		dir = c.NetCDFDir
	}

	loader, err := source.NewSeriesLoader(c.SeriesSource, dir)
	if err != nil {
		return nil, dir, err
	}
	return loader, dir, nil
}
