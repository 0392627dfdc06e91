// Package source selects a coefficient table store by name.
package source

import (
	"fmt"
	"os"
	"strings"

	"go.ngs.io/ephemeris-api/internal/adapter/store"
	"go.ngs.io/ephemeris-api/internal/adapter/store/csv"
	"go.ngs.io/ephemeris-api/internal/adapter/store/netcdf"
	"go.ngs.io/ephemeris-api/internal/adapter/store/vsop87"
)

// Store kinds.
const (
	CSV    = "csv"
	VSOP87 = "vsop87"
	NetCDF = "netcdf"
)

// Kinds lists the accepted store kinds.
func Kinds() []string {
	return []string{CSV, VSOP87, NetCDF}
}

// Valid reports whether kind names a known store.
func Valid(kind string) bool {
	switch strings.ToLower(kind) {
	case CSV, VSOP87, NetCDF:
		return true
	default:
		return false
	}
}

// NewSeriesLoader opens the series store of the given kind rooted at dir.
// dir must be an existing directory.
func NewSeriesLoader(kind, dir string) (store.SeriesLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open series directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("series path %s is not a directory", dir)
	}

	switch strings.ToLower(kind) {
	case CSV:
		return csv.NewSeriesStore(dir), nil
	case VSOP87:
		return vsop87.NewStore(dir), nil
	case NetCDF:
		return netcdf.NewSeriesStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown series source %q: want one of %s", kind, strings.Join(Kinds(), ", "))
	}
}
