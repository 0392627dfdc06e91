package source

import (
	"os"
	"path/filepath"
	"testing"

	"go.ngs.io/ephemeris-api/internal/adapter/store/csv"
	"go.ngs.io/ephemeris-api/internal/adapter/store/netcdf"
	"go.ngs.io/ephemeris-api/internal/adapter/store/vsop87"
)

// TestNewSeriesLoader tests store selection by kind.
func TestNewSeriesLoader(t *testing.T) {
	dir := t.TempDir()

	loader, err := NewSeriesLoader("CSV", dir)
	if _, ok := loader.(*csv.SeriesStore); err != nil || !ok {
		t.Errorf("csv: got %T, %v", loader, err)
	}
	loader, err = NewSeriesLoader(VSOP87, dir)
	if _, ok := loader.(*vsop87.Store); err != nil || !ok {
		t.Errorf("vsop87: got %T, %v", loader, err)
	}
	loader, err = NewSeriesLoader(NetCDF, dir)
	if _, ok := loader.(*netcdf.SeriesStore); err != nil || !ok {
		t.Errorf("netcdf: got %T, %v", loader, err)
	}

	if _, err := NewSeriesLoader("sqlite", dir); err == nil {
		t.Error("expected error for unknown kind")
	}
}

// TestNewSeriesLoader_Directory tests the directory checks.
func TestNewSeriesLoader_Directory(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewSeriesLoader(CSV, filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSeriesLoader(CSV, file); err == nil {
		t.Error("expected error for a file path")
	}
}

// TestValid tests kind validation.
func TestValid(t *testing.T) {
	for _, k := range Kinds() {
		if !Valid(k) {
			t.Errorf("Valid(%q) = false", k)
		}
	}
	if Valid("sqlite") {
		t.Error("Valid(sqlite) = true")
	}
}
