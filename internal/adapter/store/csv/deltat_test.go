package csv

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"go.ngs.io/ephemeris-api/internal/domain"
)

const deltaTCSV = `year,delta_t_seconds
# IERS yearly means
1990,56.86
2000,63.83
2010,66.07
`

// TestLoadDeltaTTable tests interpolation inside the table and the fallback outside it.
func TestLoadDeltaTTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DeltaTFile, deltaTCSV)

	table, err := LoadDeltaTTable(filepath.Join(dir, DeltaTFile), domain.ConstantDeltaT(-1))
	if err != nil {
		t.Fatalf("LoadDeltaTTable: %v", err)
	}

	if first, last := table.Range(); first != 1990 || last != 2010 {
		t.Errorf("Range() = %v, %v", first, last)
	}

	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"tabulated", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 63.83},
		{"between", time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC), (56.86 + 63.83) / 2},
		{"before", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), -1},
		{"after", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.DeltaT(tt.time); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DeltaT(%v) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

// TestLoadDeltaTTable_Errors tests missing and malformed tables.
func TestLoadDeltaTTable_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDeltaTTable(filepath.Join(dir, DeltaTFile), nil)
	if !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("missing file: got %v, want ErrDataNotFound", err)
	}

	for name, content := range map[string]string{
		"header.csv":   "year,seconds\n2000,63.83\n2001,64.09\n",
		"year.csv":     "year,delta_t_seconds\nx,63.83\n2001,64.09\n",
		"value.csv":    "year,delta_t_seconds\n2000,y\n2001,64.09\n",
		"single.csv":   "year,delta_t_seconds\n2000,63.83\n",
		"order.csv":    "year,delta_t_seconds\n2001,64.09\n2000,63.83\n",
		"columns.csv":  "year,delta_t_seconds\n2000,63.83,1\n2001,64.09\n",
		"infinite.csv": "year,delta_t_seconds\n2000,Inf\n2001,64.09\n",
	} {
		writeFile(t, dir, name, content)
		if _, err := LoadDeltaTTable(filepath.Join(dir, name), nil); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

// TestParseDeltaTProvider tests the table keyword and the domain fallbacks.
func TestParseDeltaTProvider(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DeltaTFile, deltaTCSV)

	p, err := ParseDeltaTProvider(" Table ", dir)
	if err != nil {
		t.Fatalf("ParseDeltaTProvider(table): %v", err)
	}
	if _, ok := p.(*DeltaTTable); !ok {
		t.Errorf("got %T, want *DeltaTTable", p)
	}

	p, err = ParseDeltaTProvider("69.2", dir)
	if err != nil {
		t.Fatalf("ParseDeltaTProvider(69.2): %v", err)
	}
	if p != domain.ConstantDeltaT(69.2) {
		t.Errorf("got %v, want ConstantDeltaT(69.2)", p)
	}

	if _, err := ParseDeltaTProvider("table", t.TempDir()); !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("table without file: got %v", err)
	}
	if _, err := ParseDeltaTProvider("bogus", dir); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("bogus: got %v", err)
	}
}
