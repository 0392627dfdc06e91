package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.ngs.io/ephemeris-api/internal/adapter/interp"
	"go.ngs.io/ephemeris-api/internal/domain"
)

const (
	// DeltaTFile is the file name of the observed delta-T table inside the
	// data directory.
	DeltaTFile = "deltat.csv"
	// DeltaTTableName selects the observed table in ParseDeltaTProvider.
	DeltaTTableName = "table"
)

// DeltaTTable interpolates observed delta-T values tabulated by decimal year
// (header year,delta_t_seconds). Instants outside the table use the fallback.
type DeltaTTable struct {
	table    interp.Table1D
	fallback domain.DeltaTProvider
}

// LoadDeltaTTable reads a delta-T table. A nil fallback uses the Espenak &
// Meeus polynomials.
func LoadDeltaTTable(path string, fallback domain.DeltaTProvider) (*DeltaTTable, error) {
	if fallback == nil {
		fallback = domain.EspenakMeeusDeltaT{}
	}

	//nolint:gosec // G304: Path comes from configuration.
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.DataNotFoundError{What: "delta-T table " + filepath.Base(path)}
		}
		return nil, fmt.Errorf("failed to open delta-T table %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	table, err := readDeltaT(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read delta-T table %s: %w", path, err)
	}
	return &DeltaTTable{table: table, fallback: fallback}, nil
}

func readDeltaT(r io.Reader) (interp.Table1D, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var table interp.Table1D
	if err := expectHeader(reader, []string{"year", "delta_t_seconds"}); err != nil {
		return table, err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) != 2 {
			return table, fmt.Errorf("line %d: expected 2 columns, got %d", line, len(record))
		}
		year, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return table, fmt.Errorf("line %d: invalid year: %w", line, err)
		}
		seconds, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return table, fmt.Errorf("line %d: invalid delta-T: %w", line, err)
		}

		table.X = append(table.X, year)
		table.Values = append(table.Values, seconds)
	}

	if err := table.Validate(); err != nil {
		return table, err
	}
	return table, nil
}

// DeltaT returns TT − UT in seconds for t.
func (d *DeltaTTable) DeltaT(t time.Time) float64 {
	y := domain.DecimalYear(t)
	if !d.table.Contains(y) {
		return d.fallback.DeltaT(t)
	}
	v, err := d.table.InterpolateAt(y)
	if err != nil {
		return d.fallback.DeltaT(t)
	}
	return v
}

// Range returns the first and last tabulated years.
func (d *DeltaTTable) Range() (first, last float64) {
	return d.table.X[0], d.table.X[len(d.table.X)-1]
}

// ParseDeltaTProvider accepts DeltaTTableName, which loads dataDir/deltat.csv,
// or anything domain.ParseDeltaTProvider accepts.
func ParseDeltaTProvider(s, dataDir string) (domain.DeltaTProvider, error) {
	if strings.EqualFold(strings.TrimSpace(s), DeltaTTableName) {
		table, err := LoadDeltaTTable(filepath.Join(dataDir, DeltaTFile), nil)
		if err != nil {
			return nil, err
		}
		return table, nil
	}
	return domain.ParseDeltaTProvider(s)
}
