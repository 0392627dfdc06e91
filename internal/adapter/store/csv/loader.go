// Package csv provides CSV-based coefficient table and body shape loading.
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
	"sync"

	"go.ngs.io/ephemeris-api/internal/adapter/store"
	"go.ngs.io/ephemeris-api/internal/domain"
)

const (
	seriesPrefix = "vsop87_"
	seriesSuffix = ".csv"
)

// SeriesStore provides access to VSOP87 coefficient tables stored as one CSV
// file per body: <dataDir>/vsop87_<body>.csv.
type SeriesStore struct {
	dataDir string
	cache   map[string]*domain.CoefficientTable // Cache loaded tables.
	mu      sync.RWMutex                        // Protect cache.
}

// NewSeriesStore creates a new CSV-based series store.
func NewSeriesStore(dataDir string) *SeriesStore {
	return &SeriesStore{
		dataDir: dataDir,
		cache:   make(map[string]*domain.CoefficientTable),
	}
}

// LoadSeries loads the coefficient table for a named body.
func (s *SeriesStore) LoadSeries(body string) (*domain.CoefficientTable, error) {
	name, err := store.NormalizeBody(body)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if table, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return table, nil
	}
	s.mu.RUnlock()

	filename := filepath.Join(s.dataDir, seriesPrefix+name+seriesSuffix)

	//nolint:gosec // G304: File path constructed from dataDir (config) and a validated body name.
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.DataNotFoundError{Body: name, What: "coefficient table"}
		}
		return nil, fmt.Errorf("failed to open CSV file for body %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	terms, err := readSeries(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read series for body %s: %w", name, err)
	}

	table, err := domain.NewCoefficientTable(name, terms)
	if err != nil {
		return nil, fmt.Errorf("invalid series for body %s: %w", name, err)
	}
	if err := table.Complete(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[name] = table
	s.mu.Unlock()

	return table, nil
}

// readSeries parses rows of coordinate,exponent,amplitude,phase,frequency.
func readSeries(r io.Reader) ([]domain.SeriesTerm, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	if err := expectHeader(reader, []string{"coordinate", "exponent", "amplitude", "phase", "frequency"}); err != nil {
		return nil, err
	}

	terms := make([]domain.SeriesTerm, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		if len(record) != 5 {
			return nil, fmt.Errorf("invalid CSV record: expected 5 columns, got %d", len(record))
		}

		line, _ := reader.FieldPos(0)

		coord, err := domain.ParseCoordinate(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		exponent, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid exponent: %w", line, err)
		}

		values := make([]float64, 3)
		for i, field := range record[2:] {
			values[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q: %w", line, field, err)
			}
		}

		terms = append(terms, domain.SeriesTerm{
			Coordinate: coord,
			Exponent:   exponent,
			Amplitude:  values[0],
			Phase:      values[1],
			Frequency:  values[2],
		})
	}

	return terms, nil
}

// ListBodies returns the bodies that have a series file in dataDir.
func (s *SeriesStore) ListBodies() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	bodies := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, seriesPrefix) && strings.HasSuffix(name, seriesSuffix) {
			bodies = append(bodies, name[len(seriesPrefix):len(name)-len(seriesSuffix)])
		}
	}

	return bodies, nil
}

// expectHeader reads one record and compares it to the expected column names.
func expectHeader(reader *csv.Reader, expected []string) error {
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	if len(header) != len(expected) {
		return fmt.Errorf("invalid CSV header: expected %v, got %v", expected, header)
	}

	for i, h := range header {
		if strings.TrimSpace(h) != expected[i] {
			return fmt.Errorf("invalid CSV header: expected column %d to be %s, got %s", i, expected[i], h)
		}
	}

	return nil
}
