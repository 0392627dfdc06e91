// Package vsop87 reads the published fixed-width VSOP87D series files
// (VSOP87D.mer ... VSOP87D.nep) into coefficient tables.
package vsop87

import (
	"bufio"
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

// FilePrefix is the file name prefix of the heliocentric spherical version.
const FilePrefix = "VSOP87D."

//nolint:gochecknoglobals // Read-only lookup table.
var extensions = map[domain.Planet]string{
	domain.Mercury: "mer",
	domain.Venus:   "ven",
	domain.Earth:   "ear",
	domain.Mars:    "mar",
	domain.Jupiter: "jup",
	domain.Saturn:  "sat",
	domain.Uranus:  "ura",
	domain.Neptune: "nep",
}

// Column layout of header and term records.
const (
	headerMarker   = " VSOP87 VERSION"
	hdrBodyStart   = 22
	hdrBodyEnd     = 29
	hdrVariableCol = 41
	hdrPowerCol    = 59
	hdrCountStart  = 60
	hdrCountEnd    = 67

	termAmplitudeStart = 79
	termAmplitudeEnd   = 97
	termPhaseEnd       = 111
	termFrequencyEnd   = 131
)

// Store loads VSOP87D files from a directory.
type Store struct {
	dataDir string
	cache   map[domain.Planet]*domain.CoefficientTable // Cache loaded tables.
	mu      sync.RWMutex                               // Protect cache.
}

// NewStore creates a new VSOP87D file store.
func NewStore(dataDir string) *Store {
	return &Store{
		dataDir: dataDir,
		cache:   make(map[domain.Planet]*domain.CoefficientTable),
	}
}

// FileName returns the VSOP87D file name for a planet.
func FileName(p domain.Planet) string {
	return FilePrefix + extensions[p]
}

// LoadSeries loads the coefficient table for a planet name.
// Bodies that are not VSOP87 planets return domain.ErrDataNotFound.
func (s *Store) LoadSeries(body string) (*domain.CoefficientTable, error) {
	name, err := store.NormalizeBody(body)
	if err != nil {
		return nil, err
	}

	planet, err := domain.PlanetByName(name)
	if err != nil {
		return nil, &domain.DataNotFoundError{Body: name, What: "VSOP87D series"}
	}

	s.mu.RLock()
	if table, ok := s.cache[planet]; ok {
		s.mu.RUnlock()
		return table, nil
	}
	s.mu.RUnlock()

	path := filepath.Join(s.dataDir, FileName(planet))

	//nolint:gosec // G304: File name comes from the fixed extension table.
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.DataNotFoundError{Body: name, What: "VSOP87D series"}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	terms, err := Parse(file, planet)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	table, err := domain.NewCoefficientTable(name, terms)
	if err != nil {
		return nil, fmt.Errorf("invalid series in %s: %w", path, err)
	}
	if err := table.Complete(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[planet] = table
	s.mu.Unlock()

	return table, nil
}

// Parse reads a VSOP87D file. Each block starts with a header naming the
// body, the variable (1=L, 2=B, 3=R), the power of T and the term count,
// followed by that many term records.
func Parse(r io.Reader, planet domain.Planet) ([]domain.SeriesTerm, error) {
	wantBody := strings.ToUpper(planet.String())

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 1024)

	terms := make([]domain.SeriesTerm, 0)
	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, headerMarker) {
			return nil, fmt.Errorf("line %d: expected block header", lineNo)
		}
		if len(line) < hdrCountEnd {
			return nil, fmt.Errorf("line %d: header too short", lineNo)
		}

		if got := strings.TrimSpace(line[hdrBodyStart:hdrBodyEnd]); got != wantBody {
			return nil, fmt.Errorf("line %d: expected body %s, found %s", lineNo, wantBody, got)
		}

		coord, err := variableToCoordinate(line[hdrVariableCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		power := int(line[hdrPowerCol] - '0')
		if power < 0 || power > domain.MaxSeriesExponent {
			return nil, fmt.Errorf("line %d: invalid power of T %q", lineNo, line[hdrPowerCol])
		}

		count, err := strconv.Atoi(strings.TrimSpace(line[hdrCountStart:hdrCountEnd]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid term count: %w", lineNo, err)
		}

		for i := 0; i < count; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("line %d: unexpected end of file, %d of %d terms read", lineNo, i, count)
			}
			lineNo++

			term, err := parseTerm(scanner.Text())
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			term.Coordinate = coord
			term.Exponent = power
			terms = append(terms, term)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read VSOP87 data: %w", err)
	}

	return terms, nil
}

func variableToCoordinate(b byte) (domain.Coordinate, error) {
	switch b {
	case '1':
		return domain.Longitude, nil
	case '2':
		return domain.Latitude, nil
	case '3':
		return domain.Radius, nil
	default:
		return 0, fmt.Errorf("invalid variable index %q", b)
	}
}

// parseTerm reads A, B and C from a term record.
func parseTerm(line string) (domain.SeriesTerm, error) {
	if len(line) < termPhaseEnd+1 {
		return domain.SeriesTerm{}, fmt.Errorf("term record too short (%d columns)", len(line))
	}

	end := termFrequencyEnd
	if len(line) < end {
		end = len(line)
	}

	fields := [3]string{
		line[termAmplitudeStart:termAmplitudeEnd],
		line[termAmplitudeEnd:termPhaseEnd],
		line[termPhaseEnd:end],
	}

	var values [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return domain.SeriesTerm{}, fmt.Errorf("invalid number %q: %w", strings.TrimSpace(f), err)
		}
		values[i] = v
	}

	return domain.SeriesTerm{Amplitude: values[0], Phase: values[1], Frequency: values[2]}, nil
}

// ListBodies returns the planets whose VSOP87D file is present.
func (s *Store) ListBodies() ([]string, error) {
	bodies := make([]string, 0, len(extensions))
	for _, p := range domain.AllPlanets() {
		info, err := os.Stat(filepath.Join(s.dataDir, FileName(p)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", FileName(p), err)
		}
		if !info.IsDir() {
			bodies = append(bodies, strings.ToLower(p.String()))
		}
	}
	return bodies, nil
}
