// Package netcdf provides access to VSOP87 coefficient tables packed into
// NetCDF files, one file per body.
package netcdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	cdf "github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/ephemeris-api/internal/adapter/store"
	"go.ngs.io/ephemeris-api/internal/domain"
)

// Variable and dimension names expected in every series file.
const (
	TermDimName       = "term"
	CoordinateVarName = "coordinate"
	ExponentVarName   = "exponent"
	AmplitudeVarName  = "amplitude"
	PhaseVarName      = "phase"
	FrequencyVarName  = "frequency"

	fileSuffix = ".nc"
)

// SeriesStore reads <dataDir>/<body>.nc. Each file has a single "term"
// dimension; coordinate holds 0/1/2 for L/B/R.
type SeriesStore struct {
	dataDir string
	cache   map[string]*domain.CoefficientTable // Cache loaded tables.
	mu      sync.RWMutex                        // Protect cache.
}

// NewSeriesStore creates a new NetCDF series store.
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

	path := filepath.Join(s.dataDir, name+fileSuffix)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.DataNotFoundError{Body: name, What: "coefficient table"}
		}
		return nil, fmt.Errorf("failed to stat NetCDF file for body %s: %w", name, err)
	}

	terms, err := readSeriesFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load NetCDF series for body %s: %w", name, err)
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

// ListBodies returns the bodies that have a .nc file in dataDir.
func (s *SeriesStore) ListBodies() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read NetCDF data directory: %w", err)
	}

	bodies := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		bodies = append(bodies, strings.TrimSuffix(entry.Name(), fileSuffix))
	}
	return bodies, nil
}

//nolint:gosec // Path is built from configuration and a validated body name.
func readSeriesFile(path string) ([]domain.SeriesTerm, error) {
	nc, err := cdf.OpenFile(path, cdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	columns := make(map[string][]float64, 5)
	for _, name := range []string{CoordinateVarName, ExponentVarName, AmplitudeVarName, PhaseVarName, FrequencyVarName} {
		v, err := nc.Var(name)
		if err != nil {
			return nil, fmt.Errorf("variable %s not found: %w", name, err)
		}
		data, err := readFloat64Var(v)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		columns[name] = data
	}

	n := len(columns[CoordinateVarName])
	for name, data := range columns {
		if len(data) != n {
			return nil, fmt.Errorf("variable %s has %d values, expected %d", name, len(data), n)
		}
	}

	terms := make([]domain.SeriesTerm, n)
	for i := range terms {
		terms[i] = domain.SeriesTerm{
			Coordinate: domain.Coordinate(int(columns[CoordinateVarName][i])),
			Exponent:   int(columns[ExponentVarName][i]),
			Amplitude:  columns[AmplitudeVarName][i],
			Phase:      columns[PhaseVarName][i],
			Frequency:  columns[FrequencyVarName][i],
		}
	}

	return terms, nil
}

// readFloat64Var reads a 1D numeric variable as float64 values.
func readFloat64Var(v cdf.Var) ([]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable, got %dD", len(dims))
	}

	length, err := dims[0].Len()
	if err != nil {
		return nil, err
	}

	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}

	switch t {
	case cdf.DOUBLE:
		data := make([]float64, length)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case cdf.FLOAT:
		tmp := make([]float32, length)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case cdf.INT:
		tmp := make([]int32, length)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case cdf.SHORT:
		tmp := make([]int16, length)
		if err := v.ReadInt16s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}

// WriteSeriesFile writes a table in the layout read by SeriesStore.
func WriteSeriesFile(path string, table *domain.CoefficientTable) error {
	terms := table.Terms()
	if len(terms) == 0 {
		return fmt.Errorf("cannot write empty table for body %s", table.Body())
	}

	nc, err := cdf.CreateFile(path, cdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("failed to create NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	dim, err := nc.AddDim(TermDimName, uint64(len(terms)))
	if err != nil {
		return fmt.Errorf("failed to add dimension: %w", err)
	}
	dims := []cdf.Dim{dim}

	vCoord, err := nc.AddVar(CoordinateVarName, cdf.INT, dims)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", CoordinateVarName, err)
	}
	vExp, err := nc.AddVar(ExponentVarName, cdf.INT, dims)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", ExponentVarName, err)
	}
	vAmp, err := nc.AddVar(AmplitudeVarName, cdf.DOUBLE, dims)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", AmplitudeVarName, err)
	}
	vPha, err := nc.AddVar(PhaseVarName, cdf.DOUBLE, dims)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", PhaseVarName, err)
	}
	vFreq, err := nc.AddVar(FrequencyVarName, cdf.DOUBLE, dims)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", FrequencyVarName, err)
	}

	if err := nc.EndDef(); err != nil {
		return fmt.Errorf("failed to end define mode: %w", err)
	}

	coords := make([]int32, len(terms))
	exps := make([]int32, len(terms))
	amps := make([]float64, len(terms))
	phases := make([]float64, len(terms))
	freqs := make([]float64, len(terms))
	for i, term := range terms {
		coords[i] = int32(term.Coordinate) //nolint:gosec // Coordinate is 0..2.
		exps[i] = int32(term.Exponent)     //nolint:gosec // Exponent is 0..5.
		amps[i] = term.Amplitude
		phases[i] = term.Phase
		freqs[i] = term.Frequency
	}

	if err := vCoord.WriteInt32s(coords); err != nil {
		return fmt.Errorf("failed to write %s: %w", CoordinateVarName, err)
	}
	if err := vExp.WriteInt32s(exps); err != nil {
		return fmt.Errorf("failed to write %s: %w", ExponentVarName, err)
	}
	if err := vAmp.WriteFloat64s(amps); err != nil {
		return fmt.Errorf("failed to write %s: %w", AmplitudeVarName, err)
	}
	if err := vPha.WriteFloat64s(phases); err != nil {
		return fmt.Errorf("failed to write %s: %w", PhaseVarName, err)
	}
	if err := vFreq.WriteFloat64s(freqs); err != nil {
		return fmt.Errorf("failed to write %s: %w", FrequencyVarName, err)
	}

	return nil
}
