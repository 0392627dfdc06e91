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

// ShapesFile is the file name of the body shape table inside the data directory.
const ShapesFile = "bodies.csv"

// ShapeStore reads body radii from <dataDir>/bodies.csv with the header
// body,equatorial_radius_km,polar_radius_km. Empty radius fields mark a body
// whose physical parameters are unknown.
type ShapeStore struct {
	path string

	once   sync.Once
	shapes map[string]*domain.SpheroidShape // nil value: known body, unknown shape.
	err    error
}

// NewShapeStore creates a shape store reading dataDir/bodies.csv.
func NewShapeStore(dataDir string) *ShapeStore {
	return &ShapeStore{path: filepath.Join(dataDir, ShapesFile)}
}

// LoadShape returns the spheroid shape of a body.
func (s *ShapeStore) LoadShape(body string) (domain.SpheroidShape, error) {
	name, err := store.NormalizeBody(body)
	if err != nil {
		return domain.SpheroidShape{}, err
	}

	s.once.Do(s.load)
	if s.err != nil {
		return domain.SpheroidShape{}, s.err
	}

	shape, ok := s.shapes[name]
	if !ok || shape == nil {
		return domain.SpheroidShape{}, &domain.DataNotFoundError{Body: name, What: "shape"}
	}
	return *shape, nil
}

func (s *ShapeStore) load() {
	//nolint:gosec // G304: Path comes from configuration.
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.shapes = map[string]*domain.SpheroidShape{}
			return
		}
		s.err = fmt.Errorf("failed to open shape table %s: %w", s.path, err)
		return
	}
	defer func() { _ = file.Close() }()

	s.shapes, s.err = readShapes(file)
}

func readShapes(r io.Reader) (map[string]*domain.SpheroidShape, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	if err := expectHeader(reader, []string{"body", "equatorial_radius_km", "polar_radius_km"}); err != nil {
		return nil, err
	}

	shapes := make(map[string]*domain.SpheroidShape)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		if len(record) != 3 {
			return nil, fmt.Errorf("invalid CSV record: expected 3 columns, got %d", len(record))
		}

		name, err := store.NormalizeBody(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid body name %q: %w", record[0], err)
		}

		eqStr := strings.TrimSpace(record[1])
		polStr := strings.TrimSpace(record[2])
		if eqStr == "" || polStr == "" {
			shapes[name] = nil
			continue
		}

		equatorial, err := strconv.ParseFloat(eqStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid equatorial radius for body %s: %w", name, err)
		}
		polar, err := strconv.ParseFloat(polStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid polar radius for body %s: %w", name, err)
		}
		if equatorial <= 0 || polar <= 0 {
			return nil, fmt.Errorf("invalid radii for body %s: must be positive", name)
		}

		shapes[name] = &domain.SpheroidShape{EquatorialRadius: equatorial, PolarRadius: polar}
	}

	return shapes, nil
}
