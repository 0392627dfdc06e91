package vsop87

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.ngs.io/ephemeris-api/internal/domain"
)

type fixtureTerm struct {
	a, b, c float64
}

type fixtureBlock struct {
	variable, power int
	terms           []fixtureTerm
}

// writeFixture renders blocks in the published fixed-width layout.
func writeFixture(t *testing.T, dir string, planet domain.Planet, blocks []fixtureBlock) {
	t.Helper()

	var sb strings.Builder
	name := strings.ToUpper(planet.String())
	for _, blk := range blocks {
		fmt.Fprintf(&sb, " VSOP87 VERSION D4    %-7s   VARIABLE %d (LBR)       *T**%d%7d TERMS    HIGHER ORDER OF THE TERMS\n",
			name, blk.variable, blk.power, len(blk.terms))
		for i, term := range blk.terms {
			fmt.Fprintf(&sb, " %d%d%d%d%5d%s%15.11f%18.11f%18.11f%14.11f%20.11f\n",
				4, int(planet), blk.variable, blk.power, i+1, strings.Repeat("  0", 12),
				0.0, 0.0, term.a, term.b, term.c)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, FileName(planet)), []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func earthBlocks() []fixtureBlock {
	return []fixtureBlock{
		{1, 0, []fixtureTerm{{1.75347045673, 0, 0}, {0.03341656456, 4.66925680417, 6283.0758499914}}},
		{1, 1, []fixtureTerm{{6283.31966747491, 0, 0}}},
		{2, 0, []fixtureTerm{{0.00000279620, 3.19870156017, 84334.66158130829}}},
		{3, 0, []fixtureTerm{{1.00013988784, 0, 0}, {0.01670699632, 3.09846350258, 6283.0758499914}}},
	}
}

// TestLoadSeries tests parsing a fixed-width file into ordered terms.
func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, domain.Earth, earthBlocks())

	table, err := NewStore(dir).LoadSeries("earth")
	if err != nil {
		t.Fatalf("LoadSeries error: %v", err)
	}

	if table.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", table.Len())
	}

	terms := table.Terms()
	tests := []struct {
		idx      int
		coord    domain.Coordinate
		exponent int
		a, c     float64
	}{
		{0, domain.Longitude, 0, 1.75347045673, 0},
		{2, domain.Longitude, 1, 6283.31966747491, 0},
		{3, domain.Latitude, 0, 0.0000027962, 84334.66158130829},
		{5, domain.Radius, 0, 0.01670699632, 6283.0758499914},
	}
	for _, tt := range tests {
		got := terms[tt.idx]
		if got.Coordinate != tt.coord || got.Exponent != tt.exponent {
			t.Errorf("term %d = %s^%d, want %s^%d", tt.idx, got.Coordinate, got.Exponent, tt.coord, tt.exponent)
		}
		if math.Abs(got.Amplitude-tt.a) > 1e-11 {
			t.Errorf("term %d amplitude = %v, want %v", tt.idx, got.Amplitude, tt.a)
		}
		if math.Abs(got.Frequency-tt.c) > 1e-9 {
			t.Errorf("term %d frequency = %v, want %v", tt.idx, got.Frequency, tt.c)
		}
	}
}

// TestLoadSeries_Position tests that parsed terms feed the position calculator.
func TestLoadSeries_Position(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, domain.Earth, earthBlocks())

	table, err := NewStore(dir).LoadSeries("Earth")
	if err != nil {
		t.Fatalf("LoadSeries error: %v", err)
	}

	pos, err := domain.CalcPlanetPosition(table, domain.J2000)
	if err != nil {
		t.Fatalf("CalcPlanetPosition error: %v", err)
	}

	wantL := domain.NormalizeLongitude(1.75347045673 + 0.03341656456*math.Cos(4.66925680417))
	if math.Abs(pos.Longitude-wantL) > 1e-12 {
		t.Errorf("longitude = %v, want %v", pos.Longitude, wantL)
	}
	wantR := (1.00013988784 + 0.01670699632*math.Cos(3.09846350258)) * domain.AUKilometres
	if math.Abs(pos.Radius-wantR) > 1e-3 {
		t.Errorf("radius = %v km, want %v km", pos.Radius, wantR)
	}
}

// TestLoadSeries_NotPlanet tests that non-VSOP87 bodies report DataNotFound.
func TestLoadSeries_NotPlanet(t *testing.T) {
	_, err := NewStore(t.TempDir()).LoadSeries("moon")
	if !errors.Is(err, domain.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

// TestLoadSeries_MissingFile tests that a planet without a file reports DataNotFound.
func TestLoadSeries_MissingFile(t *testing.T) {
	_, err := NewStore(t.TempDir()).LoadSeries("mars")
	if !errors.Is(err, domain.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

// TestLoadSeries_Incomplete tests that a file with no latitude block is rejected.
func TestLoadSeries_Incomplete(t *testing.T) {
	dir := t.TempDir()
	blocks := earthBlocks()
	writeFixture(t, dir, domain.Earth, []fixtureBlock{blocks[0], blocks[3]})

	_, err := NewStore(dir).LoadSeries("earth")
	if !errors.Is(err, domain.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

// TestParse_Errors tests malformed input.
func TestParse_Errors(t *testing.T) {
	header := func(body string, variable, power, count int) string {
		return fmt.Sprintf(" VSOP87 VERSION D4    %-7s   VARIABLE %d (LBR)       *T**%d%7d TERMS    HIGHER ORDER OF THE TERMS\n",
			body, variable, power, count)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"wrong body", header("MARS", 1, 0, 0)},
		{"bad variable", header("EARTH", 7, 0, 0)},
		{"bad power", header("EARTH", 1, 6, 0)},
		{"truncated block", header("EARTH", 1, 0, 2)},
		{"garbage", "hello world\n"},
		{"short term", header("EARTH", 1, 0, 1) + " 4310    1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input), domain.Earth); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestFileName tests the published file naming.
func TestFileName(t *testing.T) {
	if got := FileName(domain.Mercury); got != "VSOP87D.mer" {
		t.Errorf("FileName(Mercury) = %q", got)
	}
	if got := FileName(domain.Neptune); got != "VSOP87D.nep" {
		t.Errorf("FileName(Neptune) = %q", got)
	}
}

// TestListBodies tests discovery of present planet files.
func TestListBodies(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, domain.Earth, earthBlocks())
	if err := os.WriteFile(filepath.Join(dir, FileName(domain.Venus)), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	bodies, err := NewStore(dir).ListBodies()
	if err != nil {
		t.Fatalf("ListBodies error: %v", err)
	}
	if len(bodies) != 2 || bodies[0] != "venus" || bodies[1] != "earth" {
		t.Errorf("ListBodies() = %v, want [venus earth]", bodies)
	}
}
