package domain

import (
	"fmt"
	"math"
	"strings"
)

// AUKilometres converts the VSOP87 radius unit (astronomical units) to kilometres.
const AUKilometres = 149597870.7

// MaxSeriesExponent is the highest power of T carried by a VSOP87 series.
const MaxSeriesExponent = 5

// Coordinate selects which spherical coordinate a series term contributes to.
type Coordinate int

const (
	// Longitude is heliocentric ecliptic longitude (L).
	Longitude Coordinate = iota
	// Latitude is heliocentric ecliptic latitude (B).
	Latitude
	// Radius is heliocentric distance (R).
	Radius

	numCoordinates
)

// String returns the VSOP87 letter for the coordinate.
func (c Coordinate) String() string {
	switch c {
	case Longitude:
		return "L"
	case Latitude:
		return "B"
	case Radius:
		return "R"
	default:
		return fmt.Sprintf("Coordinate(%d)", int(c))
	}
}

// ParseCoordinate accepts the VSOP87 letters (L, B, R) or the full names.
func ParseCoordinate(s string) (Coordinate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "lon", "longitude":
		return Longitude, nil
	case "b", "lat", "latitude":
		return Latitude, nil
	case "r", "radius":
		return Radius, nil
	default:
		return 0, &InvalidArgumentError{Argument: "coordinate", Reason: fmt.Sprintf("unknown coordinate %q", s)}
	}
}

// SeriesTerm is one periodic term A·cos(B + C·T) of a coordinate's series
// for the power T^Exponent.
type SeriesTerm struct {
	Coordinate Coordinate
	Exponent   int     // Power of T (millennia), 0..5.
	Amplitude  float64 // A, radians or AU.
	Phase      float64 // B, radians.
	Frequency  float64 // C, radians per millennium.
}

// CoefficientTable is the immutable ordered set of series terms for one body.
type CoefficientTable struct {
	body  string
	terms []SeriesTerm
	count [numCoordinates]int
}

// NewCoefficientTable validates and copies terms into a new table.
func NewCoefficientTable(body string, terms []SeriesTerm) (*CoefficientTable, error) {
	t := &CoefficientTable{
		body:  body,
		terms: make([]SeriesTerm, len(terms)),
	}
	copy(t.terms, terms)

	for i, term := range t.terms {
		if term.Coordinate < Longitude || term.Coordinate >= numCoordinates {
			return nil, &InvalidArgumentError{Argument: "terms", Reason: fmt.Sprintf("term %d has unknown coordinate %d", i, int(term.Coordinate))}
		}
		if term.Exponent < 0 || term.Exponent > MaxSeriesExponent {
			return nil, &InvalidArgumentError{Argument: "terms", Reason: fmt.Sprintf("term %d has exponent %d outside 0..%d", i, term.Exponent, MaxSeriesExponent)}
		}
		t.count[term.Coordinate]++
	}

	return t, nil
}

// Body returns the body name the table was built for.
func (t *CoefficientTable) Body() string { return t.body }

// Len returns the number of terms.
func (t *CoefficientTable) Len() int { return len(t.terms) }

// Terms returns a copy of the terms in table order.
func (t *CoefficientTable) Terms() []SeriesTerm {
	out := make([]SeriesTerm, len(t.terms))
	copy(out, t.terms)
	return out
}

// HasCoordinate reports whether at least one term contributes to c.
func (t *CoefficientTable) HasCoordinate(c Coordinate) bool {
	if c < Longitude || c >= numCoordinates {
		return false
	}
	return t.count[c] > 0
}

// Complete returns a DataNotFoundError unless the table has terms for all
// three coordinates. Stores call it before handing a table to callers.
func (t *CoefficientTable) Complete() error {
	if t == nil || len(t.terms) == 0 {
		return &DataNotFoundError{What: "coefficient table"}
	}
	for c := Longitude; c < numCoordinates; c++ {
		if t.count[c] == 0 {
			return &DataNotFoundError{Body: t.body, What: fmt.Sprintf("series terms for coordinate %s", c)}
		}
	}
	return nil
}

// EclipticPosition is a heliocentric ecliptic position.
type EclipticPosition struct {
	Longitude float64 // Radians, (−π, π].
	Latitude  float64 // Radians, [−π/2, π/2].
	Radius    float64 // Kilometres.
}

// CalcPlanetPosition evaluates the table at a TT Julian Date.
//
//	coeff[c][k] = Σ A·cos(B + C·T)   over terms with (coordinate c, exponent k)
//	value[c]    = Σ coeff[c][k]·T^k
//
// with T in Julian millennia since J2000. A coordinate with no terms evaluates
// to zero; use Complete to reject such tables. A nil or empty table returns a
// DataNotFoundError.
func CalcPlanetPosition(table *CoefficientTable, jdTT float64) (EclipticPosition, error) {
	if table == nil || len(table.terms) == 0 {
		body := ""
		if table != nil {
			body = table.body
		}
		return EclipticPosition{}, &DataNotFoundError{Body: body, What: "coefficient table"}
	}

	T := MillenniaSinceJ2000(jdTT)

	var coeffs [numCoordinates][MaxSeriesExponent + 1]float64
	for _, term := range table.terms {
		coeffs[term.Coordinate][term.Exponent] += term.Amplitude * math.Cos(term.Phase+term.Frequency*T)
	}

	lon := EvaluatePolynomial(coeffs[Longitude][:], T)
	lat := EvaluatePolynomial(coeffs[Latitude][:], T)
	r := EvaluatePolynomial(coeffs[Radius][:], T)

	return EclipticPosition{
		Longitude: NormalizeLongitude(lon),
		Latitude:  NormalizeLatitude(lat),
		Radius:    r * AUKilometres,
	}, nil
}
