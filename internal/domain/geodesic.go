package domain

import (
	"fmt"
	"math"
)

// GeoCoordinate is a planetographic latitude/longitude in degrees.
// The zero value is invalid; build coordinates with NewGeoCoordinate.
type GeoCoordinate struct {
	Latitude  float64 // Degrees, −90..90.
	Longitude float64 // Degrees, −180..180.
	Valid     bool
}

// NewGeoCoordinate returns a valid coordinate or an InvalidArgumentError
// when either component is out of range or not a number.
func NewGeoCoordinate(lat, lon float64) (GeoCoordinate, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return GeoCoordinate{}, &InvalidArgumentError{Argument: "latitude", Reason: fmt.Sprintf("%v is outside [-90, 90]", lat)}
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return GeoCoordinate{}, &InvalidArgumentError{Argument: "longitude", Reason: fmt.Sprintf("%v is outside [-180, 180]", lon)}
	}
	return GeoCoordinate{Latitude: lat, Longitude: lon, Valid: true}, nil
}

// UnknownCoordinate returns the invalid placeholder coordinate.
func UnknownCoordinate() GeoCoordinate {
	return GeoCoordinate{}
}

// SpheroidShape describes an oblate spheroid body.
type SpheroidShape struct {
	EquatorialRadius float64 // Kilometres.
	PolarRadius      float64 // Kilometres.
}

// Flattening returns (a − b) / a.
func (s SpheroidShape) Flattening() float64 {
	return (s.EquatorialRadius - s.PolarRadius) / s.EquatorialRadius
}

// ShortestDistance returns the geodesic distance between two coordinates on
// the spheroid, in the unit of the shape radii, using Andoyer's method
// (Meeus, Astronomical Algorithms, ch. 11).
func ShortestDistance(loc1, loc2 GeoCoordinate, shape SpheroidShape) (float64, error) {
	if !loc1.Valid {
		return 0, &InvalidArgumentError{Argument: "loc1", Reason: "coordinate is unknown"}
	}
	if !loc2.Valid {
		return 0, &InvalidArgumentError{Argument: "loc2", Reason: "coordinate is unknown"}
	}
	if !(shape.EquatorialRadius > 0) || !(shape.PolarRadius > 0) {
		return 0, &InvalidArgumentError{Argument: "shape", Reason: "radii must be positive"}
	}

	f := shape.Flattening()

	// F, G and λ are half-angles; the squared trig terms are taken from the
	// full angles directly.
	sumLat := Deg2Rad(loc1.Latitude + loc2.Latitude)
	diffLat := Deg2Rad(loc1.Latitude - loc2.Latitude)
	diffLon := Deg2Rad(loc1.Longitude - loc2.Longitude)

	sin2F := SinSquaredFromDouble(sumLat)
	cos2F := CosSquaredFromDouble(sumLat)
	sin2G := SinSquaredFromDouble(diffLat)
	cos2G := CosSquaredFromDouble(diffLat)
	sin2L := SinSquaredFromDouble(diffLon)
	cos2L := CosSquaredFromDouble(diffLon)

	S := sin2G*cos2L + cos2F*sin2L
	C := cos2G*cos2L + sin2F*sin2L

	// Coincident points: S vanishes only when both coordinates name the same
	// place, where ω = 0 and R = 0/0.
	if S == 0 {
		return 0, nil
	}

	omega := math.Atan(math.Sqrt(S / C))
	D := 2 * omega * shape.EquatorialRadius

	// Antipodal points: C = 0 gives ω = π/2 and the H1 term vanishes in the limit.
	if C == 0 {
		H2 := 1 / (2 * S)
		return D * (1 - f*H2*cos2F*sin2G), nil
	}

	R := math.Sqrt(S*C) / omega
	H1 := (3*R - 1) / (2 * C)
	H2 := (3*R + 1) / (2 * S)

	return D * (1 + f*H1*sin2F*cos2G - f*H2*cos2F*sin2G), nil
}
