package domain

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// SinSquaredFromDouble returns sin²(x) given the doubled angle 2x (radians),
// using sin²x = (1 − cos 2x) / 2.
func SinSquaredFromDouble(doubled float64) float64 {
	return (1.0 - math.Cos(doubled)) / 2.0
}

// CosSquaredFromDouble returns cos²(x) given the doubled angle 2x (radians),
// using cos²x = (1 + cos 2x) / 2.
func CosSquaredFromDouble(doubled float64) float64 {
	return (1.0 + math.Cos(doubled)) / 2.0
}

// NormalizeLongitude reduces an angle in radians into (−π, π].
func NormalizeLongitude(rad float64) float64 {
	r := math.Mod(rad, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	} else if r > math.Pi {
		r -= 2 * math.Pi
	}
	return r
}

// NormalizeLatitude reduces an angle in radians into [−π/2, π/2].
// Values past a pole fold back over it, so 100° becomes 80°.
func NormalizeLatitude(rad float64) float64 {
	r := NormalizeLongitude(rad)
	switch {
	case r > math.Pi/2:
		r = math.Pi - r
	case r < -math.Pi/2:
		r = -math.Pi - r
	}
	return r
}

// NormalizeAngle360 maps degrees into [0, 360).
func NormalizeAngle360(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}
