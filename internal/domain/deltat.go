package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EspenakMeeusName selects EspenakMeeusDeltaT in ParseDeltaTProvider.
const EspenakMeeusName = "espenak-meeus"

// ConstantDeltaT is a DeltaTProvider returning the same offset (seconds) for
// every instant. Useful for tests and for callers pinning a published value.
type ConstantDeltaT float64

// DeltaT returns the constant offset.
func (c ConstantDeltaT) DeltaT(_ time.Time) float64 {
	return float64(c)
}

// EspenakMeeusDeltaT estimates delta-T with the piecewise polynomial
// expressions of Espenak & Meeus (2006), "Five Millennium Canon of Solar
// Eclipses", valid from −1999 to +3000 and extrapolated parabolically outside.
type EspenakMeeusDeltaT struct{}

// deltaTSegment is a polynomial in u = (y − Origin) / Scale valid for y < Until.
type deltaTSegment struct {
	Until  float64
	Origin float64
	Scale  float64
	Coeffs []float64
}

//nolint:gochecknoglobals // Read-only coefficient table.
var espenakMeeusSegments = []deltaTSegment{
	{Until: -500, Origin: 1820, Scale: 100, Coeffs: []float64{-20, 0, 32}},
	{Until: 500, Origin: 0, Scale: 100, Coeffs: []float64{10583.6, -1014.41, 33.78311, -5.952053, -0.1798452, 0.022174192, 0.0090316521}},
	{Until: 1600, Origin: 1000, Scale: 100, Coeffs: []float64{1574.2, -556.01, 71.23472, 0.319781, -0.8503463, -0.005050998, 0.0083572073}},
	{Until: 1700, Origin: 1600, Scale: 1, Coeffs: []float64{120, -0.9808, -0.01532, 1.0 / 7129}},
	{Until: 1800, Origin: 1700, Scale: 1, Coeffs: []float64{8.83, 0.1603, -0.0059285, 0.00013336, -1.0 / 1174000}},
	{Until: 1860, Origin: 1800, Scale: 1, Coeffs: []float64{13.72, -0.332447, 0.0068612, 0.0041116, -0.00037436, 0.0000121272, -0.0000001699, 0.000000000875}},
	{Until: 1900, Origin: 1860, Scale: 1, Coeffs: []float64{7.62, 0.5737, -0.251754, 0.01680668, -0.0004473624, 1.0 / 233174}},
	{Until: 1920, Origin: 1900, Scale: 1, Coeffs: []float64{-2.79, 1.494119, -0.0598939, 0.0061966, -0.000197}},
	{Until: 1941, Origin: 1920, Scale: 1, Coeffs: []float64{21.20, 0.84493, -0.076100, 0.0020936}},
	{Until: 1961, Origin: 1950, Scale: 1, Coeffs: []float64{29.07, 0.407, -1.0 / 233, 1.0 / 2547}},
	{Until: 1986, Origin: 1975, Scale: 1, Coeffs: []float64{45.45, 1.067, -1.0 / 260, -1.0 / 718}},
	{Until: 2005, Origin: 2000, Scale: 1, Coeffs: []float64{63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599}},
	{Until: 2050, Origin: 2000, Scale: 1, Coeffs: []float64{62.92, 0.32217, 0.005589}},
}

// DeltaT returns TT − UT in seconds for t.
func (EspenakMeeusDeltaT) DeltaT(t time.Time) float64 {
	return espenakMeeusDeltaT(DecimalYear(t))
}

func espenakMeeusDeltaT(y float64) float64 {
	for _, seg := range espenakMeeusSegments {
		if y < seg.Until {
			return EvaluatePolynomial(seg.Coeffs, (y-seg.Origin)/seg.Scale)
		}
	}

	// Long-term parabola; from 2050 to 2150 a linear term joins it to the
	// 2005–2050 polynomial.
	u := (y - 1820) / 100
	dt := EvaluatePolynomial([]float64{-20, 0, 32}, u)
	if y < 2150 {
		dt -= 0.5628 * (2150 - y)
	}
	return dt
}

// DecimalYear returns the year with the elapsed fraction of it, so that
// delta-T varies continuously instead of stepping each month.
func DecimalYear(t time.Time) float64 {
	t = t.UTC()
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return float64(t.Year()) + t.Sub(start).Seconds()/end.Sub(start).Seconds()
}

// ParseDeltaTProvider accepts EspenakMeeusName (or "") or a constant offset
// in seconds.
func ParseDeltaTProvider(s string) (DeltaTProvider, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == EspenakMeeusName {
		return EspenakMeeusDeltaT{}, nil
	}
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, &InvalidArgumentError{Argument: "delta-T", Reason: fmt.Sprintf("%q is neither %s nor a number of seconds", s, EspenakMeeusName)}
	}
	return ConstantDeltaT(seconds), nil
}
