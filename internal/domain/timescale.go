package domain

import (
	"math"
	"time"
)

const (
	// GregorianEpochJD is the Julian Date of 0001-01-01T00:00:00 UTC (proleptic Gregorian).
	GregorianEpochJD = 1721425.5
	// J2000 is the Julian Date of 2000-01-01T12:00:00 TT.
	J2000 = 2451545.0

	// SecondsPerDay is the length of a Julian Date day in SI seconds.
	SecondsPerDay = 86400.0
	// TTMinusTAISeconds is the fixed offset TT − TAI.
	TTMinusTAISeconds = 32.184

	DaysPerJulianYear       = 365.25
	DaysPerJulianCentury    = 36525.0
	DaysPerJulianMillennium = 365250.0

	millisPerDay = 86400000
)

//nolint:gochecknoglobals // Read-only epoch origin.
var gregorianOriginUnix = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

// CalendarToJulianDate converts a calendar instant to a Julian Date (UT).
// The instant is taken in UTC and rounded to the nearest millisecond.
func CalendarToJulianDate(t time.Time) float64 {
	t = t.UTC().Round(time.Millisecond)

	// Whole days and the millisecond remainder are kept apart so that the
	// fraction of day is computed from an exact integer.
	secs := t.Unix() - gregorianOriginUnix
	days := floorDiv(secs, 86400)
	millis := (secs-days*86400)*1000 + int64(t.Nanosecond()/int(time.Millisecond))

	return GregorianEpochJD + float64(days) + float64(millis)/millisPerDay
}

// JulianDateToCalendar converts a Julian Date (UT) back to a UTC calendar
// instant with millisecond resolution.
func JulianDateToCalendar(jd float64) time.Time {
	elapsed := jd - GregorianEpochJD
	days := math.Floor(elapsed)
	millis := int64(math.Round((elapsed - days) * millisPerDay))
	if millis >= millisPerDay {
		days++
		millis -= millisPerDay
	}

	secs := gregorianOriginUnix + int64(days)*86400
	return time.Unix(secs, 0).Add(time.Duration(millis) * time.Millisecond).UTC()
}

// DeltaTProvider returns TT − UT in seconds for a calendar instant.
type DeltaTProvider interface {
	DeltaT(t time.Time) float64
}

// DeltaTFunc adapts a plain function to DeltaTProvider.
type DeltaTFunc func(t time.Time) float64

// DeltaT calls f(t).
func (f DeltaTFunc) DeltaT(t time.Time) float64 {
	return f(t)
}

// TimeScaleConverter converts Julian Dates between UT, TT and TAI.
// It holds no state besides the delta-T provider and is safe for concurrent use
// when the provider is.
type TimeScaleConverter struct {
	deltaT DeltaTProvider
}

// NewTimeScaleConverter creates a converter. A nil provider falls back to
// EspenakMeeusDeltaT.
func NewTimeScaleConverter(provider DeltaTProvider) *TimeScaleConverter {
	if provider == nil {
		provider = EspenakMeeusDeltaT{}
	}
	return &TimeScaleConverter{deltaT: provider}
}

// DeltaTAt returns the provider's TT − UT offset in seconds at the calendar
// instant of jd.
func (c *TimeScaleConverter) DeltaTAt(jd float64) float64 {
	return c.deltaT.DeltaT(JulianDateToCalendar(jd))
}

// UTToTT converts a UT Julian Date to TT.
func (c *TimeScaleConverter) UTToTT(jdUT float64) float64 {
	return jdUT + c.DeltaTAt(jdUT)/SecondsPerDay
}

// TTToUT converts a TT Julian Date to UT.
//
// Delta-T is looked up at the calendar instant of the TT value itself rather
// than iterating on the UT result; delta-T varies slowly enough that the
// second-order error stays far below a millisecond.
func (c *TimeScaleConverter) TTToUT(jdTT float64) float64 {
	return jdTT - c.DeltaTAt(jdTT)/SecondsPerDay
}

// TTToTAI converts a TT Julian Date to TAI.
func TTToTAI(jdTT float64) float64 {
	return jdTT - TTMinusTAISeconds/SecondsPerDay
}

// TAIToTT converts a TAI Julian Date to TT.
func TAIToTT(jdTAI float64) float64 {
	return jdTAI + TTMinusTAISeconds/SecondsPerDay
}

// DaysSinceJ2000 returns days elapsed since J2000.0 for a TT Julian Date.
func DaysSinceJ2000(jdTT float64) float64 {
	return jdTT - J2000
}

// YearsSinceJ2000 returns Julian years since J2000.0.
func YearsSinceJ2000(jdTT float64) float64 {
	return DaysSinceJ2000(jdTT) / DaysPerJulianYear
}

// CenturiesSinceJ2000 returns Julian centuries since J2000.0.
func CenturiesSinceJ2000(jdTT float64) float64 {
	return DaysSinceJ2000(jdTT) / DaysPerJulianCentury
}

// MillenniaSinceJ2000 returns Julian millennia since J2000.0, the time
// argument of the VSOP87 series.
func MillenniaSinceJ2000(jdTT float64) float64 {
	return DaysSinceJ2000(jdTT) / DaysPerJulianMillennium
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
