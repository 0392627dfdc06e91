package domain

import (
	"math"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// TestCalendarToJulianDate_KnownDates tests conversion against published Julian Dates.
func TestCalendarToJulianDate_KnownDates(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{"Gregorian origin", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), 1721425.5},
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"J2000 noon", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Sputnik launch (Meeus 7.a)", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"Mars sol epoch", time.Date(1873, 12, 29, 12, 0, 0, 0, time.UTC), 2405522.0},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalendarToJulianDate(tt.time)
			if math.Abs(got-tt.expected) > 1e-8 {
				t.Errorf("CalendarToJulianDate(%v) = %.10f, want %.10f", tt.time, got, tt.expected)
			}
		})
	}
}

// TestCalendarToJulianDate_MatchesSGP4JDay cross-checks against go-satellite's JDay.
func TestCalendarToJulianDate_MatchesSGP4JDay(t *testing.T) {
	times := []time.Time{
		time.Date(1980, 2, 29, 6, 30, 15, 0, time.UTC),
		time.Date(2001, 9, 9, 1, 46, 40, 0, time.UTC),
		time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2099, 7, 4, 12, 0, 0, 0, time.UTC),
	}

	for _, ts := range times {
		want := satellite.JDay(ts.Year(), int(ts.Month()), ts.Day(), ts.Hour(), ts.Minute(), ts.Second())
		got := CalendarToJulianDate(ts)
		if math.Abs(got-want) > 1e-7 {
			t.Errorf("CalendarToJulianDate(%v) = %.10f, JDay = %.10f", ts, got, want)
		}
	}
}

// TestCalendarToJulianDate_NonUTCZone tests that the zone does not change the instant.
func TestCalendarToJulianDate_NonUTCZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	local := time.Date(2000, 1, 1, 21, 0, 0, 0, tokyo)
	if got := CalendarToJulianDate(local); math.Abs(got-J2000) > 1e-9 {
		t.Errorf("expected J2000 for 21:00 JST, got %.10f", got)
	}
}

// TestJulianDateRoundTrip tests calendar → JD → calendar within one millisecond.
func TestJulianDateRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1582, 10, 15, 0, 0, 0, 1_000_000, time.UTC),
		time.Date(1873, 12, 29, 12, 0, 0, 0, time.UTC),
		time.Date(1969, 12, 31, 23, 59, 59, 999_000_000, time.UTC),
		time.Date(2000, 1, 1, 11, 59, 27, 816_000_000, time.UTC),
		time.Date(2024, 2, 29, 17, 3, 4, 123_000_000, time.UTC),
		time.Date(2999, 12, 31, 23, 59, 59, 999_000_000, time.UTC),
	}

	for _, ts := range times {
		back := JulianDateToCalendar(CalendarToJulianDate(ts))
		if diff := back.Sub(ts); diff > time.Millisecond || diff < -time.Millisecond {
			t.Errorf("round trip of %v gave %v (diff %v)", ts, back, diff)
		}
		if back.Location() != time.UTC {
			t.Errorf("expected UTC result, got %v", back.Location())
		}
	}
}

// TestJulianDateToCalendar_KnownDates tests the inverse conversion.
func TestJulianDateToCalendar_KnownDates(t *testing.T) {
	got := JulianDateToCalendar(2451545.0)
	want := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("JulianDateToCalendar(J2000) = %v, want %v", got, want)
	}

	got = JulianDateToCalendar(2436116.31)
	want = time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC)
	if diff := got.Sub(want); diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("JulianDateToCalendar(2436116.31) = %v, want %v", got, want)
	}
}

// TestCalendarToJulianDate_Monotonic tests strict ordering over small and large steps.
func TestCalendarToJulianDate_Monotonic(t *testing.T) {
	start := time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC)
	steps := []time.Duration{time.Millisecond, time.Second, time.Hour, 24 * time.Hour, 400 * 24 * time.Hour}

	for _, step := range steps {
		prev := CalendarToJulianDate(start)
		ts := start
		for i := 0; i < 50; i++ {
			ts = ts.Add(step)
			cur := CalendarToJulianDate(ts)
			if !(cur > prev) {
				t.Fatalf("step %v: JD(%v) = %.10f not greater than %.10f", step, ts, cur, prev)
			}
			prev = cur
		}
	}
}

// TestUTToTT_ConstantDeltaT tests UT → TT with a fixed offset.
func TestUTToTT_ConstantDeltaT(t *testing.T) {
	conv := NewTimeScaleConverter(ConstantDeltaT(69.184))
	jdUT := 2460310.5

	got := conv.UTToTT(jdUT)
	want := jdUT + 69.184/SecondsPerDay
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("UTToTT = %.12f, want %.12f", got, want)
	}
	if back := conv.TTToUT(got); math.Abs(back-jdUT) > 1e-12 {
		t.Errorf("TTToUT(UTToTT(jd)) = %.12f, want %.12f", back, jdUT)
	}
}

// TestUTTTInverse_EspenakMeeus tests inverse consistency with a varying delta-T.
func TestUTTTInverse_EspenakMeeus(t *testing.T) {
	conv := NewTimeScaleConverter(EspenakMeeusDeltaT{})
	// One millisecond, in days.
	const tol = 1e-3 / SecondsPerDay

	for _, ts := range []time.Time{
		time.Date(1620, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1985, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	} {
		jd := CalendarToJulianDate(ts)
		back := conv.TTToUT(conv.UTToTT(jd))
		if math.Abs(back-jd) > tol {
			t.Errorf("%v: TTToUT(UTToTT(jd)) differs by %.3e days", ts, back-jd)
		}
	}
}

// TestTTToUT_UsesTTInstant tests that delta-T is looked up at the TT calendar instant.
func TestTTToUT_UsesTTInstant(t *testing.T) {
	var seen time.Time
	conv := NewTimeScaleConverter(DeltaTFunc(func(ts time.Time) float64 {
		seen = ts
		return 60
	}))

	jdTT := 2451545.0
	_ = conv.TTToUT(jdTT)
	if !seen.Equal(JulianDateToCalendar(jdTT)) {
		t.Errorf("delta-T looked up at %v, want %v", seen, JulianDateToCalendar(jdTT))
	}
}

// TestNewTimeScaleConverter_DefaultProvider tests the nil provider fallback.
func TestNewTimeScaleConverter_DefaultProvider(t *testing.T) {
	conv := NewTimeScaleConverter(nil)
	dt := conv.DeltaTAt(J2000)
	if dt < 60 || dt > 70 {
		t.Errorf("default delta-T at J2000 = %.3f s, expected about 64 s", dt)
	}
}

// TestTTToTAI tests the fixed TT − TAI offset.
func TestTTToTAI(t *testing.T) {
	jdTT := 2451545.0
	tai := TTToTAI(jdTT)
	if diff := (jdTT - tai) * SecondsPerDay; math.Abs(diff-32.184) > 1e-5 {
		t.Errorf("TT - TAI = %.6f s, want 32.184 s", diff)
	}
	if back := TAIToTT(tai); math.Abs(back-jdTT) > 1e-12 {
		t.Errorf("TAIToTT(TTToTAI(jd)) = %.12f, want %.12f", back, jdTT)
	}
}

// TestEpochOffsets tests the J2000-relative rescalings.
func TestEpochOffsets(t *testing.T) {
	if got := MillenniaSinceJ2000(2451545.0); got != 0 {
		t.Errorf("MillenniaSinceJ2000(J2000) = %v, want 0", got)
	}

	jd := J2000 + 365250.0
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"days", DaysSinceJ2000(jd), 365250},
		{"years", YearsSinceJ2000(jd), 1000},
		{"centuries", CenturiesSinceJ2000(jd), 10},
		{"millennia", MillenniaSinceJ2000(jd), 1},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s since J2000 = %.12f, want %.12f", tt.name, tt.got, tt.want)
		}
	}
}
