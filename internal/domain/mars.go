package domain

const (
	// MarsSolEpochJD is the Julian Date (UT) of sol 0 of the Mars sol count
	// (1873-12-29T12:00 UT).
	MarsSolEpochJD = 2405522.0
	// MarsSolDays is the length of a mean Mars solar day in Earth days.
	MarsSolDays = 1.02749
)

// CalcMarsSolDate returns the (fractional) Mars sol number for a UT Julian Date.
func CalcMarsSolDate(jdUT float64) float64 {
	return (jdUT - MarsSolEpochJD) / MarsSolDays
}
