// Package interp interpolates tabulated values.
package interp

import (
	"fmt"
	"math"
	"sort"
)

// Segment is one interval of a table with the values at both ends.
type Segment struct {
	X0, X1 float64
	V0, V1 float64
}

// LinearInterpolate performs linear interpolation within a segment.
// Formula:
//
//	f(x) ≈ (1-t)f(x0) + t*f(x1)
//
// where:
//
//	t = (x - x0) / (x1 - x0)
func LinearInterpolate(seg Segment, x float64) (float64, error) {
	if seg.X1 <= seg.X0 {
		return 0, fmt.Errorf("invalid segment: X1 must be > X0")
	}

	// Small tolerance for floating point.
	const epsilon = 1e-9
	if x < seg.X0-epsilon || x > seg.X1+epsilon {
		return 0, fmt.Errorf("x coordinate %.6f is outside segment [%.6f, %.6f]", x, seg.X0, seg.X1)
	}

	t := (x - seg.X0) / (seg.X1 - seg.X0)
	t = math.Max(0, math.Min(1, t))

	return (1-t)*seg.V0 + t*seg.V1, nil
}

// Table1D is a tabulated function of one variable.
type Table1D struct {
	X      []float64 // Strictly increasing abscissae (e.g., decimal years).
	Values []float64 // Values[i] corresponds to X[i].
}

// Validate checks if the table is valid.
func (tb *Table1D) Validate() error {
	if len(tb.X) < 2 {
		return fmt.Errorf("table must have at least 2 points")
	}
	if len(tb.Values) != len(tb.X) {
		return fmt.Errorf("number of values (%d) must match X coordinates (%d)", len(tb.Values), len(tb.X))
	}
	for i := 1; i < len(tb.X); i++ {
		if tb.X[i] <= tb.X[i-1] {
			return fmt.Errorf("X coordinates must be strictly increasing (row %d)", i)
		}
	}
	for i, v := range tb.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d is not finite", i)
		}
	}
	return nil
}

// Contains reports whether x lies within the table range.
func (tb *Table1D) Contains(x float64) bool {
	return len(tb.X) > 0 && x >= tb.X[0] && x <= tb.X[len(tb.X)-1]
}

// InterpolateAt performs linear interpolation at x.
func (tb *Table1D) InterpolateAt(x float64) (float64, error) {
	if err := tb.Validate(); err != nil {
		return 0, fmt.Errorf("invalid table: %w", err)
	}
	if !tb.Contains(x) {
		return 0, fmt.Errorf("x coordinate %.6f is outside table range [%.6f, %.6f]", x, tb.X[0], tb.X[len(tb.X)-1])
	}

	// First index with X[i] >= x; the segment ends there.
	i := sort.SearchFloat64s(tb.X, x)
	if i == 0 {
		i = 1
	}

	return LinearInterpolate(Segment{
		X0: tb.X[i-1],
		X1: tb.X[i],
		V0: tb.Values[i-1],
		V1: tb.Values[i],
	}, x)
}
