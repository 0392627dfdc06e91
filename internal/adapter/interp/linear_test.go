package interp

import (
	"math"
	"testing"
)

// TestLinearInterpolate_Midpoint tests interpolation at the middle of a segment
func TestLinearInterpolate_Midpoint(t *testing.T) {
	seg := Segment{X0: 2000, X1: 2001, V0: 63.83, V1: 64.09}

	result, err := LinearInterpolate(seg, 2000.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := 63.96
	if math.Abs(result-expected) > 1e-9 {
		t.Errorf("Midpoint: expected %.10f, got %.10f", expected, result)
	}
}

// TestLinearInterpolate_EndPoints tests that both ends return exact values
func TestLinearInterpolate_EndPoints(t *testing.T) {
	seg := Segment{X0: 0, X1: 10, V0: 1, V1: 2}

	for _, tt := range []struct {
		x, expected float64
	}{
		{0, 1},
		{10, 2},
	} {
		result, err := LinearInterpolate(seg, tt.x)
		if err != nil {
			t.Fatalf("Unexpected error at %.1f: %v", tt.x, err)
		}
		if math.Abs(result-tt.expected) > 1e-12 {
			t.Errorf("At %.1f: expected %.10f, got %.10f", tt.x, tt.expected, result)
		}
	}
}

// TestLinearInterpolate_Errors tests inverted segments and out-of-bounds points
func TestLinearInterpolate_Errors(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		x    float64
	}{
		{"inverted", Segment{X0: 1, X1: 0}, 0.5},
		{"empty", Segment{X0: 1, X1: 1}, 1},
		{"x too small", Segment{X0: 0, X1: 10}, -1},
		{"x too large", Segment{X0: 0, X1: 10}, 11},
	}

	for _, tt := range tests {
		if _, err := LinearInterpolate(tt.seg, tt.x); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

// TestTable1D_InterpolateAt tests table lookups at and between points
func TestTable1D_InterpolateAt(t *testing.T) {
	table := &Table1D{
		X:      []float64{1990, 2000, 2010, 2020},
		Values: []float64{56.86, 63.83, 66.07, 69.36},
	}

	tests := []struct {
		x, expected float64
	}{
		{1990, 56.86},
		{2000, 63.83},
		{2020, 69.36},
		{1995, (56.86 + 63.83) / 2},
		{2012.5, 66.07 + 0.25*(69.36-66.07)},
	}

	for _, tt := range tests {
		result, err := table.InterpolateAt(tt.x)
		if err != nil {
			t.Fatalf("Unexpected error at %.1f: %v", tt.x, err)
		}
		if math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("At %.1f: expected %.10f, got %.10f", tt.x, tt.expected, result)
		}
	}

	for _, x := range []float64{1989.9, 2020.1} {
		if _, err := table.InterpolateAt(x); err == nil {
			t.Errorf("At %.1f: expected out-of-range error", x)
		}
		if table.Contains(x) {
			t.Errorf("Contains(%.1f) = true", x)
		}
	}
}

// TestTable1D_Validate tests table validation
func TestTable1D_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table1D
		wantErr bool
	}{
		{
			name:    "valid table",
			table:   &Table1D{X: []float64{0, 1, 2}, Values: []float64{1, 2, 3}},
			wantErr: false,
		},
		{
			name:    "too few points",
			table:   &Table1D{X: []float64{0}, Values: []float64{1}},
			wantErr: true,
		},
		{
			name:    "mismatched value count",
			table:   &Table1D{X: []float64{0, 1}, Values: []float64{1}},
			wantErr: true,
		},
		{
			name:    "non-increasing X",
			table:   &Table1D{X: []float64{0, 2, 2}, Values: []float64{1, 2, 3}},
			wantErr: true,
		},
		{
			name:    "non-finite value",
			table:   &Table1D{X: []float64{0, 1}, Values: []float64{1, math.NaN()}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
