// Package store defines the coefficient-table and body-shape sources consumed
// by the use case layer.
package store

import (
	"regexp"
	"strings"

	"go.ngs.io/ephemeris-api/internal/domain"
)

// SeriesLoader is the interface for loading a body's VSOP87 coefficient table.
type SeriesLoader interface {
	// LoadSeries loads the complete coefficient table for a body (e.g., "mars").
	// Missing or incomplete tables return an error matching domain.ErrDataNotFound.
	LoadSeries(body string) (*domain.CoefficientTable, error)
}

// ShapeLoader is the interface for loading a body's spheroid shape.
type ShapeLoader interface {
	// LoadShape returns the equatorial and polar radii of a body. Bodies whose
	// physical parameters are unknown return domain.ErrDataNotFound.
	LoadShape(body string) (domain.SpheroidShape, error)
}

var bodyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// NormalizeBody lower-cases and validates a body identifier so that it is
// safe to embed in a file name.
func NormalizeBody(body string) (string, error) {
	b := strings.ToLower(strings.TrimSpace(body))
	if !bodyPattern.MatchString(b) {
		return "", &domain.InvalidArgumentError{Argument: "body", Reason: "must match " + bodyPattern.String()}
	}
	return b, nil
}
