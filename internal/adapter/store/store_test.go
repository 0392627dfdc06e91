package store

import (
	"errors"
	"testing"

	"go.ngs.io/ephemeris-api/internal/domain"
)

func TestNormalizeBody(t *testing.T) {
	got, err := NormalizeBody("  Mars ")
	if err != nil || got != "mars" {
		t.Errorf("NormalizeBody(Mars) = %q, %v", got, err)
	}

	for _, bad := range []string{"", "../etc/passwd", "mars/../x", "a b"} {
		if _, err := NormalizeBody(bad); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("NormalizeBody(%q): expected ErrInvalidArgument, got %v", bad, err)
		}
	}
}
