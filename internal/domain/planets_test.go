package domain

import (
	"errors"
	"testing"
)

// TestPlanetByNumber tests the 1..8 mapping.
func TestPlanetByNumber(t *testing.T) {
	names := []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}
	for i, name := range names {
		p, err := PlanetByNumber(i + 1)
		if err != nil {
			t.Fatalf("PlanetByNumber(%d): %v", i+1, err)
		}
		if p.String() != name {
			t.Errorf("PlanetByNumber(%d) = %s, want %s", i+1, p, name)
		}
	}
}

// TestPlanetByNumber_NoMatch tests numbers outside 1..8.
func TestPlanetByNumber_NoMatch(t *testing.T) {
	for _, n := range []int{0, -1, 9, 100} {
		_, err := PlanetByNumber(n)
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("PlanetByNumber(%d): expected ErrNoMatch, got %v", n, err)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("PlanetByNumber(%d): expected ErrInvalidArgument, got %v", n, err)
		}
	}
}

// TestPlanetByName tests case-insensitive lookup.
func TestPlanetByName(t *testing.T) {
	p, err := PlanetByName(" mars ")
	if err != nil || p != Mars {
		t.Errorf("PlanetByName(mars) = %v, %v; want Mars", p, err)
	}
	if _, err := PlanetByName("pluto"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch for pluto, got %v", err)
	}
	if got := len(AllPlanets()); got != 8 {
		t.Errorf("AllPlanets() has %d entries, want 8", got)
	}
	if got := Planet(12).String(); got != "Planet(12)" {
		t.Errorf("Planet(12).String() = %q", got)
	}
}
