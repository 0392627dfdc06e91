package domain

import (
	"strconv"
	"strings"
)

// Planet identifies one of the eight major planets by its VSOP87 number.
type Planet int

// Planet numbers follow the VSOP87 file convention.
const (
	Mercury Planet = iota + 1
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
)

//nolint:gochecknoglobals // Read-only lookup table.
var planetNames = [...]string{
	Mercury: "Mercury",
	Venus:   "Venus",
	Earth:   "Earth",
	Mars:    "Mars",
	Jupiter: "Jupiter",
	Saturn:  "Saturn",
	Uranus:  "Uranus",
	Neptune: "Neptune",
}

// String returns the planet name, or "Planet(n)" for numbers outside 1..8.
func (p Planet) String() string {
	if p.Valid() {
		return planetNames[p]
	}
	return "Planet(" + strconv.Itoa(int(p)) + ")"
}

// Valid reports whether p is one of the eight planets.
func (p Planet) Valid() bool {
	return p >= Mercury && p <= Neptune
}

// PlanetByNumber maps 1..8 to Mercury..Neptune.
func PlanetByNumber(n int) (Planet, error) {
	p := Planet(n)
	if !p.Valid() {
		return 0, &NoMatchError{Kind: "planet number", Value: strconv.Itoa(n)}
	}
	return p, nil
}

// PlanetByName resolves a case-insensitive planet name.
func PlanetByName(name string) (Planet, error) {
	for p := Mercury; p <= Neptune; p++ {
		if strings.EqualFold(planetNames[p], strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return 0, &NoMatchError{Kind: "planet name", Value: strconv.Quote(name)}
}

// AllPlanets returns the planets in number order.
func AllPlanets() []Planet {
	planets := make([]Planet, 0, int(Neptune))
	for p := Mercury; p <= Neptune; p++ {
		planets = append(planets, p)
	}
	return planets
}
