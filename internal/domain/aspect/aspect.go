// Package aspect finds the angular relationships between chart bodies.
package aspect

import (
	"math"

	"github.com/okian/kpastro/internal/domain/chart"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/angle"
)

// MinorOrb is the orb allowed for every minor aspect, in degrees.
const MinorOrb = 2.0

// Kind is one recognized aspect angle.
type Kind struct {
	Name    string
	Degrees int
	Major   bool
}

// Kinds lists the recognized aspects by angle.
var Kinds = [...]Kind{
	{"Conjunction", 0, true},
	{"Semi Sextile", 30, false},
	{"Semi Quintile", 36, false},
	{"Semi Square", 45, false},
	{"Sextile", 60, true},
	{"Quintile", 72, false},
	{"Square", 90, true},
	{"Sesqui Quintile", 108, false},
	{"Trine", 120, true},
	{"Sesqui Square", 135, false},
	{"Bi Quintile", 144, false},
	{"Quincunx", 150, false},
	{"Opposition", 180, true},
}

var orbs = map[string]float64{
	ephemeris.Sun:     15,
	ephemeris.Moon:    12,
	ephemeris.Mercury: 7,
	ephemeris.Venus:   7,
	ephemeris.Mars:    8,
	ephemeris.Jupiter: 9,
	ephemeris.Saturn:  9,
	ephemeris.Uranus:  5,
	ephemeris.Neptune: 5,
	ephemeris.Pluto:   5,
	ephemeris.Rahu:    12,
	ephemeris.Ketu:    12,
}

// Order is the sequence Find walks the bodies in, the traditional weekday
// rulers followed by the outer planets and the nodes.
var Order = [...]string{
	ephemeris.Sun,
	ephemeris.Moon,
	ephemeris.Mars,
	ephemeris.Mercury,
	ephemeris.Jupiter,
	ephemeris.Venus,
	ephemeris.Saturn,
	ephemeris.Uranus,
	ephemeris.Neptune,
	ephemeris.Pluto,
	ephemeris.Rahu,
	ephemeris.Ketu,
}

// Aspect relates an ordered pair of bodies.
type Aspect struct {
	P1      string  `json:"p1"`
	P2      string  `json:"p2"`
	Type    string  `json:"type"`
	Degrees int     `json:"degrees"`
	Orb     float64 `json:"orb"`
}

// Orb returns the major-aspect orb of a body, zero when unknown.
func Orb(body string) float64 {
	return orbs[body]
}

// Find returns the aspects between every ordered pair of distinct bodies in c,
// walking both sides in Order. Both (a, b) and (b, a) are reported.
func Find(c chart.Chart) []Aspect {
	bodies := make([]chart.Planet, 0, len(Order))
	for _, name := range Order {
		if p, ok := c.Planet(name); ok {
			bodies = append(bodies, p)
		}
	}
	var out []Aspect
	for _, a := range bodies {
		for _, b := range bodies {
			if a.Name == b.Name {
				continue
			}
			if asp, ok := Between(a.Name, a.Longitude, b.Name, b.Longitude); ok {
				out = append(out, asp)
			}
		}
	}
	return out
}

// Between returns the closest aspect formed by two bodies, if any falls within orb.
func Between(p1 string, lon1 float64, p2 string, lon2 float64) (Aspect, bool) {
	sep := angle.Separation(lon1, lon2)
	major := math.Max(Orb(p1), Orb(p2))

	best, bestOrb := -1, math.Inf(1)
	for i, k := range Kinds {
		allowed := MinorOrb
		if k.Major {
			allowed = major
		}
		orb := math.Abs(sep - float64(k.Degrees))
		if orb <= allowed && orb < bestOrb {
			best, bestOrb = i, orb
		}
	}
	if best < 0 {
		return Aspect{}, false
	}
	return Aspect{
		P1:      p1,
		P2:      p2,
		Type:    Kinds[best].Name,
		Degrees: Kinds[best].Degrees,
		Orb:     angle.Round(bestOrb, 3),
	}, true
}
