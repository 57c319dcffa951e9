// Package chart builds the annotated planet and house tables of a chart from raw
// ephemeris output.
package chart

import (
	"fmt"

	"github.com/okian/kpastro/internal/domain/house"
	"github.com/okian/kpastro/internal/domain/zodiac"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/angle"
)

// Ascendant is the name of the synthesized ascendant record.
const Ascendant = "Asc"

// Planet is one annotated row of the planet table.
type Planet struct {
	Name             string  `json:"name"`
	Retrograde       bool    `json:"retrograde"`
	SignLongitude    float64 `json:"sign_longitude"`
	SignLongitudeDMS string  `json:"sign_longitude_dms"`
	Latitude         float64 `json:"latitude"`
	House            int     `json:"house"`
	zodiac.Classification
}

// IsPoint reports whether the record is a computed point rather than a body.
func (p Planet) IsPoint() bool {
	return p.Name == Ascendant
}

// House is one annotated row of the house table.
type House struct {
	Number           int     `json:"house"`
	Roman            string  `json:"roman"`
	Width            float64 `json:"arc_width"`
	SignLongitude    float64 `json:"sign_longitude"`
	SignLongitudeDMS string  `json:"sign_longitude_dms"`
	zodiac.Classification
}

// Chart is the planet table (ascendant first) and the twelve houses.
type Chart struct {
	Planets []Planet           `json:"planets"`
	Houses  [house.Count]House `json:"houses"`
}

// Build annotates a raw provider chart.
func Build(raw ephemeris.Chart) (Chart, error) {
	cusps := raw.CuspLongitudes()
	out := Chart{Planets: make([]Planet, 0, len(raw.Bodies)+1)}

	asc, err := planet(Ascendant, raw.Ascendant, 0, false)
	if err != nil {
		return Chart{}, err
	}
	asc.House = 1
	out.Planets = append(out.Planets, asc)

	for _, b := range raw.Bodies {
		p, err := planet(b.Name, b.Longitude, b.Latitude, b.Retrograde)
		if err != nil {
			return Chart{}, err
		}
		p.House = house.Allocate(p.Longitude, cusps)
		out.Planets = append(out.Planets, p)
	}

	for i, lon := range cusps {
		c, err := zodiac.Classify(lon)
		if err != nil {
			return Chart{}, fmt.Errorf("house %d cusp: %w", i+1, err)
		}
		within := signLongitude(c)
		out.Houses[i] = House{
			Number:           i + 1,
			Roman:            house.Roman(i + 1),
			Width:            angle.Forward(lon, cusps[(i+1)%house.Count]),
			SignLongitude:    within,
			SignLongitudeDMS: angle.FormatDMS(within),
			Classification:   c,
		}
	}
	return out, nil
}

// Merge builds a horary chart: bodies as they stand at the question moment,
// ascendant and cusps from the matched moment.
func Merge(question, matched ephemeris.Chart) (Chart, error) {
	raw := question
	raw.Ascendant = matched.Ascendant
	raw.Cusps = matched.Cusps
	return Build(raw)
}

func planet(name string, lon, lat float64, retro bool) (Planet, error) {
	c, err := zodiac.Classify(lon)
	if err != nil {
		return Planet{}, fmt.Errorf("%s: %w", name, err)
	}
	within := signLongitude(c)
	return Planet{
		Name:             name,
		Retrograde:       retro,
		SignLongitude:    within,
		SignLongitudeDMS: angle.FormatDMS(within),
		Latitude:         lat,
		Classification:   c,
	}, nil
}

func signLongitude(c zodiac.Classification) float64 {
	return c.Longitude - float64(c.SignIndex)*zodiac.SignArc
}

// Planet returns the named record.
func (c Chart) Planet(name string) (Planet, bool) {
	for _, p := range c.Planets {
		if p.Name == name {
			return p, true
		}
	}
	return Planet{}, false
}

// Bodies returns the planet records without computed points.
func (c Chart) Bodies() []Planet {
	out := make([]Planet, 0, len(c.Planets))
	for _, p := range c.Planets {
		if !p.IsPoint() {
			out = append(out, p)
		}
	}
	return out
}

// Cusps returns the cusp longitudes indexed by house-1.
func (c Chart) Cusps() [house.Count]float64 {
	var out [house.Count]float64
	for i, h := range c.Houses {
		out[i] = h.Longitude
	}
	return out
}
