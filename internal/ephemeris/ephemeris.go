// Package ephemeris defines the contract of the celestial-position provider the
// chart engine consumes, and the identifiers it accepts.
package ephemeris

import (
	"context"
	"time"
)

// Body names in the order providers report them.
const (
	Sun     = "Sun"
	Moon    = "Moon"
	Mercury = "Mercury"
	Venus   = "Venus"
	Mars    = "Mars"
	Jupiter = "Jupiter"
	Saturn  = "Saturn"
	Uranus  = "Uranus"
	Neptune = "Neptune"
	Pluto   = "Pluto"
	Rahu    = "Rahu"
	Ketu    = "Ketu"
)

// Bodies lists the tracked bodies in provider order.
var Bodies = [...]string{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, Rahu, Ketu}

// Request identifies the moment and frame of a chart.
type Request struct {
	// Time is the local clock time; its location carries the UTC offset.
	Time        time.Time
	Latitude    float64
	Longitude   float64
	Ayanamsa    string
	HouseSystem string
}

// Body is the raw position of one tracked body.
type Body struct {
	Name          string
	Sign          string
	Retrograde    bool
	Longitude     float64
	SignLongitude float64
	Latitude      float64
}

// Cusp is the raw longitude of one house cusp.
type Cusp struct {
	House     int
	Longitude float64
}

// Chart is everything a provider returns for one request.
type Chart struct {
	Request   Request
	Bodies    []Body
	Ascendant float64
	Cusps     [12]Cusp
}

// Provider computes sidereal positions for a request. Implementations must
// report unknown ayanamsa or house-system identifiers as types.ErrInvalidInput.
type Provider interface {
	Compute(ctx context.Context, req Request) (Chart, error)
}

// CuspLongitudes returns the cusp longitudes indexed by house-1.
func (c Chart) CuspLongitudes() [12]float64 {
	var out [12]float64
	for _, cusp := range c.Cusps {
		if cusp.House >= 1 && cusp.House <= 12 {
			out[cusp.House-1] = cusp.Longitude
		}
	}
	return out
}

// Body returns the named body.
func (c Chart) Body(name string) (Body, bool) {
	for _, b := range c.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}
