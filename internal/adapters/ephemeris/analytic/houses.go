package analytic

import (
	"fmt"
	"math"

	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/angle"
)

const (
	// polarLimit is the largest absolute latitude at which Placidus cusps are computed.
	polarLimit      = 66.0
	placidusSteps   = 50
	placidusEpsilon = 1e-10
)

// frame is the local sphere at the request moment, angles in degrees.
type frame struct {
	ramc      float64
	obliquity float64
	latitude  float64
}

// ascendant returns the tropical ecliptic longitude rising on the eastern horizon.
func (f frame) ascendant() float64 {
	t, e, p := rad(f.ramc), rad(f.obliquity), rad(f.latitude)
	return norm(deg(math.Atan2(math.Cos(t), -(math.Sin(t)*math.Cos(e) + math.Tan(p)*math.Sin(e)))))
}

// midheaven returns the tropical ecliptic longitude on the upper meridian.
func (f frame) midheaven() float64 {
	t, e := rad(f.ramc), rad(f.obliquity)
	return norm(deg(math.Atan2(math.Sin(t), math.Cos(t)*math.Cos(e))))
}

// eclipticOfRA returns the ecliptic longitude with the given right ascension.
func (f frame) eclipticOfRA(ra float64) float64 {
	r, e := rad(ra), rad(f.obliquity)
	return norm(deg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e))))
}

// ascensionalDifference returns the ascensional difference of the ecliptic point at lon.
func (f frame) ascensionalDifference(lon float64) float64 {
	dec := math.Asin(math.Sin(rad(f.obliquity)) * sind(lon))
	x := math.Tan(rad(f.latitude)) * math.Tan(dec)
	return deg(math.Asin(math.Max(-1, math.Min(1, x))))
}

// tropicalCusps returns tropical cusp longitudes for the quadrant systems, indexed by house-1.
func (f frame) tropicalCusps(system string) ([12]float64, error) {
	switch system {
	case ephemeris.HousesPlacidus:
		return f.placidus()
	case ephemeris.HousesPorphyrius:
		return f.porphyrius(), nil
	case ephemeris.HousesRegiomontanus:
		return f.regiomontanus(), nil
	case ephemeris.HousesCampanus:
		return f.campanus(), nil
	case ephemeris.HousesPolichPage:
		return f.polichPage(), nil
	case ephemeris.HousesAlcabitus:
		return f.alcabitus(), nil
	case ephemeris.HousesMeridian:
		return f.equatorial(f.eclipticOfRA), nil
	case ephemeris.HousesMorinus:
		return f.equatorial(f.morinusPoint), nil
	}
	return [12]float64{}, fmt.Errorf("unknown house system %q: %w", system, types.ErrInvalidInput)
}

// poleCusp returns where the circle through the north and south points of the horizon
// meeting the equator h degrees east of the meridian, with the given pole, cuts the
// ecliptic. h = 90 and pole = latitude give the ascendant.
func (f frame) poleCusp(h, tanPole float64) float64 {
	r, e := rad(f.ramc+h), rad(f.obliquity)
	return norm(deg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e)-tanPole*math.Sin(e))))
}

// eastern lists the houses whose cusps lie from the midheaven down to the lower
// meridian through the east, with their equator offsets from the meridian.
var eastern = [6]struct {
	house int
	h     float64
}{{10, 0}, {11, 30}, {12, 60}, {1, 90}, {2, 120}, {3, 150}}

// fromEastern fills the eastern cusps from cusp and the western ones by opposition.
func fromEastern(cusp func(h float64) float64) [12]float64 {
	var c [12]float64
	for _, e := range eastern {
		i := e.house - 1
		c[i] = cusp(e.h)
		c[(i+6)%12] = norm(c[i] + 180)
	}
	return c
}

// regiomontanus divides the equator into equal arcs.
func (f frame) regiomontanus() [12]float64 {
	tanLat := math.Tan(rad(f.latitude))
	return fromEastern(func(h float64) float64 {
		return f.poleCusp(h, tanLat*sind(h))
	})
}

// campanus divides the prime vertical into equal arcs.
func (f frame) campanus() [12]float64 {
	tanLat := math.Tan(rad(f.latitude))
	return fromEastern(func(h float64) float64 {
		eq := deg(math.Atan2(sind(h)*cosd(f.latitude), cosd(h)))
		return f.poleCusp(eq, tanLat*sind(eq))
	})
}

// polichPage grows the pole linearly from the meridian to the horizon.
func (f frame) polichPage() [12]float64 {
	tanLat := math.Tan(rad(f.latitude))
	return fromEastern(func(h float64) float64 {
		return f.poleCusp(h, tanLat*(1-math.Abs(h-90)/90))
	})
}

// alcabitus trisects the ascendant's diurnal and nocturnal semi-arcs in right ascension.
func (f frame) alcabitus() [12]float64 {
	asc := f.ascendant()
	day := 90 + f.ascensionalDifference(asc)
	night := 180 - day
	ra := [6]float64{0, day / 3, 2 * day / 3, day, day + night/3, day + 2*night/3}
	return fromEastern(func(h float64) float64 {
		i := int(h / 30)
		if i == 3 {
			return asc
		}
		return f.eclipticOfRA(f.ramc + ra[i])
	})
}

// equatorial divides the equator into twelve arcs from the meridian and projects each
// division onto the ecliptic.
func (f frame) equatorial(project func(ra float64) float64) [12]float64 {
	var c [12]float64
	for i := range c {
		c[i] = project(f.ramc + 30*float64(i-9))
	}
	return c
}

// morinusPoint projects an equator point onto the ecliptic along a circle through
// the ecliptic poles.
func (f frame) morinusPoint(ra float64) float64 {
	return norm(deg(math.Atan2(sind(ra)*cosd(f.obliquity), cosd(ra))))
}

func (f frame) placidus() ([12]float64, error) {
	var c [12]float64
	if math.Abs(f.latitude) > polarLimit {
		return c, ErrPolarLatitude
	}
	asc, mc := f.ascendant(), f.midheaven()
	c[0], c[9] = asc, mc
	c[3], c[6] = norm(mc+180), norm(asc+180)

	// Each intermediate cusp sits where the fraction of its semi-arc has elapsed.
	c[10] = f.placidusCusp(func(ad float64) float64 { return f.ramc + (90+ad)/3 })
	c[11] = f.placidusCusp(func(ad float64) float64 { return f.ramc + 2*(90+ad)/3 })
	c[1] = f.placidusCusp(func(ad float64) float64 { return f.ramc + 180 - 2*(90-ad)/3 })
	c[2] = f.placidusCusp(func(ad float64) float64 { return f.ramc + 180 - (90-ad)/3 })

	c[4], c[5] = norm(c[10]+180), norm(c[11]+180)
	c[7], c[8] = norm(c[1]+180), norm(c[2]+180)
	return c, nil
}

// placidusCusp iterates the right ascension of a cusp until it is consistent with the
// ascensional difference of its own ecliptic point.
func (f frame) placidusCusp(raOf func(ad float64) float64) float64 {
	ra := raOf(0)
	for range placidusSteps {
		next := raOf(f.ascensionalDifference(f.eclipticOfRA(ra)))
		if math.Abs(next-ra) < placidusEpsilon {
			ra = next
			break
		}
		ra = next
	}
	return f.eclipticOfRA(ra)
}

func (f frame) porphyrius() [12]float64 {
	var c [12]float64
	asc, mc := f.ascendant(), f.midheaven()
	ic, desc := norm(mc+180), norm(asc+180)
	c[0], c[3], c[6], c[9] = asc, ic, desc, mc

	q1 := angle.Forward(asc, ic)
	c[1], c[2] = norm(asc+q1/3), norm(asc+2*q1/3)
	q2 := angle.Forward(ic, desc)
	c[4], c[5] = norm(ic+q2/3), norm(ic+2*q2/3)

	c[7], c[8] = norm(c[1]+180), norm(c[2]+180)
	c[10], c[11] = norm(c[4]+180), norm(c[5]+180)
	return c
}

// siderealCusps converts a sidereal ascendant into cusps for the systems defined on it.
func siderealCusps(system string, asc float64) ([12]float64, bool) {
	var c [12]float64
	var start float64
	switch system {
	case ephemeris.HousesEqual, ephemeris.HousesEqual2, ephemeris.HousesKoch:
		start = asc
	case ephemeris.HousesVehlowEqual:
		start = asc - 15
	case ephemeris.HousesWholeSign:
		start = math.Floor(asc/30) * 30
	default:
		return c, false
	}
	for i := range c {
		c[i] = norm(start + float64(i)*30)
	}
	return c, true
}
