package analytic

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
)

const (
	j2000JD = 2451545.0
	// Day zero of the planetary elements is 1999-12-31 0h UT.
	elementsEpochJD = 2451543.5
	secondsPerDay   = 86400.0
	// deltaT approximates TT-UT for the first half of the century.
	deltaT = 69.0 / secondsPerDay
	// sidereal.Mean is in seconds of a sidereal day.
	secondsPerDegree = secondsPerDay / 360
)

// julianDay converts an instant to a Julian day number in UT.
func julianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// ephemerisDay converts a UT Julian day to the dynamical time the lunar and solar
// theories expect.
func ephemerisDay(jd float64) float64 {
	return jd + deltaT
}

// obliquity returns the mean obliquity of the ecliptic in degrees.
func obliquity(jde float64) float64 {
	return deg(float64(nutation.MeanObliquity(jde)))
}

// siderealTime returns Greenwich mean sidereal time in degrees.
func siderealTime(jd float64) float64 {
	return norm(float64(sidereal.Mean(jd)) / secondsPerDegree)
}
