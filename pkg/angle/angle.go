// Package angle provides circular arithmetic and degree/minute/second formatting
// for ecliptic longitudes.
package angle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FullCircle is the number of degrees in a revolution.
const FullCircle = 360.0

// ErrInvalidDMS is returned when a D:M:S string cannot be parsed.
var ErrInvalidDMS = errors.New("invalid dms")

// Normalize reduces deg into [0, 360).
func Normalize(deg float64) float64 {
	r := math.Mod(deg, FullCircle)
	if r < 0 {
		r += FullCircle
	}
	if r >= FullCircle {
		r = 0
	}
	return r
}

// Forward returns the arc travelled moving forward (increasing longitude)
// from "from" to "to", in [0, 360).
func Forward(from, to float64) float64 {
	return Normalize(to - from)
}

// Separation returns the shorter arc between a and b, in [0, 180].
func Separation(a, b float64) float64 {
	d := Forward(a, b)
	if d > FullCircle/2 {
		d = FullCircle - d
	}
	return d
}

// Round rounds deg half away from zero to the given number of decimal places.
func Round(deg float64, places int32) float64 {
	return decimal.NewFromFloat(deg).Round(places).InexactFloat64()
}

// DMS is an angle split into whole degrees, arc-minutes and arc-seconds.
type DMS struct {
	Negative bool
	Degrees  int
	Minutes  int
	Seconds  int
}

// ToDMS converts decimal degrees to DMS rounded to the nearest arc-second.
func ToDMS(deg float64) DMS {
	d := decimal.NewFromFloat(deg)
	total := d.Abs().Mul(decimal.NewFromInt(3600)).Round(0).IntPart()
	return DMS{
		Negative: d.IsNegative() && total != 0,
		Degrees:  int(total / 3600),
		Minutes:  int(total % 3600 / 60),
		Seconds:  int(total % 60),
	}
}

// Decimal converts the angle back to decimal degrees.
func (a DMS) Decimal() float64 {
	v := decimal.NewFromInt(int64(a.Degrees)).
		Add(decimal.NewFromInt(int64(a.Minutes)).Div(decimal.NewFromInt(60))).
		Add(decimal.NewFromInt(int64(a.Seconds)).Div(decimal.NewFromInt(3600)))
	if a.Negative {
		v = v.Neg()
	}
	return v.InexactFloat64()
}

// String formats the angle as D:MM:SS.
func (a DMS) String() string {
	sign := ""
	if a.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d:%02d:%02d", sign, a.Degrees, a.Minutes, a.Seconds)
}

// FormatDMS formats decimal degrees as D:MM:SS.
func FormatDMS(deg float64) string {
	return ToDMS(deg).String()
}

// ParseDMS parses a D:M:S string such as "17:46:40".
func ParseDMS(s string) (DMS, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return DMS{}, fmt.Errorf("%w: %q", ErrInvalidDMS, s)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return DMS{}, fmt.Errorf("%w: %q", ErrInvalidDMS, s)
		}
		vals[i] = v
	}
	if vals[1] >= 60 || vals[2] >= 60 {
		return DMS{}, fmt.Errorf("%w: %q", ErrInvalidDMS, s)
	}
	return DMS{Negative: neg, Degrees: vals[0], Minutes: vals[1], Seconds: vals[2]}, nil
}
