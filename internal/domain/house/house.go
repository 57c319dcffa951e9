// Package house allocates longitudes to houses from cusp boundaries.
package house

import (
	"sort"

	"github.com/okian/kpastro/pkg/angle"
)

// Count is the number of houses in a chart.
const Count = 12

var romanNumerals = [Count]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// Roman returns the Roman-numeral alias of house n (1-12).
func Roman(n int) string {
	if n < 1 || n > Count {
		return ""
	}
	return romanNumerals[n-1]
}

type cusp struct {
	lon   float64
	house int
}

// Allocate returns the house (1-12) whose half-open interval [cusp, next cusp)
// contains longitude. cusps[i] is the cusp of house i+1.
func Allocate(longitude float64, cusps [Count]float64) int {
	sorted := sortCusps(cusps)
	lon := angle.Normalize(longitude)
	for i := 0; i < Count; i++ {
		lo, hi := sorted[i].lon, sorted[i+1].lon
		if (lo <= lon && lon < hi) || (lo <= lon+360 && lon+360 < hi) {
			return sorted[i].house
		}
	}
	return nearestLower(lon, sorted)
}

// sortCusps orders the cusps by longitude and closes the circle with the
// first cusp repeated at +360.
func sortCusps(cusps [Count]float64) [Count + 1]cusp {
	var out [Count + 1]cusp
	for i, c := range cusps {
		out[i] = cusp{lon: angle.Normalize(c), house: i + 1}
	}
	s := out[:Count]
	sort.SliceStable(s, func(i, j int) bool { return s[i].lon < s[j].lon })
	out[Count] = cusp{lon: out[0].lon + 360, house: out[0].house}
	return out
}

// nearestLower resolves a longitude that fell between intervals by taking
// the house that ends at the nearest cusp.
func nearestLower(lon float64, sorted [Count + 1]cusp) int {
	best, bestSep := 0, 361.0
	for i := 0; i < Count; i++ {
		if sep := angle.Separation(lon, sorted[i].lon); sep < bestSep {
			best, bestSep = i, sep
		}
	}
	return sorted[(best+Count-1)%Count].house
}
