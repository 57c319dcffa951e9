// Package vimshottari holds the nine-lord Vimshottari cycle and the proportional
// partition shared by sub-lord classification and the Dasa timeline.
package vimshottari

import "fmt"

// TotalYears is the length of a full Vimshottari cycle.
const TotalYears = 120

// Lord is one of the nine Vimshottari rulers.
type Lord int

// Lords in cycle order.
const (
	Ketu Lord = iota
	Venus
	Sun
	Moon
	Mars
	Rahu
	Jupiter
	Saturn
	Mercury
)

// Count is the number of lords in the cycle.
const Count = 9

var lordNames = [Count]string{"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury"}

// weights are the period lengths in years, paired with the lord order.
var weights = [Count]float64{7, 20, 6, 10, 7, 18, 16, 19, 17}

// String returns the lord's conventional name.
func (l Lord) String() string {
	if l < 0 || int(l) >= Count {
		return fmt.Sprintf("Lord(%d)", int(l))
	}
	return lordNames[l]
}

// Weight returns the lord's period in years.
func (l Lord) Weight() float64 {
	return weights[l]
}

// Next returns the lord following l in the cycle.
func (l Lord) Next() Lord {
	return (l + 1) % Count
}

// MarshalText encodes the lord by name.
func (l Lord) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLord resolves a lord by its conventional name.
func ParseLord(name string) (Lord, bool) {
	for i, n := range lordNames {
		if n == name {
			return Lord(i), true
		}
	}
	return 0, false
}

// Rotate returns the nine lords in cycle order starting at start.
func Rotate(start Lord) [Count]Lord {
	var out [Count]Lord
	for i := range out {
		out[i] = (start + Lord(i)) % Count
	}
	return out
}

// Segment is one proportional slice of a partitioned span.
type Segment struct {
	Lord   Lord
	Offset float64 // start, relative to the partitioned span
	Length float64
}

// End returns the segment's end relative to the partitioned span.
func (s Segment) End() float64 {
	return s.Offset + s.Length
}

// Partition splits span into nine segments proportional to the lord weights,
// in cycle order starting at start. Segment lengths sum to span.
func Partition(start Lord, span float64) [Count]Segment {
	var out [Count]Segment
	offset := 0.0
	for i, l := range Rotate(start) {
		length := span * l.Weight() / TotalYears
		out[i] = Segment{Lord: l, Offset: offset, Length: length}
		offset += length
	}
	return out
}
