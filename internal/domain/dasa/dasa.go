// Package dasa computes the Vimshottari Dasa and Bhukti timeline from the Moon's
// position at birth.
package dasa

import (
	"math"
	"time"

	"github.com/okian/kpastro/internal/domain/vimshottari"
	"github.com/okian/kpastro/internal/domain/zodiac"
	"github.com/okian/kpastro/pkg/angle"
)

// NakshatraMinutes is the arc of one nakshatra in minutes of longitude.
const NakshatraMinutes = 800

// Period is one Dasa or Bhukti.
type Period struct {
	Lord    vimshottari.Lord `json:"lord"`
	Start   time.Time        `json:"start"`
	End     time.Time        `json:"end"`
	Years   float64          `json:"years"`
	Bhuktis []Period         `json:"bhuktis,omitempty"`
}

// Timeline is the full 120-year cycle of nine Dasas.
type Timeline struct {
	Nakshatra string                    `json:"nakshatra"`
	Lord      vimshottari.Lord          `json:"lord"`
	Balance   float64                   `json:"balance_years"`
	Dasas     [vimshottari.Count]Period `json:"dasas"`
}

// Compute builds the timeline for a Moon at moonLongitude at epoch. The epoch is
// truncated to the minute.
func Compute(moonLongitude float64, epoch time.Time) (Timeline, error) {
	c, err := zodiac.Classify(moonLongitude)
	if err != nil {
		return Timeline{}, err
	}

	elapsedArc := angle.Round(c.Longitude*60, 2) - float64(c.NakshatraIndex*NakshatraMinutes)
	elapsedArc = math.Max(0, math.Min(NakshatraMinutes, elapsedArc))
	remainingArc := NakshatraMinutes - elapsedArc

	first := c.NakshatraLord.Weight()
	balance := first / NakshatraMinutes * remainingArc
	elapsed := first - balance

	tl := Timeline{
		Nakshatra: c.Nakshatra,
		Lord:      c.NakshatraLord,
		Balance:   balance,
	}
	cursor := Shift(epoch.Truncate(time.Minute), elapsed, Backward)
	for i, seg := range vimshottari.Partition(c.NakshatraLord, vimshottari.TotalYears) {
		end := Shift(cursor, seg.Length, Forward)
		tl.Dasas[i] = Period{
			Lord:    seg.Lord,
			Start:   cursor,
			End:     end,
			Years:   seg.Length,
			Bhuktis: bhuktis(seg.Lord, seg.Length, cursor),
		}
		cursor = end
	}
	return tl, nil
}

// bhuktis splits a Dasa into its nine sub-periods starting with the Dasa lord.
func bhuktis(lord vimshottari.Lord, years float64, start time.Time) []Period {
	out := make([]Period, 0, vimshottari.Count)
	cursor := start
	for _, seg := range vimshottari.Partition(lord, years) {
		end := Shift(cursor, seg.Length, Forward)
		out = append(out, Period{Lord: seg.Lord, Start: cursor, End: end, Years: seg.Length})
		cursor = end
	}
	return out
}

// Current returns the Dasa and Bhukti running at t.
func (tl Timeline) Current(t time.Time) (Period, Period, bool) {
	for _, d := range tl.Dasas {
		if t.Before(d.Start) || !t.Before(d.End) {
			continue
		}
		for _, b := range d.Bhuktis {
			if !t.Before(b.Start) && t.Before(b.End) {
				return d, b, true
			}
		}
		return d, Period{}, true
	}
	return Period{}, Period{}, false
}
