package horary

import (
	"fmt"
	"math"

	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/domain/vimshottari"
	"github.com/okian/kpastro/internal/domain/zodiac"
	"github.com/okian/kpastro/pkg/angle"
)

// DivisionCount is the number of horary divisions.
const DivisionCount = 249

// snapTolerance absorbs summation drift when comparing longitudes with sign boundaries.
const snapTolerance = 1e-9

// Division is one sub-lord arc, cut at sign boundaries, that a horary number points at.
type Division struct {
	Number    int              `json:"number"`
	Sign      string           `json:"sign"`
	From      float64          `json:"from"`
	To        float64          `json:"to"`
	FromDMS   string           `json:"from_dms"`
	ToDMS     string           `json:"to_dms"`
	SubLord   vimshottari.Lord `json:"sub_lord"`
	Longitude float64          `json:"longitude"`
}

// Target is the ascendant a horary search aims for.
type Target struct {
	Number    int              `json:"number"`
	Longitude float64          `json:"longitude"`
	SubLord   vimshottari.Lord `json:"sub_lord"`
	Division  Division         `json:"division"`
}

var divisions = buildDivisions()

func buildDivisions() []Division {
	out := make([]Division, 0, DivisionCount)
	add := func(sign int, start, end float64, lord vimshottari.Lord) {
		from := snap(start - float64(sign)*zodiac.SignArc)
		to := snap(end - float64(sign)*zodiac.SignArc)
		out = append(out, Division{
			Number:    len(out) + 1,
			Sign:      zodiac.SignName(sign),
			From:      from,
			To:        to,
			FromDMS:   angle.FormatDMS(from),
			ToDMS:     angle.FormatDMS(to),
			SubLord:   lord,
			Longitude: float64(sign)*zodiac.SignArc + from,
		})
	}
	for _, s := range zodiac.SubLordSpans() {
		sign := signOf(s.Start)
		boundary := float64(sign+1) * zodiac.SignArc
		if s.End > boundary+snapTolerance {
			add(sign, s.Start, boundary, s.Lord)
			add(sign+1, boundary, s.End, s.Lord)
			continue
		}
		add(sign, s.Start, s.End, s.Lord)
	}
	if len(out) != DivisionCount {
		panic(fmt.Sprintf("horary: built %d divisions, want %d", len(out), DivisionCount))
	}
	return out
}

func signOf(lon float64) int {
	s := int((lon + snapTolerance) / zodiac.SignArc)
	if s > 11 {
		s = 11
	}
	return s
}

// snap pulls values within tolerance of a whole sign offset onto it.
func snap(v float64) float64 {
	for _, edge := range []float64{0, zodiac.SignArc} {
		if math.Abs(v-edge) < snapTolerance {
			return edge
		}
	}
	return v
}

// Divisions returns a copy of the division table.
func Divisions() []Division {
	return append([]Division(nil), divisions...)
}

// Lookup resolves a horary number to its target.
func Lookup(number int) (Target, error) {
	if number < 1 || number > DivisionCount {
		return Target{}, fmt.Errorf("horary number %d outside 1..%d: %w", number, DivisionCount, types.ErrInvalidInput)
	}
	d := divisions[number-1]
	return Target{Number: number, Longitude: d.Longitude, SubLord: d.SubLord, Division: d}, nil
}
