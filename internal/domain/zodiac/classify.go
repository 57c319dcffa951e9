// Package zodiac classifies ecliptic longitudes into sign, nakshatra, pada and
// the KP sub-lord chain.
package zodiac

import (
	"fmt"
	"math"

	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/domain/vimshottari"
	"github.com/okian/kpastro/pkg/angle"
)

// Classification describes where a longitude falls in the zodiac.
type Classification struct {
	Longitude      float64          `json:"longitude"`
	SignIndex      int              `json:"sign_index"`
	Sign           string           `json:"sign"`
	SignLord       string           `json:"sign_lord"`
	NakshatraIndex int              `json:"nakshatra_index"`
	Nakshatra      string           `json:"nakshatra"`
	NakshatraLord  vimshottari.Lord `json:"nakshatra_lord"`
	Pada           int              `json:"pada"`
	SubLord        vimshottari.Lord `json:"sub_lord"`
	SubSubLord     vimshottari.Lord `json:"sub_sub_lord"`
}

// Classify maps a longitude to its classification. Any finite value is
// accepted and reduced modulo 360.
func Classify(longitude float64) (Classification, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return Classification{}, fmt.Errorf("longitude %v: %w", longitude, types.ErrInvalidInput)
	}
	lon := angle.Normalize(longitude)

	sign := clampIndex(int(lon/SignArc), 12)
	nak := clampIndex(int(lon/NakshatraArc), 27)
	pada := clampIndex(int(math.Mod(lon, NakshatraArc)/PadaArc), 4) + 1

	sub, subSub, err := lookupSubLords(math.Mod(lon, SuperCycle))
	if err != nil {
		return Classification{}, err
	}

	return Classification{
		Longitude:      lon,
		SignIndex:      sign,
		Sign:           signs[sign],
		SignLord:       signLords[sign],
		NakshatraIndex: nak,
		Nakshatra:      nakshatras[nak],
		NakshatraLord:  NakshatraLord(nak),
		Pada:           pada,
		SubLord:        sub,
		SubSubLord:     subSub,
	}, nil
}

// clampIndex guards integer division against float rounding at the top edge.
func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	return i
}
