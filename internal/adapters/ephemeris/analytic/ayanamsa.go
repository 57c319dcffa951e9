package analytic

import (
	"fmt"

	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/ephemeris"
)

// precessionRate is the general precession in degrees per Julian year.
const precessionRate = 50.2388475 / 3600

// ayanamsaAtJ2000 holds each ayanamsa's offset at J2000.0.
var ayanamsaAtJ2000 = map[string]float64{
	ephemeris.AyanamsaLahiri:       23.857092,
	ephemeris.AyanamsaKrishnamurti: 23.760240,
	ephemeris.AyanamsaRaman:        22.410791,
	ephemeris.AyanamsaFaganBradley: 24.740300,
	ephemeris.AyanamsaDeluce:       27.815753,
	ephemeris.AyanamsaSassanian:    19.992959,
	ephemeris.AyanamsaAldebaran:    24.790000,
	ephemeris.AyanamsaGalactic:     21.851700,
}

// ayanamsa returns the sidereal offset in degrees for the given Julian day.
func ayanamsa(id string, jd float64) (float64, error) {
	base, ok := ayanamsaAtJ2000[id]
	if !ok {
		return 0, fmt.Errorf("unknown ayanamsa %q: %w", id, types.ErrInvalidInput)
	}
	return base + (jd-j2000JD)/365.25*precessionRate, nil
}
