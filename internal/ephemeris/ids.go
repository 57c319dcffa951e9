package ephemeris

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/kpastro/internal/domain/types"
)

// Ayanamsa identifiers.
const (
	AyanamsaLahiri       = "Lahiri"
	AyanamsaKrishnamurti = "Krishnamurti"
	AyanamsaRaman        = "Raman"
	AyanamsaFaganBradley = "FaganBradley"
	AyanamsaDeluce       = "Deluce"
	AyanamsaSassanian    = "Sassanian"
	AyanamsaAldebaran    = "Aldebaran15Taurus"
	AyanamsaGalactic     = "GalacticCenter_05_Sag"
)

// House-system identifiers. Koch is accepted and cast as Equal.
const (
	HousesPlacidus      = "Placidus"
	HousesKoch          = "Koch"
	HousesPorphyrius    = "Porphyrius"
	HousesRegiomontanus = "Regiomontanus"
	HousesCampanus      = "Campanus"
	HousesEqual         = "Equal"
	HousesEqual2        = "Equal 2"
	HousesVehlowEqual   = "Vehlow Equal"
	HousesWholeSign     = "Whole Sign"
	HousesMeridian      = "Meridian"
	HousesPolichPage    = "Polich Page"
	HousesAlcabitus     = "Alcabitus"
	HousesMorinus       = "Morinus"
)

var ayanamsas = []string{
	AyanamsaLahiri, AyanamsaKrishnamurti, AyanamsaRaman, AyanamsaFaganBradley,
	AyanamsaDeluce, AyanamsaSassanian, AyanamsaAldebaran, AyanamsaGalactic,
}

var houseSystems = []string{
	HousesPlacidus, HousesKoch, HousesPorphyrius, HousesRegiomontanus, HousesCampanus,
	HousesEqual, HousesEqual2, HousesVehlowEqual, HousesWholeSign, HousesMeridian,
	HousesPolichPage, HousesAlcabitus, HousesMorinus,
}

// Ayanamsas lists the supported ayanamsa identifiers.
func Ayanamsas() []string { return append([]string(nil), ayanamsas...) }

// HouseSystems lists the supported house-system identifiers.
func HouseSystems() []string { return append([]string(nil), houseSystems...) }

// ValidateAyanamsa reports whether id names a supported ayanamsa.
func ValidateAyanamsa(id string) error {
	for _, a := range ayanamsas {
		if a == id {
			return nil
		}
	}
	return fmt.Errorf("unknown ayanamsa %q: %w", id, types.ErrInvalidInput)
}

// ValidateHouseSystem reports whether id names a supported house system.
func ValidateHouseSystem(id string) error {
	for _, h := range houseSystems {
		if h == id {
			return nil
		}
	}
	return fmt.Errorf("unknown house system %q: %w", id, types.ErrInvalidInput)
}

// ParseUTCOffset parses offsets such as "+5:30", "-04:00" or "+3" into a fixed zone.
func ParseUTCOffset(s string) (*time.Location, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, fmt.Errorf("empty utc offset: %w", types.ErrInvalidInput)
	}
	sign := 1
	switch raw[0] {
	case '+':
		raw = raw[1:]
	case '-':
		sign = -1
		raw = raw[1:]
	}
	hh, mm, hasMinutes := strings.Cut(raw, ":")
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return nil, fmt.Errorf("utc offset %q: %w", s, types.ErrInvalidInput)
	}
	minutes := 0
	if hasMinutes {
		minutes, err = strconv.Atoi(mm)
		if err != nil || minutes < 0 || minutes >= 60 {
			return nil, fmt.Errorf("utc offset %q: %w", s, types.ErrInvalidInput)
		}
	}
	offset := sign * (hours*3600 + minutes*60)
	prefix := '+'
	if sign < 0 {
		prefix = '-'
	}
	name := fmt.Sprintf("%c%02d:%02d", prefix, hours, minutes)
	return time.FixedZone(name, offset), nil
}
