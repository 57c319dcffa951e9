package chart

import "github.com/okian/kpastro/internal/domain/zodiac"

// Occupant is a house cusp or planet listed under its sign.
type Occupant struct {
	Name             string  `json:"name"`
	Retrograde       bool    `json:"retrograde"`
	Longitude        float64 `json:"longitude"`
	SignLongitude    float64 `json:"sign_longitude"`
	SignLongitudeDMS string  `json:"sign_longitude_dms"`
}

// SignGroup lists everything that falls in one sign.
type SignGroup struct {
	Sign      string     `json:"sign"`
	Occupants []Occupant `json:"occupants"`
}

// Consolidated groups cusps, then planets, by sign. Signs come in zodiac order
// and empty signs are omitted.
func (c Chart) Consolidated() []SignGroup {
	var bySign [12][]Occupant
	for _, h := range c.Houses {
		bySign[h.SignIndex] = append(bySign[h.SignIndex], Occupant{
			Name:             h.Roman,
			Longitude:        h.Longitude,
			SignLongitude:    h.SignLongitude,
			SignLongitudeDMS: h.SignLongitudeDMS,
		})
	}
	for _, p := range c.Planets {
		bySign[p.SignIndex] = append(bySign[p.SignIndex], Occupant{
			Name:             p.Name,
			Retrograde:       p.Retrograde,
			Longitude:        p.Longitude,
			SignLongitude:    p.SignLongitude,
			SignLongitudeDMS: p.SignLongitudeDMS,
		})
	}

	var out []SignGroup
	for i, occ := range bySign {
		if len(occ) == 0 {
			continue
		}
		out = append(out, SignGroup{Sign: zodiac.SignName(i), Occupants: occ})
	}
	return out
}
