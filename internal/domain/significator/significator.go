// Package significator derives the KP ABCD significators linking planets and houses.
package significator

import "github.com/okian/kpastro/internal/domain/chart"

// Planet lists what a planet signifies.
//
//	A: house occupied by the planet's nakshatra lord (0 when the lord is not in the chart)
//	B: house the planet occupies
//	C: houses whose sign lord is the planet's nakshatra lord
//	D: houses whose sign lord is the planet itself
type Planet struct {
	Planet string `json:"planet"`
	A      int    `json:"a"`
	B      int    `json:"b"`
	C      []int  `json:"c"`
	D      []int  `json:"d"`
}

// House lists the planets that signify a house.
//
//	A: planets in the star of the house's occupants
//	B: occupants of the house
//	C: planets in the star of the house's sign lord
//	D: the house's sign lord
type House struct {
	House string   `json:"house"`
	A     []string `json:"a"`
	B     []string `json:"b"`
	C     []string `json:"c"`
	D     string   `json:"d"`
}

// Planets computes the significators of every body in the chart. The
// ascendant is skipped.
func Planets(c chart.Chart) []Planet {
	bodies := c.Bodies()
	houseOf := make(map[string]int, len(bodies))
	for _, b := range bodies {
		houseOf[b.Name] = b.House
	}

	out := make([]Planet, 0, len(bodies))
	for _, b := range bodies {
		starLord := b.NakshatraLord.String()
		s := Planet{
			Planet: b.Name,
			A:      houseOf[starLord],
			B:      b.House,
			C:      []int{},
			D:      []int{},
		}
		for _, h := range c.Houses {
			if h.SignLord == starLord {
				s.C = append(s.C, h.Number)
			}
			if h.SignLord == b.Name {
				s.D = append(s.D, h.Number)
			}
		}
		out = append(out, s)
	}
	return out
}

// Houses computes the significators of every house. Lists keep duplicates and
// follow chart order.
func Houses(c chart.Chart) []House {
	bodies := c.Bodies()
	out := make([]House, 0, len(c.Houses))
	for _, h := range c.Houses {
		s := House{
			House: h.Roman,
			A:     []string{},
			B:     []string{},
			C:     []string{},
			D:     h.SignLord,
		}
		occupants := make(map[string]bool)
		for _, b := range bodies {
			if b.House == h.Number {
				s.B = append(s.B, b.Name)
				occupants[b.Name] = true
			}
		}
		for _, b := range bodies {
			starLord := b.NakshatraLord.String()
			if occupants[starLord] {
				s.A = append(s.A, b.Name)
			}
			if starLord == h.SignLord {
				s.C = append(s.C, b.Name)
			}
		}
		out = append(out, s)
	}
	return out
}
