package significator_test

import (
	"testing"

	"github.com/okian/kpastro/internal/domain/chart"
	"github.com/okian/kpastro/internal/domain/house"
	"github.com/okian/kpastro/internal/domain/significator"
	"github.com/okian/kpastro/internal/ephemeris"
	. "github.com/smartystreets/goconvey/convey"
)

func buildChart() chart.Chart {
	raw := ephemeris.Chart{Ascendant: 100}
	for i := range raw.Cusps {
		lon := 100 + float64(i)*30
		if lon >= 360 {
			lon -= 360
		}
		raw.Cusps[i] = ephemeris.Cusp{House: i + 1, Longitude: lon}
	}
	positions := map[string]float64{
		ephemeris.Sun:     292.5,  // Moon star, house 7
		ephemeris.Moon:    47.78,  // Moon star, house 11
		ephemeris.Mercury: 275.25, // Sun star, house 6
		ephemeris.Venus:   260.0,  // Venus star, house 6
		ephemeris.Mars:    280.1,  // Moon star, house 7
		ephemeris.Jupiter: 23.5,   // Venus star, house 10
		ephemeris.Saturn:  311.0,  // Rahu star, house 8
		ephemeris.Uranus:  25.9,   // Venus star, house 10
		ephemeris.Neptune: 331.6,  // Jupiter star, house 8
		ephemeris.Pluto:   277.8,  // Sun star, house 6
		ephemeris.Rahu:    347.75, // Mercury star, house 9
		ephemeris.Ketu:    167.75, // Moon star, house 3
	}
	for _, name := range ephemeris.Bodies {
		raw.Bodies = append(raw.Bodies, ephemeris.Body{Name: name, Longitude: positions[name]})
	}
	c, err := chart.Build(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func TestPlanets(t *testing.T) {
	Convey("Given a built chart", t, func() {
		c := buildChart()

		Convey("When computing planet significators", func() {
			sigs := significator.Planets(c)

			Convey("Then the ascendant should be excluded", func() {
				So(len(sigs), ShouldEqual, 12)
				for _, s := range sigs {
					So(s.Planet, ShouldNotEqual, chart.Ascendant)
				}
			})

			Convey("Then the Sun's ABCD should follow its star lord the Moon", func() {
				sun := sigs[0]
				So(sun.Planet, ShouldEqual, ephemeris.Sun)
				So(sun.A, ShouldEqual, 11)
				So(sun.B, ShouldEqual, 7)
				So(sun.C, ShouldResemble, []int{1})
				So(sun.D, ShouldResemble, []int{2})
			})

			Convey("Then Mars should share the Moon star and own two houses", func() {
				mars := sigs[4]
				So(mars.Planet, ShouldEqual, ephemeris.Mars)
				So(mars.A, ShouldEqual, 11)
				So(mars.C, ShouldResemble, []int{1})
				So(mars.D, ShouldResemble, []int{5, 10})
			})

			Convey("Then nodes and outer planets should have no D houses", func() {
				for _, s := range sigs {
					switch s.Planet {
					case ephemeris.Rahu, ephemeris.Ketu, ephemeris.Uranus, ephemeris.Neptune, ephemeris.Pluto:
						So(s.D, ShouldBeEmpty)
					}
				}
			})

			Convey("Then B should round-trip through the house allocator", func() {
				for _, s := range sigs {
					p, _ := c.Planet(s.Planet)
					So(house.Allocate(p.Longitude, c.Cusps()), ShouldEqual, s.B)
				}
			})
		})
	})
}

func TestHouses(t *testing.T) {
	Convey("Given a built chart", t, func() {
		c := buildChart()

		Convey("When computing house significators", func() {
			sigs := significator.Houses(c)

			Convey("Then there should be one entry per house", func() {
				So(len(sigs), ShouldEqual, 12)
				So(sigs[0].House, ShouldEqual, "I")
			})

			Convey("Then D should be each house's sign lord", func() {
				for i, s := range sigs {
					So(s.D, ShouldEqual, c.Houses[i].SignLord)
				}
			})

			Convey("Then house VII should list its occupants and their star-dwellers", func() {
				vii := sigs[6]
				So(vii.B, ShouldResemble, []string{ephemeris.Sun, ephemeris.Mars})
				So(vii.A, ShouldResemble, []string{ephemeris.Mercury, ephemeris.Pluto})
				So(vii.D, ShouldEqual, "Saturn")
				So(vii.C, ShouldBeEmpty)
			})

			Convey("Then house I should list the Moon's star-dwellers under C", func() {
				So(sigs[0].D, ShouldEqual, "Moon")
				So(sigs[0].C, ShouldResemble, []string{ephemeris.Sun, ephemeris.Moon, ephemeris.Mars, ephemeris.Ketu})
				So(sigs[0].B, ShouldBeEmpty)
			})
		})
	})
}
