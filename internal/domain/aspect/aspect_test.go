package aspect_test

import (
	"testing"

	"github.com/okian/kpastro/internal/domain/aspect"
	"github.com/okian/kpastro/internal/domain/chart"
	"github.com/okian/kpastro/internal/ephemeris"
	. "github.com/smartystreets/goconvey/convey"
)

func build(bodies map[string]float64) chart.Chart {
	raw := ephemeris.Chart{}
	for i := range raw.Cusps {
		raw.Cusps[i] = ephemeris.Cusp{House: i + 1, Longitude: float64(i) * 30}
	}
	for _, name := range ephemeris.Bodies {
		if lon, ok := bodies[name]; ok {
			raw.Bodies = append(raw.Bodies, ephemeris.Body{Name: name, Longitude: lon})
		}
	}
	c, err := chart.Build(raw)
	So(err, ShouldBeNil)
	return c
}

func find(list []aspect.Aspect, p1, p2 string) (aspect.Aspect, bool) {
	for _, a := range list {
		if a.P1 == p1 && a.P2 == p2 {
			return a, true
		}
	}
	return aspect.Aspect{}, false
}

func TestFind(t *testing.T) {
	Convey("Given a full chart", t, func() {
		c := build(map[string]float64{
			ephemeris.Sun:     292.5,
			ephemeris.Moon:    47.78,
			ephemeris.Mercury: 275.25,
			ephemeris.Venus:   260.0,
			ephemeris.Mars:    280.1,
			ephemeris.Jupiter: 23.5,
			ephemeris.Saturn:  311.0,
			ephemeris.Uranus:  25.9,
			ephemeris.Neptune: 331.6,
			ephemeris.Pluto:   277.8,
			ephemeris.Rahu:    347.75,
			ephemeris.Ketu:    167.75,
		})
		list := aspect.Find(c)

		Convey("Then every aspect should be reported in both directions", func() {
			So(len(list)%2, ShouldEqual, 0)
			for _, a := range list {
				back, ok := find(list, a.P2, a.P1)
				So(ok, ShouldBeTrue)
				So(back.Type, ShouldEqual, a.Type)
				So(back.Orb, ShouldEqual, a.Orb)
				So(a.P1, ShouldNotEqual, chart.Ascendant)
			}
		})

		Convey("Then major aspects should use the wider orb of the pair", func() {
			a, ok := find(list, ephemeris.Sun, ephemeris.Moon)
			So(ok, ShouldBeTrue)
			So(a.Type, ShouldEqual, "Trine")
			So(a.Degrees, ShouldEqual, 120)
			So(a.Orb, ShouldAlmostEqual, 4.72, 1e-9)

			a, ok = find(list, ephemeris.Mars, ephemeris.Sun)
			So(ok, ShouldBeTrue)
			So(a.Type, ShouldEqual, "Conjunction")
			So(a.Orb, ShouldAlmostEqual, 12.4, 1e-9)
		})

		Convey("Then the nodes should be in exact opposition", func() {
			a, ok := find(list, ephemeris.Rahu, ephemeris.Ketu)
			So(ok, ShouldBeTrue)
			So(a.Type, ShouldEqual, "Opposition")
			So(a.Orb, ShouldEqual, 0)
		})

		Convey("Then aspects should follow the weekday order on both sides", func() {
			rank := map[string]int{}
			for i, name := range aspect.Order {
				rank[name] = i
			}
			for i := 1; i < len(list); i++ {
				prev, cur := list[i-1], list[i]
				So(rank[cur.P1], ShouldBeGreaterThanOrEqualTo, rank[prev.P1])
				if cur.P1 == prev.P1 {
					So(rank[cur.P2], ShouldBeGreaterThan, rank[prev.P2])
				}
			}

			var partners []string
			for _, a := range list {
				if a.P1 == ephemeris.Sun {
					partners = append(partners, a.P2)
				}
			}
			So(partners, ShouldResemble, []string{
				ephemeris.Moon, ephemeris.Mars, ephemeris.Jupiter, ephemeris.Uranus,
				ephemeris.Pluto, ephemeris.Rahu, ephemeris.Ketu,
			})
			So(list[0].P1, ShouldEqual, ephemeris.Sun)
		})

		Convey("Then Mars should be walked before Mercury", func() {
			var firsts []string
			for _, a := range list {
				if len(firsts) == 0 || firsts[len(firsts)-1] != a.P1 {
					firsts = append(firsts, a.P1)
				}
			}
			mars, mercury := -1, -1
			for i, name := range firsts {
				switch name {
				case ephemeris.Mars:
					mars = i
				case ephemeris.Mercury:
					mercury = i
				}
			}
			So(mars, ShouldBeGreaterThanOrEqualTo, 0)
			So(mercury, ShouldBeGreaterThan, mars)
		})

		Convey("Then pairs outside every orb should be absent", func() {
			_, ok := find(list, ephemeris.Mercury, ephemeris.Uranus)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestBetween(t *testing.T) {
	Convey("Given two bodies 144.5 degrees apart", t, func() {
		a, ok := aspect.Between(ephemeris.Sun, 0, ephemeris.Mars, 144.5)

		Convey("Then the minor bi-quintile should be found", func() {
			So(ok, ShouldBeTrue)
			So(a.Type, ShouldEqual, "Bi Quintile")
			So(a.Orb, ShouldEqual, 0.5)
		})
	})

	Convey("Given a minor aspect just outside its orb", t, func() {
		_, ok := aspect.Between(ephemeris.Uranus, 10, ephemeris.Neptune, 112.5)
		So(ok, ShouldBeFalse)
	})

	Convey("Given a separation within orb of a major and a minor aspect", t, func() {
		a, ok := aspect.Between(ephemeris.Sun, 0, ephemeris.Moon, 107)

		Convey("Then the closer one should win", func() {
			So(ok, ShouldBeTrue)
			So(a.Type, ShouldEqual, "Sesqui Quintile")
			So(a.Orb, ShouldEqual, 1)
		})
	})

	Convey("Given the orb table", t, func() {
		So(aspect.Orb(ephemeris.Sun), ShouldEqual, 15)
		So(aspect.Orb("Chiron"), ShouldEqual, 0)
	})
}
