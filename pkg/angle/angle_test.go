package angle_test

import (
	"errors"
	"testing"

	"github.com/okian/kpastro/pkg/angle"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given longitudes outside the circle", t, func() {
		Convey("Then they should wrap into [0, 360)", func() {
			So(angle.Normalize(370), ShouldAlmostEqual, 10, 1e-12)
			So(angle.Normalize(-10), ShouldAlmostEqual, 350, 1e-12)
			So(angle.Normalize(720), ShouldEqual, 0)
			So(angle.Normalize(-1e-18), ShouldBeLessThan, 360)
		})
	})
}

func TestForwardAndSeparation(t *testing.T) {
	Convey("Given two longitudes across the 0 degree seam", t, func() {
		Convey("Then the forward arc should wrap", func() {
			So(angle.Forward(350, 10), ShouldAlmostEqual, 20, 1e-12)
			So(angle.Forward(10, 350), ShouldAlmostEqual, 340, 1e-12)
		})

		Convey("Then the separation should take the shorter way", func() {
			So(angle.Separation(350, 10), ShouldAlmostEqual, 20, 1e-12)
			So(angle.Separation(10, 350), ShouldAlmostEqual, 20, 1e-12)
			So(angle.Separation(0, 180), ShouldAlmostEqual, 180, 1e-12)
		})
	})
}

func TestDMS(t *testing.T) {
	Convey("Given a decimal longitude", t, func() {
		Convey("When it has an exact arc-second value", func() {
			d := angle.ToDMS(17 + 46.0/60 + 40.0/3600)

			Convey("Then it should format as D:MM:SS", func() {
				So(d.String(), ShouldEqual, "17:46:40")
				So(d.Decimal(), ShouldAlmostEqual, 17.777777, 1e-6)
			})
		})

		Convey("When rounding would carry into the next degree", func() {
			So(angle.FormatDMS(29.99999999), ShouldEqual, "30:00:00")
		})

		Convey("When parsing a D:M:S string", func() {
			d, err := angle.ParseDMS("3:20:00")

			Convey("Then it should round-trip", func() {
				So(err, ShouldBeNil)
				So(d.Decimal(), ShouldAlmostEqual, 3.333333, 1e-6)
			})
		})

		Convey("When parsing malformed strings", func() {
			_, err1 := angle.ParseDMS("3:20")
			_, err2 := angle.ParseDMS("3:61:00")

			Convey("Then it should report ErrInvalidDMS", func() {
				So(errors.Is(err1, angle.ErrInvalidDMS), ShouldBeTrue)
				So(errors.Is(err2, angle.ErrInvalidDMS), ShouldBeTrue)
			})
		})
	})
}

func TestRound(t *testing.T) {
	Convey("Given a longitude with many decimals", t, func() {
		So(angle.Round(47.7784512, 3), ShouldEqual, 47.778)
		So(angle.Round(0.0005, 3), ShouldEqual, 0.001)
	})
}
