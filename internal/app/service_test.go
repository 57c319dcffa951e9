package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	service "github.com/okian/kpastro/internal/app"
	"github.com/okian/kpastro/internal/domain/chart"
	"github.com/okian/kpastro/internal/domain/horary"
	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/domain/vimshottari"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/logger"
	"github.com/okian/kpastro/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

var ist = time.FixedZone("+05:30", 19800)

func coimbatore(t time.Time) service.ChartRequest {
	return service.ChartRequest{
		Time:      t,
		Latitude:  11.020085773931049,
		Longitude: 76.98319647719487,
	}
}

// stillProvider reports a fixed ascendant, optionally slowly.
type stillProvider struct {
	asc   float64
	delay time.Duration
}

func (p stillProvider) Compute(ctx context.Context, req ephemeris.Request) (ephemeris.Chart, error) {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ephemeris.Chart{}, ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return ephemeris.Chart{Request: req, Ascendant: p.asc}, nil
}

// countingProvider counts Compute calls on a fixed ascendant.
type countingProvider struct {
	stillProvider
	calls *atomic.Int64
}

func (p countingProvider) Compute(ctx context.Context, req ephemeris.Request) (ephemeris.Chart, error) {
	p.calls.Add(1)
	return p.stillProvider.Compute(ctx, req)
}

func started(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should refuse work before Start", func() {
			_, err := svc.Chart(context.Background(), coimbatore(time.Now()))
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(service.ErrorKind(err), ShouldEqual, service.KindUnavailable)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("When starting and stopping the service", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["defaultAyanamsa"], ShouldEqual, ephemeris.AyanamsaLahiri)
			So(stats["defaultHouseSystem"], ShouldEqual, ephemeris.HousesEqual)

			svc.Stop()
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a service with custom options", t, func() {
		svc := service.New(
			service.WithDefaults(ephemeris.AyanamsaKrishnamurti, ephemeris.HousesPlacidus),
			service.WithHoraryTimeout(5*time.Second),
			service.WithSweepWorkers(3),
		)
		stats := svc.GetStats()
		So(stats["defaultAyanamsa"], ShouldEqual, ephemeris.AyanamsaKrishnamurti)
		So(stats["horaryTimeoutMs"], ShouldEqual, int64(5000))
		So(stats["sweepWorkers"], ShouldEqual, 3)
	})
}

func TestService_Chart(t *testing.T) {
	Convey("Given a started service over the analytic ephemeris", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When computing a chart with default identifiers", func() {
			report, err := svc.Chart(ctx, coimbatore(time.Date(2024, 2, 5, 9, 5, 42, 0, ist)))
			So(err, ShouldBeNil)

			Convey("Then every table should be filled", func() {
				So(report.ID, ShouldNotBeEmpty)
				So(report.Ayanamsa, ShouldEqual, ephemeris.AyanamsaLahiri)
				So(report.HouseSystem, ShouldEqual, ephemeris.HousesEqual)
				So(len(report.Planets), ShouldEqual, 13)
				So(report.Planets[0].Name, ShouldEqual, chart.Ascendant)
				So(len(report.PlanetSignificators), ShouldEqual, 12)
				So(len(report.HouseSignificators), ShouldEqual, 12)
				So(len(report.Dasa.Dasas), ShouldEqual, vimshottari.Count)
				So(report.Aspects, ShouldNotBeEmpty)
				So(report.Consolidated, ShouldNotBeEmpty)
				So(svc.GetStats()["chartsComputed"], ShouldEqual, int64(1))
			})
		})

		Convey("When the ayanamsa is unknown", func() {
			req := coimbatore(time.Date(2024, 2, 5, 9, 5, 42, 0, ist))
			req.Ayanamsa = "Tropical"
			_, err := svc.Chart(ctx, req)

			Convey("Then it should fail as invalid input", func() {
				So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
				So(service.ErrorKind(err), ShouldEqual, service.KindInvalidInput)
			})
		})
	})
}

func TestService_Horary(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with KP defaults", t, func() {
		svc := started(service.WithDefaults(ephemeris.AyanamsaKrishnamurti, ephemeris.HousesPlacidus))
		defer svc.Stop()

		Convey("When asking for number 34 on 2024-02-05", func() {
			report, err := svc.Horary(ctx, service.HoraryRequest{
				Number:       34,
				ChartRequest: coimbatore(time.Date(2024, 2, 5, 9, 5, 42, 0, ist)),
			})
			So(err, ShouldBeNil)

			Convey("Then the horary chart should rise on the matched ascendant", func() {
				So(report.Result.Matched(), ShouldBeTrue)
				So(report.Result.SubLord, ShouldEqual, vimshottari.Mercury)
				So(report.Chart, ShouldNotBeNil)
				asc := report.Chart.Planets[0]
				So(asc.Name, ShouldEqual, chart.Ascendant)
				So(asc.Longitude, ShouldAlmostEqual, report.Result.Ascendant, 1e-9)
				So(asc.SubLord, ShouldEqual, vimshottari.Mercury)
				So(report.Chart.Time.Equal(time.Date(2024, 2, 5, 9, 5, 42, 0, ist)), ShouldBeTrue)
				So(svc.GetStats()["horaryMatched"], ShouldEqual, int64(1))
			})
		})

		Convey("When the number is out of range", func() {
			_, err := svc.Horary(ctx, service.HoraryRequest{Number: 250, ChartRequest: coimbatore(time.Now().In(ist))})
			So(service.ErrorKind(err), ShouldEqual, service.KindInvalidInput)
		})

		Convey("When reading the division table", func() {
			So(len(svc.Divisions()), ShouldEqual, horary.DivisionCount)
			d, err := svc.Division(34)
			So(err, ShouldBeNil)
			So(d.Sign, ShouldEqual, "Taurus")
			_, err = svc.Division(0)
			So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("Given an ascendant that never moves", t, func() {
		svc := started(service.WithProvider(stillProvider{asc: 100}))
		defer svc.Stop()

		report, err := svc.Horary(ctx, service.HoraryRequest{Number: 34, ChartRequest: coimbatore(time.Date(2024, 2, 5, 0, 0, 0, 0, ist))})

		Convey("Then the search should report no match", func() {
			So(errors.Is(err, types.ErrNoMatchFound), ShouldBeTrue)
			So(service.ErrorKind(err), ShouldEqual, service.KindNoMatch)
			So(report.Result.State, ShouldEqual, horary.Exhausted)
			So(report.Chart, ShouldBeNil)
			So(svc.GetStats()["horaryMissed"], ShouldEqual, int64(1))
		})
	})

	Convey("Given a provider slower than the horary timeout", t, func() {
		svc := started(
			service.WithProvider(stillProvider{asc: 100, delay: 50 * time.Millisecond}),
			service.WithHoraryTimeout(10*time.Millisecond),
		)
		defer svc.Stop()

		_, err := svc.Horary(ctx, service.HoraryRequest{Number: 34, ChartRequest: coimbatore(time.Date(2024, 2, 5, 0, 0, 0, 0, ist))})

		Convey("Then the search should time out", func() {
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(service.ErrorKind(err), ShouldEqual, service.KindTimeout)
		})
	})
}

// evaluationsObserved returns how many searches fed the evaluations histogram.
func evaluationsObserved() uint64 {
	families, err := metrics.GetRegistry().Gather()
	So(err, ShouldBeNil)
	for _, f := range families {
		if f.GetName() == "kpastro_engine_horary_ascendant_evaluations" && len(f.GetMetric()) > 0 {
			return f.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func TestService_HoraryCache(t *testing.T) {
	ctx := context.Background()
	morning := coimbatore(time.Date(2024, 2, 5, 8, 0, 0, 0, ist))
	evening := coimbatore(time.Date(2024, 2, 5, 19, 30, 0, 0, ist))

	Convey("Given a service with the horary cache enabled", t, func() {
		var calls atomic.Int64
		svc := started(service.WithProvider(countingProvider{stillProvider{asc: 100}, &calls}))
		defer svc.Stop()

		_, err := svc.Horary(ctx, service.HoraryRequest{Number: 34, ChartRequest: morning})
		So(errors.Is(err, types.ErrNoMatchFound), ShouldBeTrue)
		first := calls.Load()
		So(first, ShouldBeGreaterThan, 0)

		Convey("When the same number is asked later the same day", func() {
			observed := evaluationsObserved()
			report, err := svc.Horary(ctx, service.HoraryRequest{Number: 34, ChartRequest: evening})

			Convey("Then the result should come from the cache", func() {
				So(errors.Is(err, types.ErrNoMatchFound), ShouldBeTrue)
				So(calls.Load(), ShouldEqual, first)
				So(report.Result.Evaluations, ShouldBeGreaterThan, 0)
				So(evaluationsObserved(), ShouldEqual, observed)
				stats := svc.GetStats()
				So(stats["horaryCacheHits"], ShouldEqual, int64(1))
				So(stats["horaryCacheSize"], ShouldEqual, int64(1))
			})
		})

		Convey("When another number is asked", func() {
			_, _ = svc.Horary(ctx, service.HoraryRequest{Number: 35, ChartRequest: morning})

			Convey("Then the search should run again", func() {
				So(calls.Load(), ShouldBeGreaterThan, first)
				So(svc.GetStats()["horaryCacheSize"], ShouldEqual, int64(2))
			})
		})
	})

	Convey("Given a service with the horary cache disabled", t, func() {
		var calls atomic.Int64
		svc := started(
			service.WithProvider(countingProvider{stillProvider{asc: 100}, &calls}),
			service.WithHoraryCacheSize(0),
		)
		defer svc.Stop()

		_, _ = svc.Horary(ctx, service.HoraryRequest{Number: 34, ChartRequest: morning})
		first := calls.Load()
		_, _ = svc.Horary(ctx, service.HoraryRequest{Number: 34, ChartRequest: evening})

		Convey("Then every request should search", func() {
			So(calls.Load(), ShouldEqual, 2*first)
			_, ok := svc.GetStats()["horaryCacheHits"]
			So(ok, ShouldBeFalse)
		})
	})
}

func TestService_Sweep(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with KP defaults", t, func() {
		svc := started(
			service.WithDefaults(ephemeris.AyanamsaKrishnamurti, ephemeris.HousesPlacidus),
			service.WithSweepWorkers(2),
		)
		defer svc.Stop()

		Convey("When sweeping two numbers", func() {
			results, err := svc.Sweep(ctx, service.HoraryRequest{ChartRequest: coimbatore(time.Date(2024, 2, 5, 0, 0, 0, 0, ist))}, []int{34, 35})
			So(err, ShouldBeNil)
			So(len(results), ShouldEqual, 2)
			So(results[0].Matched(), ShouldBeTrue)
			So(results[1].Matched(), ShouldBeTrue)
			So(results[1].Time.After(results[0].Time), ShouldBeTrue)
		})
	})

	Convey("Given an ascendant that never moves", t, func() {
		svc := started(service.WithProvider(stillProvider{asc: 100}))
		defer svc.Stop()

		Convey("When sweeping with no numbers", func() {
			results, err := svc.Sweep(ctx, service.HoraryRequest{ChartRequest: coimbatore(time.Date(2024, 2, 5, 0, 0, 0, 0, ist))}, nil)

			Convey("Then all 249 numbers should be searched and exhausted", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, horary.DivisionCount)
				for _, res := range results {
					So(res.State, ShouldEqual, horary.Exhausted)
				}
			})
		})
	})
}
