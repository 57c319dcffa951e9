package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the kpastro namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "kpastro")
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRefreshInterval(time.Second),
				WithPrometheusRegistry(registry),
			)
			manager.chartsComputed.Inc()

			Convey("Then the metrics should be registered under the custom names", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_namespace_test_subsystem_charts_computed_total"], ShouldBeTrue)
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})

		Convey("When empty option values are passed", func() {
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "kpastro")
				So(manager.histogramBuckets, ShouldResemble, DefaultLatencyBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording charts", func() {
			before := testutil.ToFloat64(global().chartsComputed)
			RecordChart(3.5)
			RecordChart(4.5)

			Convey("Then the counter should advance", func() {
				So(testutil.ToFloat64(global().chartsComputed)-before, ShouldEqual, 2)
			})
		})

		Convey("When recording horary outcomes", func() {
			before := testutil.ToFloat64(global().horarySearches.WithLabelValues(OutcomeMatched))
			RecordHorary(OutcomeMatched, 11, 2.0)
			RecordHorary(OutcomeExhausted, 0, 40.0)

			Convey("Then outcomes should be counted by label", func() {
				So(testutil.ToFloat64(global().horarySearches.WithLabelValues(OutcomeMatched))-before, ShouldEqual, 1)
			})
		})

		Convey("When recording a horary search with no evaluations", func() {
			before := sampleCount("kpastro_engine_horary_ascendant_evaluations")
			RecordHorary(OutcomeMatched, 0, 0.2)
			RecordHorary(OutcomeMatched, 9, 3.0)

			Convey("Then only the search that evaluated should be observed", func() {
				So(sampleCount("kpastro_engine_horary_ascendant_evaluations")-before, ShouldEqual, 1)
			})
		})

		Convey("When recording ephemeris calls", func() {
			calls := testutil.ToFloat64(global().ephemerisCalls)
			errs := testutil.ToFloat64(global().ephemerisErrors)
			RecordEphemerisCall(nil)
			RecordEphemerisCall(errors.New("boom"))

			Convey("Then only failures should count as errors", func() {
				So(testutil.ToFloat64(global().ephemerisCalls)-calls, ShouldEqual, 2)
				So(testutil.ToFloat64(global().ephemerisErrors)-errs, ShouldEqual, 1)
			})
		})

		Convey("When moving the sweep gauge", func() {
			AddSweepInFlight(3)
			AddSweepInFlight(-3)

			Convey("Then it should return to zero", func() {
				So(testutil.ToFloat64(global().sweepInFlight), ShouldEqual, 0)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					RecordHTTPRequest("/chart", "POST", "200")
					RecordHTTPRequestDuration("/chart", "POST", "200", 12.0)
					RecordErrorByComponent("horary", "no_match")
					RecordErrorByEndpoint("/horary", "POST", "timeout")
				}, ShouldNotPanic)
			})
		})

		Convey("When sampling system metrics", func() {
			CollectSystem()

			Convey("Then goroutines should be reported", func() {
				So(testutil.ToFloat64(global().systemGoroutineCount), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func sampleCount(name string) uint64 {
	families, err := GetRegistry().Gather()
	So(err, ShouldBeNil)
	for _, f := range families {
		if f.GetName() == name && len(f.GetMetric()) > 0 {
			return f.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func TestInit(t *testing.T) {
	Convey("Given a global manager initialized with custom options", t, func() {
		previous := GetRegistry()
		m := Init(
			WithNamespace("astro"),
			WithSubsystem("test"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithRefreshInterval(2*time.Second),
		)
		defer Init()

		Convey("Then the package recorders should write to a fresh registry", func() {
			So(global(), ShouldEqual, m)
			So(GetRegistry(), ShouldNotEqual, previous)
			So(m.refreshInterval, ShouldEqual, 2*time.Second)

			RecordChart(5)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			var buckets []float64
			for _, f := range families {
				if f.GetName() == "astro_test_chart_latency_milliseconds" {
					for _, b := range f.GetMetric()[0].GetHistogram().GetBucket() {
						buckets = append(buckets, b.GetUpperBound())
					}
				}
			}
			So(buckets, ShouldResemble, []float64{1, 10, 100})
		})
	})

	Convey("Given a re-initialized default manager", t, func() {
		Init()

		Convey("Then the default names should be registered again", func() {
			RecordChart(1)
			So(sampleCount("kpastro_engine_chart_latency_milliseconds"), ShouldEqual, 1)
		})
	})
}

func TestRunSystemCollector(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When running the collector", func() {
			done := make(chan struct{})
			go func() {
				RunSystemCollector(ctx)
				close(done)
			}()

			Convey("Then it should return promptly", func() {
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("collector did not stop")
				}
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		Convey("Then it should expose the kpastro metrics", func() {
			RecordChart(1)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if f.GetName() == "kpastro_engine_charts_computed_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
