package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/kpastro/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DefaultAyanamsa, convey.ShouldEqual, "Lahiri")
			convey.So(cfg.DefaultHouseSystem, convey.ShouldEqual, "Equal")
			convey.So(cfg.HoraryToleranceDeg, convey.ShouldEqual, 0.0018)
			convey.So(cfg.HorarySeedVelocity, convey.ShouldEqual, 0.00431)
			convey.So(cfg.HoraryTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.SweepWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.HoraryCacheSize, convey.ShouldEqual, 1024)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "kpastro")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "engine")
			convey.So(cfg.MetricsRefreshIntervalMS, convey.ShouldEqual, 10_000)
			convey.So(cfg.MetricsLatencyBucketsMS, convey.ShouldBeEmpty)
			convey.So(cfg.MetricsOptions(), convey.ShouldHaveLength, 4)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with a single bad value", t, func() {
		cases := map[string]func(*config.Config){
			"addr must not be empty":         func(c *config.Config) { c.Addr = "" },
			"unknown log_format":             func(c *config.Config) { c.LogFormat = "xml" },
			"horary_tolerance_deg":           func(c *config.Config) { c.HoraryToleranceDeg = 0 },
			"horary_seed_velocity":           func(c *config.Config) { c.HorarySeedVelocity = -1 },
			"horary_timeout_ms":              func(c *config.Config) { c.HoraryTimeoutMS = 0 },
			"sweep_workers must be positive": func(c *config.Config) { c.SweepWorkers = 0 },
			"horary_cache_size":              func(c *config.Config) { c.HoraryCacheSize = -1 },
			"default_ayanamsa":               func(c *config.Config) { c.DefaultAyanamsa = "Tropical" },
			"default_house_system":           func(c *config.Config) { c.DefaultHouseSystem = "Azimuthal" },
			"metrics_namespace":              func(c *config.Config) { c.MetricsNamespace = "" },
			"metrics_refresh_interval_ms":    func(c *config.Config) { c.MetricsRefreshIntervalMS = 0 },
			"strictly increasing":            func(c *config.Config) { c.MetricsLatencyBucketsMS = []float64{1, 5, 5} },
		}

		convey.Convey("Then each should fail validation with ErrInvalidConfig", func() {
			for msg, mutate := range cases {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, msg)
			}
		})
	})
}
