// Package config defines process configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file named by
// KPASTRO_CONFIG, then KPASTRO_* environment variables.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/logger"
	"github.com/okian/kpastro/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DefaultAyanamsa is used when a request leaves the ayanamsa empty.
	DefaultAyanamsa string `koanf:"default_ayanamsa"`

	// DefaultHouseSystem is used when a request leaves the house system empty.
	DefaultHouseSystem string `koanf:"default_house_system"`

	// HoraryToleranceDeg is the accepted ascendant overshoot past a horary target.
	HoraryToleranceDeg float64 `koanf:"horary_tolerance_deg"`

	// HorarySeedVelocity is the assumed ascendant speed, in degrees per second,
	// used to skip ahead before scanning.
	HorarySeedVelocity float64 `koanf:"horary_seed_velocity"`

	// HoraryTimeoutMS bounds a single horary search.
	HoraryTimeoutMS int `koanf:"horary_timeout_ms"`

	// SweepWorkers caps concurrent searches during a sweep.
	SweepWorkers int `koanf:"sweep_workers"`

	// HoraryCacheSize bounds the number of memoized horary results; 0 disables caching.
	HoraryCacheSize int `koanf:"horary_cache_size"`

	// MetricsNamespace and MetricsSubsystem prefix every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsRefreshIntervalMS is the period of the runtime metrics sampler.
	MetricsRefreshIntervalMS int `koanf:"metrics_refresh_interval_ms"`

	// MetricsLatencyBucketsMS overrides the chart and HTTP latency histogram
	// buckets; empty keeps the built-in ones.
	MetricsLatencyBucketsMS []float64 `koanf:"metrics_latency_buckets_ms"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          logger.FormatText,
		Addr:               ":9080",
		DefaultAyanamsa:    ephemeris.AyanamsaLahiri,
		DefaultHouseSystem: ephemeris.HousesEqual,
		HoraryToleranceDeg: 0.0018,
		HorarySeedVelocity: 0.00431,
		HoraryTimeoutMS:    30_000,
		SweepWorkers:       runtime.NumCPU(),
		HoraryCacheSize:    1024,

		MetricsNamespace:         metrics.DefaultNamespace,
		MetricsSubsystem:         metrics.DefaultSubsystem,
		MetricsRefreshIntervalMS: 10_000,
	}
}

// HoraryTimeout returns HoraryTimeoutMS as a duration.
func (c *Config) HoraryTimeout() time.Duration {
	return time.Duration(c.HoraryTimeoutMS) * time.Millisecond
}

// MetricsOptions returns the metrics manager options described by the config.
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithNamespace(c.MetricsNamespace),
		metrics.WithSubsystem(c.MetricsSubsystem),
		metrics.WithHistogramBuckets(c.MetricsLatencyBucketsMS),
		metrics.WithRefreshInterval(time.Duration(c.MetricsRefreshIntervalMS) * time.Millisecond),
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != logger.FormatText && c.LogFormat != logger.FormatJSON:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	case c.HoraryToleranceDeg <= 0:
		return fmt.Errorf("%w: horary_tolerance_deg must be positive", ErrInvalidConfig)
	case c.HorarySeedVelocity <= 0:
		return fmt.Errorf("%w: horary_seed_velocity must be positive", ErrInvalidConfig)
	case c.HoraryTimeoutMS <= 0:
		return fmt.Errorf("%w: horary_timeout_ms must be positive", ErrInvalidConfig)
	case c.SweepWorkers <= 0:
		return fmt.Errorf("%w: sweep_workers must be positive", ErrInvalidConfig)
	case c.HoraryCacheSize < 0:
		return fmt.Errorf("%w: horary_cache_size must not be negative", ErrInvalidConfig)
	case c.MetricsNamespace == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	case c.MetricsRefreshIntervalMS <= 0:
		return fmt.Errorf("%w: metrics_refresh_interval_ms must be positive", ErrInvalidConfig)
	}
	for i := 1; i < len(c.MetricsLatencyBucketsMS); i++ {
		if c.MetricsLatencyBucketsMS[i] <= c.MetricsLatencyBucketsMS[i-1] {
			return fmt.Errorf("%w: metrics_latency_buckets_ms must be strictly increasing", ErrInvalidConfig)
		}
	}
	if err := ephemeris.ValidateAyanamsa(c.DefaultAyanamsa); err != nil {
		return fmt.Errorf("%w: default_ayanamsa: %w", ErrInvalidConfig, err)
	}
	if err := ephemeris.ValidateHouseSystem(c.DefaultHouseSystem); err != nil {
		return fmt.Errorf("%w: default_house_system: %w", ErrInvalidConfig, err)
	}
	return nil
}
