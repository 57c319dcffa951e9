// Package service wires the chart, significator, dasa and horary engines into
// the operations exposed by the HTTP API and the CLI.
package service

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/kpastro/internal/adapters/cache"
	"github.com/okian/kpastro/internal/adapters/ephemeris/analytic"
	"github.com/okian/kpastro/internal/domain/horary"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/logger"
)

// Service implements the API dependencies for the chart engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	provider ephemeris.Provider
	locator  *horary.Locator
	results  *cache.Cache[horaryKey, horary.Result]

	// Configuration
	defaultAyanamsa    string
	defaultHouseSystem string
	horaryTolerance    float64
	seedVelocity       float64
	horaryTimeout      time.Duration
	sweepWorkers       int
	horaryCacheSize    int

	// Counters
	charts        atomic.Int64
	horaryMatched atomic.Int64
	horaryMissed  atomic.Int64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProvider sets the ephemeris provider. The analytic provider is used by default.
func WithProvider(p ephemeris.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithDefaults sets the ayanamsa and house system applied to requests that omit them.
func WithDefaults(ayanamsa, houseSystem string) Option {
	return func(s *Service) {
		if ayanamsa != "" {
			s.defaultAyanamsa = ayanamsa
		}
		if houseSystem != "" {
			s.defaultHouseSystem = houseSystem
		}
	}
}

// WithHoraryTolerance sets the accepted ascendant overshoot in degrees.
func WithHoraryTolerance(deg float64) Option {
	return func(s *Service) {
		if deg > 0 {
			s.horaryTolerance = deg
		}
	}
}

// WithSeedVelocity sets the horary seed velocity in degrees per second.
func WithSeedVelocity(degPerSecond float64) Option {
	return func(s *Service) {
		if degPerSecond > 0 {
			s.seedVelocity = degPerSecond
		}
	}
}

// WithHoraryTimeout bounds a single horary search.
func WithHoraryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.horaryTimeout = d
		}
	}
}

// WithSweepWorkers caps concurrent searches in a sweep.
func WithSweepWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sweepWorkers = n
		}
	}
}

// WithHoraryCacheSize bounds the horary result cache. Zero disables it.
func WithHoraryCacheSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.horaryCacheSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultAyanamsa:    ephemeris.AyanamsaLahiri,
		defaultHouseSystem: ephemeris.HousesEqual,
		horaryTolerance:    horary.DefaultTolerance,
		seedVelocity:       horary.DefaultSeedVelocity,
		horaryTimeout:      30 * time.Second,
		sweepWorkers:       runtime.NumCPU(),
		horaryCacheSize:    1024,
		logger:             nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.provider == nil {
		s.provider = analytic.New(analytic.WithLogger(s.logger.Named("ephemeris")))
	}

	s.provider = instrument(s.provider)
	s.locator = horary.NewLocator(s.provider,
		horary.WithTolerance(s.horaryTolerance),
		horary.WithSeedVelocity(s.seedVelocity),
		horary.WithLogger(s.logger.Named("horary")),
	)
	if s.horaryCacheSize > 0 {
		s.results = cache.New[horaryKey, horary.Result](cache.WithMaxSize(s.horaryCacheSize))
	}

	s.started = true
	s.logger.Info(ctx, "chart service started",
		logger.String("ayanamsa", s.defaultAyanamsa),
		logger.String("houseSystem", s.defaultHouseSystem),
		logger.Float64("horaryTolerance", s.horaryTolerance),
		logger.Duration("horaryTimeout", s.horaryTimeout),
		logger.Int("sweepWorkers", s.sweepWorkers),
		logger.Int("horaryCacheSize", s.horaryCacheSize),
	)
	return nil
}

// Stop shuts the service down. Requests made afterwards fail with ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "chart service stopped")
}

// components returns the provider and locator of a started service.
func (s *Service) components() (ephemeris.Provider, *horary.Locator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.provider, s.locator, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":            s.started,
		"defaultAyanamsa":    s.defaultAyanamsa,
		"defaultHouseSystem": s.defaultHouseSystem,
		"horaryTolerance":    s.horaryTolerance,
		"horaryTimeoutMs":    s.horaryTimeout.Milliseconds(),
		"sweepWorkers":       s.sweepWorkers,
		"chartsComputed":     s.charts.Load(),
		"horaryMatched":      s.horaryMatched.Load(),
		"horaryMissed":       s.horaryMissed.Load(),
	}
	if s.results != nil {
		hits, misses := s.results.Stats()
		stats["horaryCacheSize"] = s.results.Size()
		stats["horaryCacheHits"] = hits
		stats["horaryCacheMisses"] = misses
	}
	return stats
}
