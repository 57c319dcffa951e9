package horary

import "github.com/okian/kpastro/pkg/logger"

// Option configures a Locator.
type Option func(*Locator)

// WithTolerance sets the accepted overshoot past the target, in degrees.
func WithTolerance(deg float64) Option {
	return func(l *Locator) {
		if deg > 0 {
			l.tolerance = deg
		}
	}
}

// WithSeedVelocity sets the assumed ascendant speed used to skip ahead, in degrees per second.
func WithSeedVelocity(degPerSecond float64) Option {
	return func(l *Locator) {
		if degPerSecond > 0 {
			l.velocity = degPerSecond
		}
	}
}

// WithLogger sets the locator logger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Locator) {
		if lg != nil {
			l.logger = lg
		}
	}
}
