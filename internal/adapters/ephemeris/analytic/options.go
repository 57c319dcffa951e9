package analytic

import "github.com/okian/kpastro/pkg/logger"

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the provider logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSpeedWindow sets the half-width in days of the finite difference used to detect
// retrograde motion.
func WithSpeedWindow(days float64) Option {
	return func(p *Provider) {
		if days > 0 {
			p.speedWindow = days
		}
	}
}
