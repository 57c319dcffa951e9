package service

import (
	"context"

	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/metrics"
)

type ascendantSource interface {
	Ascendant(ctx context.Context, req ephemeris.Request) (float64, error)
}

// instrumentedProvider counts every ephemeris call. It keeps the ascendant-only
// fast path of the wrapped provider visible to the horary locator.
type instrumentedProvider struct {
	inner ephemeris.Provider
}

func instrument(p ephemeris.Provider) ephemeris.Provider {
	if ip, ok := p.(*instrumentedProvider); ok {
		return ip
	}
	return &instrumentedProvider{inner: p}
}

func (p *instrumentedProvider) Compute(ctx context.Context, req ephemeris.Request) (ephemeris.Chart, error) {
	c, err := p.inner.Compute(ctx, req)
	metrics.RecordEphemerisCall(err)
	return c, err
}

func (p *instrumentedProvider) Ascendant(ctx context.Context, req ephemeris.Request) (float64, error) {
	src, ok := p.inner.(ascendantSource)
	if !ok {
		c, err := p.Compute(ctx, req)
		return c.Ascendant, err
	}
	asc, err := src.Ascendant(ctx, req)
	metrics.RecordEphemerisCall(err)
	return asc, err
}
