// Package analytic is an ephemeris provider built on the Meeus algorithms for the
// Sun, Moon, lunar node, Pluto, sidereal time and obliquity, with mean orbital
// elements and the largest periodic perturbations for the other planets. Planets
// are good to a fraction of a degree and the ascendant to about a hundredth of a
// degree, which is what the chart and horary engines need.
package analytic

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/domain/zodiac"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/logger"
)

const defaultSpeedWindow = 0.5

// Provider implements ephemeris.Provider.
type Provider struct {
	logger      logger.Logger
	speedWindow float64
}

var _ ephemeris.Provider = (*Provider)(nil)

// New creates a Provider.
func New(opts ...Option) *Provider {
	p := &Provider{speedWindow: defaultSpeedWindow}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compute returns sidereal body positions, the ascendant and the cusps for req.
func (p *Provider) Compute(ctx context.Context, req ephemeris.Request) (ephemeris.Chart, error) {
	if err := ctx.Err(); err != nil {
		return ephemeris.Chart{}, err
	}
	if err := validate(req); err != nil {
		return ephemeris.Chart{}, err
	}

	jd := julianDay(req.Time)
	ayan, err := ayanamsa(req.Ayanamsa, jd)
	if err != nil {
		return ephemeris.Chart{}, err
	}
	jde := ephemerisDay(jd)

	out := ephemeris.Chart{Request: req, Bodies: make([]ephemeris.Body, 0, len(ephemeris.Bodies))}
	for _, name := range ephemeris.Bodies {
		b, err := p.body(name, jde, ayan)
		if err != nil {
			return ephemeris.Chart{}, fmt.Errorf("compute %s: %w", name, err)
		}
		out.Bodies = append(out.Bodies, b)
	}

	f := frame{
		ramc:      norm(siderealTime(jd) + req.Longitude),
		obliquity: obliquity(jde),
		latitude:  req.Latitude,
	}
	out.Ascendant = norm(f.ascendant() - ayan)

	cusps, ok := siderealCusps(req.HouseSystem, out.Ascendant)
	if !ok {
		tropical, err := f.tropicalCusps(req.HouseSystem)
		if err != nil {
			return ephemeris.Chart{}, err
		}
		for i := range tropical {
			cusps[i] = norm(tropical[i] - ayan)
		}
	}
	for i, c := range cusps {
		out.Cusps[i] = ephemeris.Cusp{House: i + 1, Longitude: c}
	}

	if p.logger != nil {
		p.logger.Debug(ctx, "ephemeris computed",
			logger.String("time", req.Time.String()),
			logger.Float64("ayanamsa", ayan),
			logger.Float64("ascendant", out.Ascendant))
	}
	return out, nil
}

// Ascendant returns only the sidereal ascendant, skipping body positions.
func (p *Provider) Ascendant(ctx context.Context, req ephemeris.Request) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := validate(req); err != nil {
		return 0, err
	}
	jd := julianDay(req.Time)
	ayan, err := ayanamsa(req.Ayanamsa, jd)
	if err != nil {
		return 0, err
	}
	f := frame{
		ramc:      norm(siderealTime(jd) + req.Longitude),
		obliquity: obliquity(ephemerisDay(jd)),
		latitude:  req.Latitude,
	}
	return norm(f.ascendant() - ayan), nil
}

func (p *Provider) body(name string, jde, ayan float64) (ephemeris.Body, error) {
	lon, lat, err := tropicalPosition(name, jde)
	if err != nil {
		return ephemeris.Body{}, err
	}
	before, _, err := tropicalPosition(name, jde-p.speedWindow)
	if err != nil {
		return ephemeris.Body{}, err
	}
	after, _, err := tropicalPosition(name, jde+p.speedWindow)
	if err != nil {
		return ephemeris.Body{}, err
	}
	speed := math.Mod(after-before+540, 360) - 180

	sidereal := norm(lon - ayan)
	sign := int(sidereal / 30)
	if sign > 11 {
		sign = 11
	}
	return ephemeris.Body{
		Name:          name,
		Sign:          zodiac.SignName(sign),
		Retrograde:    speed < 0,
		Longitude:     sidereal,
		SignLongitude: sidereal - float64(sign)*30,
		Latitude:      lat,
	}, nil
}

func validate(req ephemeris.Request) error {
	if req.Time.IsZero() {
		return fmt.Errorf("missing time: %w", types.ErrInvalidInput)
	}
	if math.IsNaN(req.Latitude) || req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("latitude %v: %w", req.Latitude, types.ErrInvalidInput)
	}
	if math.IsNaN(req.Longitude) || req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("longitude %v: %w", req.Longitude, types.ErrInvalidInput)
	}
	if err := ephemeris.ValidateAyanamsa(req.Ayanamsa); err != nil {
		return err
	}
	return ephemeris.ValidateHouseSystem(req.HouseSystem)
}
