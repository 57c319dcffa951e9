// Package horary finds the clock time at which the ascendant reaches the start of a
// numbered KP sub-lord division.
package horary

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/domain/vimshottari"
	"github.com/okian/kpastro/internal/domain/zodiac"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/angle"
	"github.com/okian/kpastro/pkg/logger"
)

// Search defaults.
const (
	DefaultTolerance    = 0.0018
	DefaultSeedVelocity = 0.00431
)

const (
	windowSeconds = 86400.0
	resolution    = 0.001 // seconds
	lastInstant   = windowSeconds - resolution

	// backoffVelocity is deliberately below the slowest ascendant speed so a
	// backed-off seed lands before the target.
	backoffVelocity = 0.0025
	maxBackoff      = 8
	nudgeStep       = 0.05 // seconds
	seamMargin      = 1.0  // degrees
)

// Query describes one horary search. Only the calendar day of Date is used;
// its location fixes the local midnight the search starts from.
type Query struct {
	Number      int
	Date        time.Time
	Latitude    float64
	Longitude   float64
	Ayanamsa    string
	HouseSystem string
}

// Request returns the ephemeris request for the query location at t.
func (q Query) Request(t time.Time) ephemeris.Request {
	return ephemeris.Request{
		Time:        t,
		Latitude:    q.Latitude,
		Longitude:   q.Longitude,
		Ayanamsa:    q.Ayanamsa,
		HouseSystem: q.HouseSystem,
	}
}

// Result is the outcome of a search. A search that runs out of day ends in
// Exhausted without an error.
type Result struct {
	State       State            `json:"state"`
	Target      Target           `json:"target"`
	Time        time.Time        `json:"time"`
	Ascendant   float64          `json:"ascendant"`
	Overshoot   float64          `json:"overshoot"`
	SubLord     vimshottari.Lord `json:"sub_lord"`
	Evaluations int              `json:"evaluations"`
}

// Matched reports whether the search found the target.
func (r Result) Matched() bool {
	return r.State == Matched
}

// Err returns types.ErrNoMatchFound for an exhausted search and nil otherwise.
func (r Result) Err() error {
	if r.State == Exhausted {
		return fmt.Errorf("horary number %d: %w", r.Target.Number, types.ErrNoMatchFound)
	}
	return nil
}

// ascendantSource is implemented by providers that can compute the ascendant alone.
type ascendantSource interface {
	Ascendant(ctx context.Context, req ephemeris.Request) (float64, error)
}

// Locator searches a day for the moment a horary target rises.
type Locator struct {
	provider  ephemeris.Provider
	tolerance float64
	velocity  float64
	logger    logger.Logger
}

// NewLocator creates a Locator over provider.
func NewLocator(provider ephemeris.Provider, opts ...Option) *Locator {
	l := &Locator{
		provider:  provider,
		tolerance: DefaultTolerance,
		velocity:  DefaultSeedVelocity,
		logger:    logger.OrNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate runs one search.
func (l *Locator) Locate(ctx context.Context, q Query) (Result, error) {
	target, err := Lookup(q.Number)
	if err != nil {
		return Result{}, err
	}
	y, m, d := q.Date.Date()
	s := &search{
		l:        l,
		q:        q,
		target:   target,
		midnight: time.Date(y, m, d, 0, 0, 0, 0, q.Date.Location()),
	}
	res := Result{State: Seeding, Target: target}

	start, err := s.seed(ctx)
	if err != nil {
		return Result{}, err
	}
	res.State = Scanning
	l.logger.Debug(ctx, "horary scan started",
		logger.Int("number", q.Number),
		logger.Float64("target", target.Longitude),
		logger.Float64("seed_seconds", start))

	at, asc, ok, err := s.scan(ctx, start)
	res.Evaluations = s.evaluations
	if err != nil {
		return Result{}, err
	}
	if !ok {
		res.State = Exhausted
		l.logger.Debug(ctx, "horary search exhausted",
			logger.Int("number", q.Number),
			logger.Int("evaluations", s.evaluations))
		return res, nil
	}

	res.State = Matched
	res.Time = s.instant(at)
	res.Ascendant = asc
	res.Overshoot = s.overshoot(asc)
	res.SubLord = target.SubLord
	l.logger.Debug(ctx, "horary search matched",
		logger.Int("number", q.Number),
		logger.Time("time", res.Time),
		logger.Float64("ascendant", asc),
		logger.Int("evaluations", s.evaluations))
	return res, nil
}

// search holds the state of one Locate call. Times are seconds after local midnight.
type search struct {
	l           *Locator
	q           Query
	target      Target
	midnight    time.Time
	evaluations int
}

func (s *search) instant(sec float64) time.Time {
	return s.midnight.Add(time.Duration(math.Round(sec * float64(time.Second))))
}

func (s *search) ascendant(ctx context.Context, sec float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.evaluations++
	req := s.q.Request(s.instant(sec))
	if src, ok := s.l.provider.(ascendantSource); ok {
		return src.Ascendant(ctx, req)
	}
	c, err := s.l.provider.Compute(ctx, req)
	if err != nil {
		return 0, err
	}
	return c.Ascendant, nil
}

// overshoot is how far asc has moved past the target, in [0, 360).
func (s *search) overshoot(asc float64) float64 {
	return angle.Forward(s.target.Longitude, asc)
}

// past reports whether asc lies within half a circle after the target.
func (s *search) past(asc float64) bool {
	o := s.overshoot(asc)
	return o > 0 && o < 180
}

// seed estimates how far into the day to start scanning, backing off when the
// estimate has already run past the target.
func (s *search) seed(ctx context.Context) (float64, error) {
	a0, err := s.ascendant(ctx, 0)
	if err != nil {
		return 0, err
	}
	t := math.Min(angle.Forward(a0, s.target.Longitude)/s.l.velocity, lastInstant)
	for range maxBackoff {
		if t <= 0 {
			return 0, nil
		}
		a, err := s.ascendant(ctx, t)
		if err != nil {
			return 0, err
		}
		if !s.past(a) {
			return t, nil
		}
		t = math.Max(0, t-s.overshoot(a)/backoffVelocity)
	}
	return 0, nil
}

// step picks the scan increment from the remaining distance to the target.
func (s *search) step(asc float64) float64 {
	d := angle.Forward(asc, s.target.Longitude)
	nearSeam := s.target.Longitude < seamMargin || s.target.Longitude > angle.FullCircle-seamMargin
	switch {
	case nearSeam && d < seamMargin:
		return 1
	case d > 10:
		return 300
	case d >= 1:
		return 60
	case d >= 0.1:
		return 10
	default:
		return 1
	}
}

// scan walks forward until the ascendant crosses the target with the right sub-lord.
func (s *search) scan(ctx context.Context, start float64) (float64, float64, bool, error) {
	t := start
	a, err := s.ascendant(ctx, t)
	if err != nil {
		return 0, 0, false, err
	}
	for t < lastInstant {
		next := math.Min(t+s.step(a), lastInstant)
		an, err := s.ascendant(ctx, next)
		if err != nil {
			return 0, 0, false, err
		}
		if !s.past(a) && s.past(an) {
			at, asc, ok, err := s.refine(ctx, t, next, an)
			if err != nil || ok {
				return at, asc, ok, err
			}
		}
		t, a = next, an
	}
	return 0, 0, false, nil
}

// refine bisects a bracketed crossing down to the tolerance band, then applies
// the sub-lord guard, nudging forward through the band before giving up.
func (s *search) refine(ctx context.Context, lo, hi, ahi float64) (float64, float64, bool, error) {
	for s.overshoot(ahi) > s.l.tolerance && hi-lo > resolution {
		mid := (lo + hi) / 2
		am, err := s.ascendant(ctx, mid)
		if err != nil {
			return 0, 0, false, err
		}
		if s.past(am) {
			hi, ahi = mid, am
		} else {
			lo = mid
		}
	}

	t, a := hi, ahi
	for s.past(a) && s.overshoot(a) <= s.l.tolerance {
		c, err := zodiac.Classify(a)
		if err != nil {
			return 0, 0, false, err
		}
		if c.SubLord == s.target.SubLord {
			return t, a, true, nil
		}
		t += nudgeStep
		if t > lastInstant {
			break
		}
		if a, err = s.ascendant(ctx, t); err != nil {
			return 0, 0, false, err
		}
	}
	s.l.logger.Debug(ctx, "horary crossing rejected by sub-lord guard",
		logger.Int("number", s.q.Number),
		logger.Float64("ascendant", a))
	return 0, 0, false, nil
}
