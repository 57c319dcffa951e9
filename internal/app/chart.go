package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/kpastro/internal/domain/aspect"
	"github.com/okian/kpastro/internal/domain/chart"
	"github.com/okian/kpastro/internal/domain/dasa"
	"github.com/okian/kpastro/internal/domain/house"
	"github.com/okian/kpastro/internal/domain/significator"
	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/logger"
	"github.com/okian/kpastro/pkg/metrics"
)

// ChartRequest identifies a birth or question moment and place. Time carries
// the local clock reading in a fixed UTC-offset zone.
type ChartRequest struct {
	Time        time.Time
	Latitude    float64
	Longitude   float64
	Ayanamsa    string
	HouseSystem string
}

// ChartReport is everything computed for one chart.
type ChartReport struct {
	ID string `json:"id"`
	types.Moment
	Planets             []chart.Planet           `json:"planets"`
	Houses              [house.Count]chart.House `json:"houses"`
	PlanetSignificators []significator.Planet    `json:"planet_significators"`
	HouseSignificators  []significator.House     `json:"house_significators"`
	Aspects             []aspect.Aspect          `json:"aspects"`
	Dasa                dasa.Timeline            `json:"dasa"`
	Consolidated        []chart.SignGroup        `json:"consolidated"`
}

func (s *Service) request(r ChartRequest) ephemeris.Request {
	req := ephemeris.Request{
		Time:        r.Time,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Ayanamsa:    r.Ayanamsa,
		HouseSystem: r.HouseSystem,
	}
	if req.Ayanamsa == "" {
		req.Ayanamsa = s.defaultAyanamsa
	}
	if req.HouseSystem == "" {
		req.HouseSystem = s.defaultHouseSystem
	}
	return req
}

// Chart computes the full report for one moment and place.
func (s *Service) Chart(ctx context.Context, r ChartRequest) (ChartReport, error) {
	provider, _, err := s.components()
	if err != nil {
		return ChartReport{}, err
	}
	start := time.Now()

	raw, err := provider.Compute(ctx, s.request(r))
	if err != nil {
		return ChartReport{}, s.fail(ctx, "ephemeris", err)
	}
	c, err := chart.Build(raw)
	if err != nil {
		return ChartReport{}, s.fail(ctx, "chart", err)
	}
	report, err := newReport(raw.Request, c)
	if err != nil {
		return ChartReport{}, s.fail(ctx, "dasa", err)
	}

	s.charts.Add(1)
	metrics.RecordChart(elapsedMs(start))
	s.logger.Debug(ctx, "chart computed",
		logger.String("id", report.ID),
		logger.Time("time", raw.Request.Time),
		logger.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// newReport derives every table from c. The dasa epoch is the request time.
func newReport(req ephemeris.Request, c chart.Chart) (ChartReport, error) {
	moon, ok := c.Planet(ephemeris.Moon)
	if !ok {
		return ChartReport{}, fmt.Errorf("chart has no %s: %w", ephemeris.Moon, types.ErrInvalidInput)
	}
	tl, err := dasa.Compute(moon.Longitude, req.Time)
	if err != nil {
		return ChartReport{}, err
	}
	return ChartReport{
		ID: uuid.NewString(),
		Moment: types.Moment{
			Time:        req.Time,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Ayanamsa:    req.Ayanamsa,
			HouseSystem: req.HouseSystem,
		},
		Planets:             c.Planets,
		Houses:              c.Houses,
		PlanetSignificators: significator.Planets(c),
		HouseSignificators:  significator.Houses(c),
		Aspects:             aspect.Find(c),
		Dasa:                tl,
		Consolidated:        c.Consolidated(),
	}, nil
}

// fail records err against component and returns it unchanged.
func (s *Service) fail(ctx context.Context, component string, err error) error {
	kind := ErrorKind(err)
	metrics.RecordErrorByComponent(component, kind)
	if kind == KindInternal {
		s.logger.Error(ctx, "chart engine failure",
			logger.String("component", component),
			logger.Error(err),
		)
	}
	return err
}
