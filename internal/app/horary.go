package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okian/kpastro/internal/domain/chart"
	"github.com/okian/kpastro/internal/domain/horary"
	"github.com/okian/kpastro/pkg/logger"
	"github.com/okian/kpastro/pkg/metrics"
)

// HoraryRequest asks when horary Number rises on the day of the question.
type HoraryRequest struct {
	Number int
	ChartRequest
}

// HoraryReport carries the search outcome and, on a match, the horary chart:
// planets at the question time over the cusps of the matched time.
type HoraryReport struct {
	ID     string        `json:"id"`
	Result horary.Result `json:"result"`
	Chart  *ChartReport  `json:"chart,omitempty"`
}

func (s *Service) query(r HoraryRequest) horary.Query {
	req := s.request(r.ChartRequest)
	return horary.Query{
		Number:      r.Number,
		Date:        req.Time,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Ayanamsa:    req.Ayanamsa,
		HouseSystem: req.HouseSystem,
	}
}

// Horary runs one search bounded by the configured timeout. An exhausted search
// returns its report together with an error wrapping types.ErrNoMatchFound.
func (s *Service) Horary(ctx context.Context, r HoraryRequest) (HoraryReport, error) {
	provider, locator, err := s.components()
	if err != nil {
		return HoraryReport{}, err
	}
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.horaryTimeout)
	defer cancel()

	q := s.query(r)
	res, cached, err := s.locate(ctx, locator, q)
	if err != nil {
		metrics.RecordHorary(metrics.OutcomeError, 0, elapsedMs(start))
		return HoraryReport{}, s.fail(ctx, "horary", err)
	}
	report := HoraryReport{ID: uuid.NewString(), Result: res}
	evaluations := res.Evaluations
	if cached {
		evaluations = 0
	}
	if !res.Matched() {
		s.horaryMissed.Add(1)
		metrics.RecordHorary(metrics.OutcomeExhausted, evaluations, elapsedMs(start))
		return report, res.Err()
	}

	question, err := provider.Compute(ctx, q.Request(r.Time))
	if err != nil {
		return HoraryReport{}, s.fail(ctx, "ephemeris", err)
	}
	matched, err := provider.Compute(ctx, q.Request(res.Time))
	if err != nil {
		return HoraryReport{}, s.fail(ctx, "ephemeris", err)
	}
	merged, err := chart.Merge(question, matched)
	if err != nil {
		return HoraryReport{}, s.fail(ctx, "chart", err)
	}
	c, err := newReport(question.Request, merged)
	if err != nil {
		return HoraryReport{}, s.fail(ctx, "dasa", err)
	}
	report.Chart = &c

	s.horaryMatched.Add(1)
	metrics.RecordHorary(metrics.OutcomeMatched, evaluations, elapsedMs(start))
	s.logger.Info(ctx, "horary matched",
		logger.Int("number", r.Number),
		logger.Time("matched", res.Time),
		logger.Float64("ascendant", res.Ascendant),
		logger.Int("evaluations", res.Evaluations),
		logger.Bool("cached", cached),
	)
	return report, nil
}

// Sweep locates every number on the day of the request, all 249 when numbers is empty.
func (s *Service) Sweep(ctx context.Context, r HoraryRequest, numbers []int) ([]horary.Result, error) {
	_, locator, err := s.components()
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		numbers = make([]int, horary.DivisionCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
	}

	metrics.AddSweepInFlight(len(numbers))
	defer metrics.AddSweepInFlight(-len(numbers))

	start := time.Now()
	results, err := locator.Sweep(ctx, s.query(r), numbers, s.sweepWorkers)
	if err != nil {
		return nil, s.fail(ctx, "sweep", err)
	}
	matched := 0
	for _, res := range results {
		if res.Matched() {
			matched++
		}
	}
	s.logger.Info(ctx, "horary sweep finished",
		logger.Int("numbers", len(numbers)),
		logger.Int("matched", matched),
		logger.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// Divisions returns the horary division table.
func (s *Service) Divisions() []horary.Division {
	return horary.Divisions()
}

// Division returns one row of the horary division table.
func (s *Service) Division(number int) (horary.Division, error) {
	t, err := horary.Lookup(number)
	if err != nil {
		return horary.Division{}, err
	}
	return t.Division, nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
