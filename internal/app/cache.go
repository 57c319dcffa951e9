package service

import (
	"context"

	"github.com/okian/kpastro/internal/adapters/cache"
	"github.com/okian/kpastro/internal/domain/horary"
)

// horaryKey identifies a search: the civil day and offset of the question,
// the place and the frame. The time of day does not change the result.
type horaryKey struct {
	number      int
	day         string
	offset      int
	latitude    float64
	longitude   float64
	ayanamsa    string
	houseSystem string
}

func keyOf(q horary.Query) horaryKey {
	_, offset := q.Date.Zone()
	return horaryKey{
		number:      q.Number,
		day:         q.Date.Format("2006-01-02"),
		offset:      offset,
		latitude:    q.Latitude,
		longitude:   q.Longitude,
		ayanamsa:    q.Ayanamsa,
		houseSystem: q.HouseSystem,
	}
}

// locate serves completed searches from the cache. Cancelled or failed
// searches are never stored.
func (s *Service) locate(ctx context.Context, locator *horary.Locator, q horary.Query) (horary.Result, bool, error) {
	c := s.resultCache()
	if c == nil {
		res, err := locator.Locate(ctx, q)
		return res, false, err
	}
	key := keyOf(q)
	if res, ok := c.Get(ctx, key); ok {
		return res, true, nil
	}
	res, err := locator.Locate(ctx, q)
	if err != nil {
		return res, false, err
	}
	c.Put(ctx, key, res)
	return res, false, nil
}

func (s *Service) resultCache() *cache.Cache[horaryKey, horary.Result] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}
