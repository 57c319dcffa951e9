package api

import (
	"fmt"
	"time"

	service "github.com/okian/kpastro/internal/app"
	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/ephemeris"
)

// chartRequest is the body of POST /chart. Clock fields are local to the utc offset.
type chartRequest struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Day         int     `json:"day"`
	Hour        int     `json:"hour"`
	Minute      int     `json:"minute"`
	Second      int     `json:"second"`
	UTC         string  `json:"utc"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Ayanamsa    string  `json:"ayanamsa"`
	HouseSystem string  `json:"house_system"`
}

// horaryRequest is the body of POST /horary.
type horaryRequest struct {
	Number int `json:"number"`
	chartRequest
}

func (c chartRequest) toService() (service.ChartRequest, error) {
	loc, err := ephemeris.ParseUTCOffset(c.UTC)
	if err != nil {
		return service.ChartRequest{}, err
	}
	t := time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, loc)
	// time.Date normalizes out-of-range fields; a changed field means bad input.
	if t.Year() != c.Year || int(t.Month()) != c.Month || t.Day() != c.Day ||
		t.Hour() != c.Hour || t.Minute() != c.Minute || t.Second() != c.Second {
		return service.ChartRequest{}, fmt.Errorf("invalid date or time %04d-%02d-%02d %02d:%02d:%02d: %w",
			c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, types.ErrInvalidInput)
	}
	return service.ChartRequest{
		Time:        t,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Ayanamsa:    c.Ayanamsa,
		HouseSystem: c.HouseSystem,
	}, nil
}
