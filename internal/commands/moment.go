package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	service "github.com/okian/kpastro/internal/app"
	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/ephemeris"
)

const momentLayout = "2006-01-02 15:04:05"

// momentFlags are the place and local time flags shared by chart, horary and sweep.
type momentFlags struct {
	date        string
	clock       string
	utc         string
	latitude    float64
	longitude   float64
	ayanamsa    string
	houseSystem string
}

func (m *momentFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&m.date, "date", "", "local date, YYYY-MM-DD")
	f.StringVar(&m.clock, "time", "00:00:00", "local time, HH:MM:SS")
	f.StringVar(&m.utc, "utc", "", "UTC offset of the local time, e.g. +5:30")
	f.Float64Var(&m.latitude, "lat", 0, "latitude in degrees, north positive")
	f.Float64Var(&m.longitude, "lon", 0, "longitude in degrees, east positive")
	f.StringVar(&m.ayanamsa, "ayanamsa", "", "ayanamsa: "+fmt.Sprint(ephemeris.Ayanamsas())+" (default from config)")
	f.StringVar(&m.houseSystem, "house-system", "", "house system: "+fmt.Sprint(ephemeris.HouseSystems())+" (default from config)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("utc")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
}

func (m *momentFlags) request() (service.ChartRequest, error) {
	loc, err := ephemeris.ParseUTCOffset(m.utc)
	if err != nil {
		return service.ChartRequest{}, err
	}
	t, err := time.ParseInLocation(momentLayout, m.date+" "+m.clock, loc)
	if err != nil {
		return service.ChartRequest{}, fmt.Errorf("date %q time %q: %w", m.date, m.clock, types.ErrInvalidInput)
	}
	return service.ChartRequest{
		Time:        t,
		Latitude:    m.latitude,
		Longitude:   m.longitude,
		Ayanamsa:    m.ayanamsa,
		HouseSystem: m.houseSystem,
	}, nil
}
