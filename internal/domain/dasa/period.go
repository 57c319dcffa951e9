package dasa

import "time"

// Fixed calendar units used for period arithmetic.
const (
	MonthsPerYear  = 12
	DaysPerMonth   = 30
	HoursPerDay    = 24
	MinutesPerHour = 60
)

// Direction selects whether Shift moves forward or backward in time.
type Direction int

// Shift directions.
const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Interval is a fractional-year duration broken into whole fixed units.
type Interval struct {
	Years   int `json:"years"`
	Months  int `json:"months"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Split breaks years into whole years, months, days, hours and minutes,
// truncating at every step.
func Split(years float64) Interval {
	wy := int(years)
	months := (years - float64(wy)) * MonthsPerYear
	wm := int(months)
	days := (months - float64(wm)) * DaysPerMonth
	wd := int(days)
	hours := (days - float64(wd)) * HoursPerDay
	wh := int(hours)
	minutes := (hours - float64(wh)) * MinutesPerHour
	return Interval{Years: wy, Months: wm, Days: wd, Hours: wh, Minutes: int(minutes)}
}

// Shift moves t by years in the given direction. Whole years and months are
// applied on the calendar first, clamping the day of month; days, hours and
// minutes are then applied as elapsed time.
func Shift(t time.Time, years float64, dir Direction) time.Time {
	iv := Split(years)
	sign := int(dir)
	t = addMonths(t, sign*(iv.Years*MonthsPerYear+iv.Months))
	d := time.Duration(iv.Days)*HoursPerDay*time.Hour +
		time.Duration(iv.Hours)*time.Hour +
		time.Duration(iv.Minutes)*time.Minute
	return t.Add(time.Duration(sign) * d)
}

func addMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	total := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(total-floorDiv(total, 12)*12 + 1)
	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
