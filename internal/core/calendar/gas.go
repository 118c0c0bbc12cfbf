package calendar

import "time"

// gasDayStart is the wall-clock hour at which a gas day begins.
const gasDayStart = 6 * time.Hour

// gasYearStart is the first month of a gas year.
const gasYearStart = time.October

// Gas is the gas-industry calendar. A gas day runs from 06:00 to 06:00 the
// next day, months follow gas days, and the gas year starting October 1st of
// year Y has yearly offset Y-1. Monthly offsets count gas months from
// October of year 0, so October 2009 is period (2009-1)*12 + 9 - 9.
type Gas struct{}

var _ Calendar = Gas{}

func (Gas) Name() Name { return NameGas }

// shift maps t onto the Gregorian instant of the same gas-day position.
func (Gas) shift(t time.Time) time.Time {
	return WallClock(t).Add(-gasDayStart)
}

func (c Gas) Ordinal(t time.Time) int64 {
	return Gregorian{}.Ordinal(c.shift(t))
}

// Seconds returns the seconds elapsed since the start of the gas day.
func (c Gas) Seconds(t time.Time) int64 {
	return secondsOfDay(c.shift(t))
}

func (c Gas) DayOfWeek(t time.Time) int {
	return Gregorian{}.DayOfWeek(c.shift(t))
}

func (c Gas) Position(t time.Time, g Granularity) Position {
	s := c.shift(t)
	switch g {
	case GranularityMonthly:
		p := position(Gregorian{}, s, g)
		p.Period -= int64(gasYearStart) - 1
		return p
	case GranularityYearly:
		year := c.gasYear(s)
		start := Gregorian{}.ordinal(year, gasYearStart, 1)
		elapsed := float64(Gregorian{}.Ordinal(s)-start) + float64(secondsOfDay(s))/secondsPerDay
		return Position{Period: int64(year - 1), Frac: elapsed / float64(c.DaysInYear(year))}
	}
	return position(Gregorian{}, s, g)
}

func (Gas) DaysInMonth(year int, month time.Month) int {
	return gregorianDaysInMonth(year, month)
}

// DaysInYear returns the length of the gas year starting October 1st of year.
func (Gas) DaysInYear(year int) int {
	g := Gregorian{}
	return int(g.ordinal(year+1, gasYearStart, 1) - g.ordinal(year, gasYearStart, 1))
}

func (c Gas) StartOfDay(t time.Time) time.Time {
	s := c.shift(t)
	y, m, d := s.Date()
	return c.unshift(time.Date(y, m, d, 0, 0, 0, 0, time.UTC), t.Location())
}

func (c Gas) StartOfMonth(t time.Time) time.Time {
	y, m, _ := c.shift(t).Date()
	return c.unshift(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), t.Location())
}

func (c Gas) NextMonthStart(t time.Time) time.Time {
	y, m, _ := c.shift(t).Date()
	return c.unshift(time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC), t.Location())
}

func (c Gas) StartOfYear(t time.Time) time.Time {
	year := c.gasYear(c.shift(t))
	return c.unshift(time.Date(year, gasYearStart, 1, 0, 0, 0, 0, time.UTC), t.Location())
}

// gasYear returns the calendar year in which the gas year containing the
// shifted instant s started.
func (Gas) gasYear(s time.Time) int {
	if s.Month() < gasYearStart {
		return s.Year() - 1
	}
	return s.Year()
}

func (Gas) unshift(s time.Time, loc *time.Location) time.Time {
	return inLocation(s.Add(gasDayStart), loc)
}
