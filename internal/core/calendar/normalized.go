package calendar

import "time"

var normalizedMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// normalizedCumDays[m] is the number of days before month m+1.
var normalizedCumDays = func() [12]int {
	var cum [12]int
	for i := 1; i < 12; i++ {
		cum[i] = cum[i-1] + normalizedMonthDays[i-1]
	}
	return cum
}()

// Normalized is a calendar of 365-day years with no leap days, used to
// compare years on an equal footing. Day 0 is January 1st of year 1 and every
// year starts on the first day of the week. February 29th is folded onto
// February 28th.
type Normalized struct{}

var _ Calendar = Normalized{}

func (Normalized) Name() Name { return NameNormalized }

func (n Normalized) Ordinal(t time.Time) int64 {
	y, m, d := t.Date()
	return n.ordinal(y, m, d)
}

func (Normalized) Seconds(t time.Time) int64 {
	return secondsOfDay(t)
}

func (Normalized) DayOfWeek(t time.Time) int {
	_, m, d := t.Date()
	return (normalizedCumDays[m-1] + min(d, normalizedMonthDays[m-1]) - 1) % 7
}

func (n Normalized) Position(t time.Time, g Granularity) Position {
	return position(n, t, g)
}

func (n Normalized) DaysInMonth(year int, month time.Month) int {
	return n.daysInMonth(year, month)
}

func (n Normalized) DaysInYear(year int) int {
	return n.daysInYear(year)
}

func (Normalized) StartOfDay(t time.Time) time.Time {
	return Gregorian{}.StartOfDay(t)
}

func (Normalized) StartOfMonth(t time.Time) time.Time {
	return Gregorian{}.StartOfMonth(t)
}

func (Normalized) NextMonthStart(t time.Time) time.Time {
	return Gregorian{}.NextMonthStart(t)
}

func (Normalized) StartOfYear(t time.Time) time.Time {
	return Gregorian{}.StartOfYear(t)
}

func (Normalized) ordinal(year int, month time.Month, day int) int64 {
	day = min(day, normalizedMonthDays[month-1])
	return int64(year-1)*365 + int64(normalizedCumDays[month-1]) + int64(day-1)
}

func (Normalized) daysInMonth(_ int, month time.Month) int {
	return normalizedMonthDays[month-1]
}

func (Normalized) daysInYear(int) int {
	return 365
}
