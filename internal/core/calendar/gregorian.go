package calendar

import "time"

// ordinalUnixEpoch is the proleptic Gregorian ordinal of 1970-01-01, with
// 0001-01-01 as day 1.
const ordinalUnixEpoch = 719163

// Gregorian is the standard calendar. Days are numbered from 0001-01-01
// (ordinal 1) and weeks start on Monday.
type Gregorian struct{}

var _ Calendar = Gregorian{}

func (Gregorian) Name() Name { return NameGregorian }

func (g Gregorian) Ordinal(t time.Time) int64 {
	y, m, d := t.Date()
	return g.ordinal(y, m, d)
}

func (Gregorian) Seconds(t time.Time) int64 {
	return secondsOfDay(t)
}

// DayOfWeek returns 0 for Monday through 6 for Sunday.
func (Gregorian) DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func (g Gregorian) Position(t time.Time, gr Granularity) Position {
	return position(g, t, gr)
}

func (g Gregorian) DaysInMonth(year int, month time.Month) int {
	return g.daysInMonth(year, month)
}

func (g Gregorian) DaysInYear(year int) int {
	return g.daysInYear(year)
}

func (Gregorian) StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (Gregorian) StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func (Gregorian) NextMonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
}

func (Gregorian) StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func (Gregorian) ordinal(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()/secondsPerDay + ordinalUnixEpoch
}

func (Gregorian) daysInMonth(year int, month time.Month) int {
	return gregorianDaysInMonth(year, month)
}

func (Gregorian) daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

func gregorianDaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
