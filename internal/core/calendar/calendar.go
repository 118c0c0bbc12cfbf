// Package calendar maps instants onto continuous offsets.
//
// For a granularity g, the offset of an instant is the number of whole g
// periods elapsed since a fixed epoch plus the elapsed fraction of the current
// period. Subtracting the offset of a series start from the offset of a date
// gives the date's position in the series' sample array, which is how every
// index lookup in the module is computed.
//
// Only wall-clock fields (year, month, day, hour, minute, second) take part in
// the computation. Sub-second components and the location's UTC offset are
// ignored, so DST transitions have no effect on offsets.
package calendar

import (
	"fmt"
	"strings"
	"time"

	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

const secondsPerDay = 86400

// Name identifies a calendar.
type Name string

// Supported calendars.
const (
	NameGregorian  Name = "gregorian"
	NameNormalized Name = "normalized"
	NameGas        Name = "gas"
)

// Calendar is a pluggable day-counting model.
type Calendar interface {
	Name() Name

	// Ordinal returns the day number of t's calendar day.
	Ordinal(t time.Time) int64
	// Seconds returns the seconds elapsed since the start of t's calendar day.
	Seconds(t time.Time) int64
	// DayOfWeek returns 0 for the first day of the calendar week through 6.
	DayOfWeek(t time.Time) int

	// Position returns the offset of t split into period and fraction.
	Position(t time.Time, g Granularity) Position

	DaysInMonth(year int, month time.Month) int
	DaysInYear(year int) int

	StartOfDay(t time.Time) time.Time
	StartOfMonth(t time.Time) time.Time
	NextMonthStart(t time.Time) time.Time
	StartOfYear(t time.Time) time.Time
}

// Position is a calendar offset kept as its integer period index and the
// elapsed fraction of that period, in [0, 1).
type Position struct {
	Period int64
	Frac   float64
}

// Float returns the offset as a single number.
func (p Position) Float() float64 {
	return float64(p.Period) + p.Frac
}

// Sub returns p - o. The integer parts are subtracted first so the result
// stays exact for offsets far from the epoch.
func (p Position) Sub(o Position) float64 {
	return float64(p.Period-o.Period) + (p.Frac - o.Frac)
}

// Offset returns the continuous offset of t for granularity g.
func Offset(c Calendar, t time.Time, g Granularity) float64 {
	return c.Position(t, g).Float()
}

// IntOffset returns the number of whole g periods elapsed at t.
func IntOffset(c Calendar, t time.Time, g Granularity) int64 {
	return c.Position(t, g).Period
}

// FracOffset returns the elapsed fraction of the g period containing t.
func FracOffset(c Calendar, t time.Time, g Granularity) float64 {
	return c.Position(t, g).Frac
}

// Names lists the supported calendars.
var Names = []Name{NameGregorian, NameNormalized, NameGas}

// Lookup resolves a calendar by name. An empty name selects the Gregorian
// calendar.
func Lookup(name string) (Calendar, error) {
	switch Name(strings.ToLower(strings.TrimSpace(name))) {
	case "", NameGregorian:
		return Gregorian{}, nil
	case NameNormalized:
		return Normalized{}, nil
	case NameGas:
		return Gas{}, nil
	}
	return nil, tserr.Malformedf("unknown calendar %q", name)
}

// dayModel is the part of a calendar that differs between day-counting
// schemes. Everything else is derived from it by position.
type dayModel interface {
	ordinal(year int, month time.Month, day int) int64
	daysInMonth(year int, month time.Month) int
	daysInYear(year int) int
}

// position computes the offset of the wall clock of t under model m.
func position(m dayModel, t time.Time, g Granularity) Position {
	year, month, day := t.Date()
	if last := m.daysInMonth(year, month); day > last {
		day = last
	}
	ord := m.ordinal(year, month, day)
	secs := secondsOfDay(t)

	switch g {
	case Granularity15Min:
		return Position{Period: ord*96 + secs/900, Frac: float64(secs%900) / 900}
	case GranularityHourly:
		return Position{Period: ord*24 + secs/3600, Frac: float64(secs%3600) / 3600}
	case GranularityDaily:
		return Position{Period: ord, Frac: float64(secs) / secondsPerDay}
	case GranularityWeekly:
		w := ord - 1
		elapsed := float64(floorMod(w, 7)) + float64(secs)/secondsPerDay
		return Position{Period: floorDiv(w, 7), Frac: elapsed / 7}
	case GranularityMonthly:
		elapsed := float64(day-1) + float64(secs)/secondsPerDay
		return Position{
			Period: int64(year-1)*12 + int64(month) - 1,
			Frac:   elapsed / float64(m.daysInMonth(year, month)),
		}
	case GranularityYearly:
		elapsed := float64(ord-m.ordinal(year, time.January, 1)) + float64(secs)/secondsPerDay
		return Position{Period: int64(year - 1), Frac: elapsed / float64(m.daysInYear(year))}
	}
	panic(fmt.Sprintf("calendar: no offset for granularity %q", g))
}

func secondsOfDay(t time.Time) int64 {
	h, m, s := t.Clock()
	return int64(h)*3600 + int64(m)*60 + int64(s)
}

// WallClock returns the wall clock of t as a UTC instant, dropping the zone
// offset and sub-second part. Offsets only depend on these fields, so two
// instants with the same WallClock always index the same sample.
func WallClock(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
}

// inLocation rebuilds the wall clock of w in loc.
func inLocation(w time.Time, loc *time.Location) time.Time {
	y, mo, d := w.Date()
	h, mi, s := w.Clock()
	return time.Date(y, mo, d, h, mi, s, 0, loc)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
