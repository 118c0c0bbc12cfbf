package calendar

import (
	"errors"
	"testing"
	"time"

	tserr "github.com/aevon-lab/calseries/internal/core/errors"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func TestGregorian_OrdinalAndSeconds(t *testing.T) {
	g := Gregorian{}

	require.Equal(t, int64(1), g.Ordinal(date(1, time.January, 1, 0, 0)))
	require.Equal(t, int64(719163), g.Ordinal(date(1970, time.January, 1, 0, 0)))
	require.Equal(t, int64(733681), g.Ordinal(date(2009, time.October, 1, 23, 59)))
	require.Equal(t, int64(5400+120+7), g.Seconds(time.Date(2009, 10, 1, 1, 32, 7, 999, time.UTC)))
}

func TestGregorian_DayOfWeek(t *testing.T) {
	g := Gregorian{}

	require.Equal(t, 0, g.DayOfWeek(date(2009, time.October, 5, 12, 0)))
	require.Equal(t, 2, g.DayOfWeek(date(2009, time.October, 7, 0, 0)))
	require.Equal(t, 6, g.DayOfWeek(date(2009, time.October, 4, 0, 0)))
}

func TestGregorian_Position(t *testing.T) {
	g := Gregorian{}
	const ord = int64(733681) // 2009-10-01

	tests := []struct {
		name   string
		at     time.Time
		gran   Granularity
		period int64
		frac   float64
	}{
		{name: "15min", at: date(2009, time.October, 1, 1, 20), gran: Granularity15Min, period: ord*96 + 5, frac: 1.0 / 3},
		{name: "15min boundary", at: date(2009, time.October, 1, 0, 45), gran: Granularity15Min, period: ord*96 + 3, frac: 0},
		{name: "hourly", at: date(2009, time.October, 1, 1, 30), gran: GranularityHourly, period: ord*24 + 1, frac: 0.5},
		{name: "daily", at: date(2009, time.October, 2, 12, 0), gran: GranularityDaily, period: ord + 1, frac: 0.5},
		{name: "weekly monday", at: date(2009, time.October, 5, 0, 0), gran: GranularityWeekly, period: (ord + 3) / 7, frac: 0},
		{name: "weekly wednesday noon", at: date(2009, time.October, 7, 12, 0), gran: GranularityWeekly, period: (ord + 3) / 7, frac: 2.5 / 7},
		{name: "monthly", at: date(2009, time.November, 2, 12, 0), gran: GranularityMonthly, period: 2008*12 + 10, frac: 0.05},
		{name: "yearly", at: date(2010, time.February, 1, 0, 0), gran: GranularityYearly, period: 2009, frac: 31.0 / 365},
		{name: "yearly leap", at: date(2012, time.March, 1, 0, 0), gran: GranularityYearly, period: 2011, frac: 60.0 / 366},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := g.Position(tc.at, tc.gran)
			require.Equal(t, tc.period, p.Period)
			require.InDelta(t, tc.frac, p.Frac, 1e-12)
			require.InDelta(t, float64(tc.period)+tc.frac, Offset(g, tc.at, tc.gran), 1e-6)
			require.Equal(t, tc.period, IntOffset(g, tc.at, tc.gran))
			require.InDelta(t, tc.frac, FracOffset(g, tc.at, tc.gran), 1e-12)
		})
	}
}

func TestGregorian_Deltas(t *testing.T) {
	g := Gregorian{}

	tests := []struct {
		name  string
		start time.Time
		at    time.Time
		gran  Granularity
		want  float64
	}{
		{name: "daily", start: date(2009, time.October, 1, 0, 0), at: date(2009, time.October, 2, 12, 0), gran: GranularityDaily, want: 1.5},
		{name: "monthly", start: date(2009, time.October, 1, 0, 0), at: date(2009, time.November, 2, 12, 0), gran: GranularityMonthly, want: 1 + 36.0/(30*24)},
		{name: "yearly", start: date(2009, time.January, 1, 0, 0), at: date(2010, time.February, 2, 12, 0), gran: GranularityYearly, want: (365 + 31 + 36.0/24) / 365},
		{name: "weekly", start: date(2009, time.October, 5, 0, 0), at: date(2009, time.October, 14, 12, 0), gran: GranularityWeekly, want: (7 + 2 + 12.0/24) / 7},
		{name: "weekly exact", start: date(2009, time.October, 5, 0, 0), at: date(2009, time.October, 19, 0, 0), gran: GranularityWeekly, want: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Position(tc.at, tc.gran).Sub(g.Position(tc.start, tc.gran))
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestGregorian_PositionPanicsOnConstant(t *testing.T) {
	require.Panics(t, func() {
		Gregorian{}.Position(date(2009, time.October, 1, 0, 0), GranularityConstant)
	})
}

func TestGregorian_Helpers(t *testing.T) {
	g := Gregorian{}
	at := time.Date(2012, time.February, 14, 17, 45, 12, 0, time.UTC)

	require.Equal(t, date(2012, time.February, 14, 0, 0), g.StartOfDay(at))
	require.Equal(t, date(2012, time.February, 1, 0, 0), g.StartOfMonth(at))
	require.Equal(t, date(2012, time.March, 1, 0, 0), g.NextMonthStart(at))
	require.Equal(t, date(2013, time.January, 1, 0, 0), g.NextMonthStart(date(2012, time.December, 31, 0, 0)))
	require.Equal(t, date(2012, time.January, 1, 0, 0), g.StartOfYear(at))
	require.Equal(t, 29, g.DaysInMonth(2012, time.February))
	require.Equal(t, 28, g.DaysInMonth(1900, time.February))
	require.Equal(t, 366, g.DaysInYear(2000))
	require.Equal(t, 365, g.DaysInYear(2009))
}

func TestNormalized(t *testing.T) {
	n := Normalized{}

	require.Equal(t, int64(0), n.Ordinal(date(1, time.January, 1, 0, 0)))
	require.Equal(t, int64(365), n.Ordinal(date(2, time.January, 1, 0, 0)))
	require.Equal(t, n.Ordinal(date(2012, time.February, 28, 0, 0)), n.Ordinal(date(2012, time.February, 29, 0, 0)))
	require.Equal(t, 365, n.DaysInYear(2012))
	require.Equal(t, 28, n.DaysInMonth(2012, time.February))

	require.Equal(t, 0, n.DayOfWeek(date(2009, time.January, 1, 0, 0)))
	require.Equal(t, 0, n.DayOfWeek(date(2012, time.January, 1, 0, 0)))
	require.Equal(t, 59%7, n.DayOfWeek(date(2012, time.March, 1, 0, 0)))

	p := n.Position(date(2012, time.March, 1, 0, 0), GranularityYearly)
	require.Equal(t, int64(2011), p.Period)
	require.InDelta(t, 59.0/365, p.Frac, 1e-12)

	leap := n.Position(date(2012, time.February, 29, 12, 0), GranularityMonthly)
	require.Equal(t, int64(2011*12+1), leap.Period)
	require.InDelta(t, 27.5/28, leap.Frac, 1e-12)

	// A year is exactly 365 daily periods in every year.
	require.InDelta(t, 365,
		n.Position(date(2013, time.January, 1, 0, 0), GranularityDaily).Sub(n.Position(date(2012, time.January, 1, 0, 0), GranularityDaily)),
		1e-12)
}

func TestGas(t *testing.T) {
	g := Gas{}

	require.Equal(t, Gregorian{}.Ordinal(date(2009, time.September, 30, 0, 0)), g.Ordinal(date(2009, time.October, 1, 5, 59)))
	require.Equal(t, Gregorian{}.Ordinal(date(2009, time.October, 1, 0, 0)), g.Ordinal(date(2009, time.October, 1, 6, 0)))
	require.Equal(t, int64(0), g.Seconds(date(2009, time.October, 1, 6, 0)))
	require.Equal(t, int64(23*3600), g.Seconds(date(2009, time.October, 2, 5, 0)))

	daily := g.Position(date(2009, time.October, 2, 18, 0), GranularityDaily)
	require.Equal(t, int64(733682), daily.Period)
	require.InDelta(t, 0.5, daily.Frac, 1e-12)

	monthly := g.Position(date(2009, time.October, 1, 6, 0), GranularityMonthly)
	require.Equal(t, int64(2008*12), monthly.Period)
	require.InDelta(t, 0, monthly.Frac, 1e-12)

	yearStart := g.Position(date(2009, time.October, 1, 6, 0), GranularityYearly)
	require.Equal(t, int64(2008), yearStart.Period)
	require.InDelta(t, 0, yearStart.Frac, 1e-12)

	yearEnd := g.Position(date(2009, time.October, 1, 5, 0), GranularityYearly)
	require.Equal(t, int64(2007), yearEnd.Period)
	require.InDelta(t, (364+23.0/24)/365, yearEnd.Frac, 1e-12)

	require.Equal(t, 366, g.DaysInYear(2011))
	require.Equal(t, 365, g.DaysInYear(2009))

	at := date(2010, time.March, 2, 3, 0)
	require.Equal(t, date(2010, time.March, 1, 6, 0), g.StartOfDay(at))
	require.Equal(t, date(2010, time.February, 1, 6, 0), g.StartOfMonth(date(2010, time.March, 1, 5, 0)))
	require.Equal(t, date(2010, time.April, 1, 6, 0), g.NextMonthStart(at))
	require.Equal(t, date(2009, time.October, 1, 6, 0), g.StartOfYear(at))
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		want  Name
	}{
		{input: "", want: NameGregorian},
		{input: "Gregorian", want: NameGregorian},
		{input: "normalized", want: NameNormalized},
		{input: " gas ", want: NameGas},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			c, err := Lookup(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, c.Name())
		})
	}

	_, err := Lookup("julian")
	require.Error(t, err)
	require.True(t, errors.Is(err, tserr.ErrMalformedInput))
}

func TestWallClock(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	in := time.Date(2009, time.October, 1, 6, 30, 15, 999, paris)

	got := WallClock(in)
	require.Equal(t, time.Date(2009, time.October, 1, 6, 30, 15, 0, time.UTC), got)
	require.Equal(t, Gregorian{}.Position(in, GranularityHourly), Gregorian{}.Position(got, GranularityHourly))
}
