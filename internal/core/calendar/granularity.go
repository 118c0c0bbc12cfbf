package calendar

import (
	"fmt"
	"strings"
	"time"

	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// Granularity is the nominal sampling period of a series.
type Granularity string

// Supported granularities.
const (
	Granularity15Min    Granularity = "15min"
	GranularityHourly   Granularity = "hourly"
	GranularityDaily    Granularity = "daily"
	GranularityWeekly   Granularity = "weekly"
	GranularityMonthly  Granularity = "monthly"
	GranularityYearly   Granularity = "yearly"
	GranularityConstant Granularity = "constant"
)

// fixedDurations holds the granularities whose period never changes length.
// Monthly and yearly periods depend on the month or year they fall in.
var fixedDurations = map[Granularity]time.Duration{
	Granularity15Min:  15 * time.Minute,
	GranularityHourly: time.Hour,
	GranularityDaily:  24 * time.Hour,
	GranularityWeekly: 7 * 24 * time.Hour,
}

// Granularities lists every supported granularity, shortest period first.
var Granularities = []Granularity{
	Granularity15Min,
	GranularityHourly,
	GranularityDaily,
	GranularityWeekly,
	GranularityMonthly,
	GranularityYearly,
	GranularityConstant,
}

// ParseGranularity resolves a granularity name. The legacy spelling "15 min"
// is accepted as an alias of "15min".
func ParseGranularity(s string) (Granularity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "15 min" {
		name = string(Granularity15Min)
	}
	g := Granularity(name)
	if !g.Valid() {
		return "", tserr.Malformedf("unknown granularity %q", s)
	}
	return g, nil
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case Granularity15Min, GranularityHourly, GranularityDaily, GranularityWeekly,
		GranularityMonthly, GranularityYearly, GranularityConstant:
		return true
	}
	return false
}

// IsFixed reports whether every period of g has the same duration.
func (g Granularity) IsFixed() bool {
	_, ok := fixedDurations[g]
	return ok
}

// IsConstant reports whether g describes a single value valid for all time.
func (g Granularity) IsConstant() bool {
	return g == GranularityConstant
}

// Duration returns the period length of a fixed granularity.
func (g Granularity) Duration() (time.Duration, bool) {
	d, ok := fixedDurations[g]
	return d, ok
}

// Next returns the start of the period following the one starting at t.
//
// Monthly and yearly steps keep the day of month when it exists in the target
// month and otherwise fall back to that month's last day (Jan 31 -> Feb 28 or
// Feb 29). The clamp only ever moves the day down. Calling Next on the
// constant granularity is a programming error.
func (g Granularity) Next(t time.Time) time.Time {
	if d, ok := fixedDurations[g]; ok {
		return t.Add(d)
	}
	switch g {
	case GranularityMonthly:
		return addMonthsClamped(t, 1)
	case GranularityYearly:
		return addMonthsClamped(t, 12)
	}
	panic(fmt.Sprintf("calendar: granularity %q has no next date", g))
}

func (g Granularity) String() string {
	return string(g)
}

// addMonthsClamped moves t forward by n calendar months without overflowing
// into the month after the target, keeping the wall clock and location.
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	total := int(month) - 1 + n
	year += total / 12
	month = time.Month(total%12 + 1)

	if last := gregorianDaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, hour, min, sec, t.Nanosecond(), t.Location())
}
