package aggregation

import (
	"strings"
	"time"

	"github.com/aevon-lab/calseries/internal/core/calendar"
	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// timeLayouts are tried in order by ParseTime. Layouts without a zone are
// read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses a date in any of the accepted layouts and returns its wall
// clock. A zone offset in the input is dropped, not applied.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, tserr.Malformedf("date must not be empty")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.WallClock(t), nil
		}
	}
	return time.Time{}, tserr.Malformedf("invalid date %q", s)
}

// ParseInterval parses "start/end". Either side may be left empty to keep
// that side unbounded, e.g. "2009-10-01/" runs to the end of the series.
func ParseInterval(s string) (Interval, error) {
	start, end, ok := strings.Cut(s, "/")
	if !ok {
		return Interval{}, tserr.Malformedf("interval %q must have the form start/end", s)
	}

	var iv Interval
	var err error
	if strings.TrimSpace(start) != "" {
		if iv.Start, err = ParseTime(start); err != nil {
			return Interval{}, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if iv.End, err = ParseTime(end); err != nil {
			return Interval{}, err
		}
	}
	if !iv.Start.IsZero() && !iv.End.IsZero() && iv.End.Before(iv.Start) {
		return Interval{}, tserr.Malformedf("interval %q ends before it starts", s)
	}
	return iv, nil
}

// String renders the interval in the form ParseInterval accepts.
func (iv Interval) String() string {
	var b strings.Builder
	if !iv.Start.IsZero() {
		b.WriteString(iv.Start.Format(time.RFC3339))
	}
	b.WriteByte('/')
	if !iv.End.IsZero() {
		b.WriteString(iv.End.Format(time.RFC3339))
	}
	return b.String()
}
