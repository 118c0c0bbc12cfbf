// Package timeseries holds the immutable series types and their calendar
// aware indices. A Series is dated implicitly by stepping its granularity
// from a start date; a NonPeriodic series carries explicit timestamps.
// Both are safe for concurrent readers once constructed.
package timeseries

import (
	"math"
	"sync"
	"time"

	"github.com/aevon-lab/calseries/internal/core/aggregation"
	"github.com/aevon-lab/calseries/internal/core/calendar"
	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// Metadata is the immutable description shared by both series kinds.
type Metadata struct {
	DataType    DataType
	Unit        string
	Granularity calendar.Granularity
	// Calendar defaults to Gregorian when nil.
	Calendar calendar.Calendar
}

func (m Metadata) normalized() (Metadata, error) {
	dt, err := ParseDataType(string(m.DataType))
	if err != nil {
		return m, err
	}
	m.DataType = dt
	if !m.Granularity.Valid() {
		return m, tserr.Malformedf("unknown granularity %q", m.Granularity)
	}
	if m.Calendar == nil {
		m.Calendar = calendar.Gregorian{}
	}
	return m, nil
}

// Series is a periodic time series.
type Series struct {
	meta     Metadata
	start    time.Time
	values   []float64
	startPos calendar.Position
	points   func() []Point
}

var _ aggregation.Indexed = (*Series)(nil)

// New builds a periodic series. Values are copied and coerced to the data
// type; a constant series takes exactly one value.
func New(meta Metadata, start time.Time, values []float64) (*Series, error) {
	meta, err := meta.normalized()
	if err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, tserr.Malformedf("start date is required")
	}
	if len(values) == 0 {
		return nil, tserr.Malformedf("a series needs at least one sample")
	}
	if meta.Granularity.IsConstant() && len(values) != 1 {
		return nil, tserr.Malformedf("a constant series takes exactly one sample, got %d", len(values))
	}

	coerced, err := coerce(meta.DataType, values)
	if err != nil {
		return nil, err
	}

	s := &Series{meta: meta, start: start, values: coerced}
	if !meta.Granularity.IsConstant() {
		s.startPos = meta.Calendar.Position(start, meta.Granularity)
	}
	s.points = sync.OnceValue(s.buildPoints)
	return s, nil
}

func coerce(dt DataType, values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, tserr.Malformedf("sample %d is not finite", i)
		}
		out[i] = dt.Coerce(v)
	}
	return out, nil
}

func (s *Series) DataType() DataType                { return s.meta.DataType }
func (s *Series) Unit() string                      { return s.meta.Unit }
func (s *Series) Granularity() calendar.Granularity { return s.meta.Granularity }
func (s *Series) Calendar() calendar.Calendar       { return s.meta.Calendar }
func (s *Series) StartDate() time.Time              { return s.start }
func (s *Series) Len() int                          { return len(s.values) }
func (s *Series) Value(i int) float64               { return s.values[i] }

// Values returns a copy of the samples.
func (s *Series) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// StartOffset returns the calendar position of the start date.
func (s *Series) StartOffset() calendar.Position {
	return s.startPos
}

// RelativeOffset returns the fractional sample position of t, 0 being the
// start of the first sample.
func (s *Series) RelativeOffset(t time.Time) float64 {
	return s.meta.Calendar.Position(t, s.meta.Granularity).Sub(s.startPos)
}

// ValueAt returns the sample whose period contains t.
func (s *Series) ValueAt(t time.Time) (float64, error) {
	if s.meta.Granularity.IsConstant() {
		return s.values[0], nil
	}
	i, err := s.IndexAt(t)
	if err != nil {
		return 0, err
	}
	return s.values[i], nil
}

// IndexAt returns the index of the sample whose period contains t.
func (s *Series) IndexAt(t time.Time) (int, error) {
	if s.meta.Granularity.IsConstant() {
		return 0, nil
	}
	end := s.EndDate()
	if t.Before(s.start) || !t.Before(end) {
		return 0, tserr.OutOfRangef("%s is outside the series [%s, %s)",
			t.Format(time.RFC3339), s.start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return s.clampIndex(int(math.Floor(s.RelativeOffset(t)))), nil
}

// clampIndex keeps an index computed for a date inside [start, EndDate) on
// the array. A series starting late in a variable-length period can see the
// calendar fraction of its last days run past the final index.
func (s *Series) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.values) {
		return len(s.values) - 1
	}
	return i
}

// Window resolves [start, end) to sample indices. The start index is clamped
// to the first sample; a start at or after EndDate or an end after EndDate
// fails. Zero bounds are open.
func (s *Series) Window(start, end time.Time) (aggregation.Window, error) {
	w := aggregation.Window{Start: 0, Stop: len(s.values)}
	if s.meta.Granularity.IsConstant() {
		return w, nil
	}
	seriesEnd := s.EndDate()

	if !start.IsZero() {
		if !start.Before(seriesEnd) {
			return w, tserr.OutOfRangef("start %s is past the last sample", start.Format(time.RFC3339))
		}
		i := int(math.Floor(s.RelativeOffset(start)))
		if i < 0 {
			w.StartClamped = true
		}
		w.Start = s.clampIndex(i)
	}
	if !end.IsZero() {
		if end.After(seriesEnd) {
			return w, tserr.OutOfRangef("end %s is past the series end %s",
				end.Format(time.RFC3339), seriesEnd.Format(time.RFC3339))
		}
		j := int(math.Ceil(s.RelativeOffset(end)))
		if j < 0 {
			j = 0
		}
		if j > len(s.values) {
			j = len(s.values)
		}
		w.Stop = j
	}
	return w, nil
}

// ValuesIn returns a copy of the samples covering [start, end).
func (s *Series) ValuesIn(start, end time.Time) ([]float64, error) {
	w, err := s.Window(start, end)
	if err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return []float64{}, nil
	}
	return append([]float64(nil), s.values[w.Start:w.Stop]...), nil
}

// FracOffset returns the elapsed fraction of the calendar period containing t.
func (s *Series) FracOffset(t time.Time) float64 {
	if s.meta.Granularity.IsConstant() {
		return 0
	}
	return s.meta.Calendar.Position(t, s.meta.Granularity).Frac
}

// DateAt returns the start date of sample i.
func (s *Series) DateAt(i int) time.Time {
	return s.points()[i].Date
}

// DurationDays returns the length of sample i's period in days.
func (s *Series) DurationDays(i int) float64 {
	if s.meta.Granularity.IsConstant() {
		return 0
	}
	if d, ok := s.meta.Granularity.Duration(); ok {
		return d.Hours() / 24
	}
	from := s.DateAt(i)
	return s.meta.Granularity.Next(from).Sub(from).Hours() / 24
}

// NextDate returns the date one period after t.
func (s *Series) NextDate(t time.Time) (time.Time, error) {
	if s.meta.Granularity.IsConstant() {
		return time.Time{}, tserr.InvalidModef("a constant series has no next date")
	}
	return s.meta.Granularity.Next(t), nil
}

// EndDate returns the end of the last sample's period. A constant series is
// valid for all time and returns the zero time.
func (s *Series) EndDate() time.Time {
	if s.meta.Granularity.IsConstant() {
		return time.Time{}
	}
	if d, ok := s.meta.Granularity.Duration(); ok {
		return s.start.Add(time.Duration(len(s.values)) * d)
	}
	return s.meta.Granularity.Next(s.DateAt(len(s.values) - 1))
}

// TimestampedArray returns every sample paired with its date.
func (s *Series) TimestampedArray() []Point {
	return append([]Point(nil), s.points()...)
}

// PointsBetween returns the dated samples whose date lies in [start, end).
// A constant series holds for all time and yields its single value dated at
// start, or at its start date when start is zero.
func (s *Series) PointsBetween(start, end time.Time) []Point {
	if s.meta.Granularity.IsConstant() {
		date := start
		if date.IsZero() {
			date = s.start
		}
		return []Point{{Date: date, Value: s.values[0]}}
	}
	return pointsBetween(s.points(), start, end)
}

// CompressedRunList collapses runs of equal values into transition points.
// A constant series has a single point.
func (s *Series) CompressedRunList() []Point {
	if s.meta.Granularity.IsConstant() {
		return s.TimestampedArray()
	}
	return runList(s.points(), s.EndDate())
}

// Summary returns descriptive statistics over all samples.
func (s *Series) Summary() Summary {
	return summarize(s.values)
}

// Aggregate reduces the series over intervals.
func (s *Series) Aggregate(intervals []aggregation.Interval, mode aggregation.Mode, useLastInterval bool) (aggregation.Result, error) {
	return aggregation.Aggregate(s, intervals, mode, useLastInterval)
}

func (s *Series) buildPoints() []Point {
	points := make([]Point, len(s.values))
	date := s.start
	for i, v := range s.values {
		points[i] = Point{Date: date, Value: v}
		if i+1 < len(s.values) {
			date = s.meta.Granularity.Next(date)
		}
	}
	return points
}
