package timeseries

import (
	"sort"
	"sync"
	"time"

	"github.com/aevon-lab/calseries/internal/core/aggregation"
	"github.com/aevon-lab/calseries/internal/core/calendar"
	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// NonPeriodic is a series whose samples carry explicit, strictly ascending
// timestamps. Each sample holds until the next timestamp; the last one holds
// for as long as the gap before it.
type NonPeriodic struct {
	meta       Metadata
	timestamps []time.Time
	values     []float64
	points     func() []Point
}

var _ aggregation.Indexed = (*NonPeriodic)(nil)

// NewNonPeriodic builds a non-periodic series. The granularity is kept as a
// formatting hint only.
func NewNonPeriodic(meta Metadata, timestamps []time.Time, values []float64) (*NonPeriodic, error) {
	meta, err := meta.normalized()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, tserr.Malformedf("a series needs at least one sample")
	}
	if meta.Granularity.IsConstant() && len(values) != 1 {
		return nil, tserr.Malformedf("a constant series takes exactly one sample, got %d", len(values))
	}
	if len(timestamps) != len(values) {
		return nil, tserr.Malformedf("%d timestamps for %d samples", len(timestamps), len(values))
	}
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, tserr.Malformedf("timestamp %d (%s) does not follow %s",
				i, timestamps[i].Format(time.RFC3339), timestamps[i-1].Format(time.RFC3339))
		}
	}

	coerced, err := coerce(meta.DataType, values)
	if err != nil {
		return nil, err
	}

	s := &NonPeriodic{
		meta:       meta,
		timestamps: append([]time.Time(nil), timestamps...),
		values:     coerced,
	}
	s.points = sync.OnceValue(s.buildPoints)
	return s, nil
}

func (s *NonPeriodic) DataType() DataType          { return s.meta.DataType }
func (s *NonPeriodic) Unit() string                { return s.meta.Unit }
func (s *NonPeriodic) Calendar() calendar.Calendar { return s.meta.Calendar }
func (s *NonPeriodic) StartDate() time.Time        { return s.timestamps[0] }
func (s *NonPeriodic) Len() int                    { return len(s.values) }
func (s *NonPeriodic) Value(i int) float64         { return s.values[i] }
func (s *NonPeriodic) DateAt(i int) time.Time      { return s.timestamps[i] }

// Granularity returns the granularity hint the series was built with.
func (s *NonPeriodic) Granularity() calendar.Granularity {
	return s.meta.Granularity
}

// Values returns a copy of the samples.
func (s *NonPeriodic) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Timestamps returns a copy of the sample timestamps.
func (s *NonPeriodic) Timestamps() []time.Time {
	return append([]time.Time(nil), s.timestamps...)
}

// relIndex returns the index of t in the timestamps. An exact match returns
// its own index; otherwise offset is added to the leftmost insertion point.
func (s *NonPeriodic) relIndex(t time.Time, offset int) int {
	i := sort.Search(len(s.timestamps), func(k int) bool {
		return !s.timestamps[k].Before(t)
	})
	if i < len(s.timestamps) && s.timestamps[i].Equal(t) {
		return i
	}
	i += offset
	if i < 0 {
		return 0
	}
	return i
}

// lastGap returns the span the last sample holds for.
func (s *NonPeriodic) lastGap() time.Duration {
	n := len(s.timestamps)
	if n >= 2 {
		return s.timestamps[n-1].Sub(s.timestamps[n-2])
	}
	if g := s.meta.Granularity; !g.IsConstant() {
		return g.Next(s.timestamps[0]).Sub(s.timestamps[0])
	}
	return 0
}

// EndDate returns the end of the last sample's span: the last timestamp plus
// the gap before it. A single sample spans one granularity period.
func (s *NonPeriodic) EndDate() time.Time {
	return s.timestamps[len(s.timestamps)-1].Add(s.lastGap())
}

// IndexAt returns the index of the most recent sample at or before t.
func (s *NonPeriodic) IndexAt(t time.Time) (int, error) {
	if t.Before(s.timestamps[0]) || !t.Before(s.EndDate()) {
		return 0, tserr.OutOfRangef("%s is outside the series [%s, %s)",
			t.Format(time.RFC3339), s.timestamps[0].Format(time.RFC3339), s.EndDate().Format(time.RFC3339))
	}
	return s.relIndex(t, -1), nil
}

// ValueAt returns the most recent sample at or before t.
func (s *NonPeriodic) ValueAt(t time.Time) (float64, error) {
	if s.meta.Granularity.IsConstant() {
		return s.values[0], nil
	}
	i, err := s.IndexAt(t)
	if err != nil {
		return 0, err
	}
	return s.values[i], nil
}

// Window resolves [start, end) to sample indices: the start takes the sample
// covering it, the end excludes the sample starting at or after it.
func (s *NonPeriodic) Window(start, end time.Time) (aggregation.Window, error) {
	w := aggregation.Window{Start: 0, Stop: len(s.values)}
	if !start.IsZero() {
		if !start.Before(s.EndDate()) {
			return w, tserr.OutOfRangef("start %s is past the series end %s",
				start.Format(time.RFC3339), s.EndDate().Format(time.RFC3339))
		}
		w.StartClamped = start.Before(s.timestamps[0])
		w.Start = s.relIndex(start, -1)
	}
	if !end.IsZero() {
		if end.After(s.EndDate()) {
			return w, tserr.OutOfRangef("end %s is past the series end %s",
				end.Format(time.RFC3339), s.EndDate().Format(time.RFC3339))
		}
		w.Stop = s.relIndex(end, 0)
	}
	return w, nil
}

// ValuesIn returns a copy of the samples covering [start, end).
func (s *NonPeriodic) ValuesIn(start, end time.Time) ([]float64, error) {
	w, err := s.Window(start, end)
	if err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return []float64{}, nil
	}
	return append([]float64(nil), s.values[w.Start:w.Stop]...), nil
}

// FracOffset returns the elapsed fraction of the span between the sample at
// or before t and the next one. Beyond the last sample the previous gap is
// used, and the fraction saturates at 1.
func (s *NonPeriodic) FracOffset(t time.Time) float64 {
	i := s.relIndex(t, -1)
	delta := t.Sub(s.timestamps[i]).Seconds()
	if delta <= 0 {
		return 0
	}

	var total float64
	if i+1 < len(s.timestamps) {
		total = s.timestamps[i+1].Sub(s.timestamps[i]).Seconds()
	} else {
		total = s.lastGap().Seconds()
	}
	if total < delta {
		total = delta
	}
	return delta / total
}

// DurationDays returns the span of sample i in days.
func (s *NonPeriodic) DurationDays(i int) float64 {
	if i+1 < len(s.timestamps) {
		return s.timestamps[i+1].Sub(s.timestamps[i]).Hours() / 24
	}
	return s.lastGap().Hours() / 24
}

// NextDate returns the first timestamp strictly after t.
func (s *NonPeriodic) NextDate(t time.Time) (time.Time, error) {
	i := sort.Search(len(s.timestamps), func(k int) bool {
		return s.timestamps[k].After(t)
	})
	if i == len(s.timestamps) {
		return time.Time{}, tserr.OutOfRangef("no sample after %s", t.Format(time.RFC3339))
	}
	return s.timestamps[i], nil
}

// TimestampedArray returns every sample paired with its timestamp.
func (s *NonPeriodic) TimestampedArray() []Point {
	return append([]Point(nil), s.points()...)
}

// PointsBetween returns the samples whose timestamp lies in [start, end).
func (s *NonPeriodic) PointsBetween(start, end time.Time) []Point {
	return pointsBetween(s.points(), start, end)
}

// CompressedRunList collapses runs of equal values into transition points.
func (s *NonPeriodic) CompressedRunList() []Point {
	return runList(s.points(), s.EndDate())
}

// Summary returns descriptive statistics over all samples.
func (s *NonPeriodic) Summary() Summary {
	return summarize(s.values)
}

// Aggregate reduces the series over intervals.
func (s *NonPeriodic) Aggregate(intervals []aggregation.Interval, mode aggregation.Mode, useLastInterval bool) (aggregation.Result, error) {
	return aggregation.Aggregate(s, intervals, mode, useLastInterval)
}

func (s *NonPeriodic) buildPoints() []Point {
	points := make([]Point, len(s.values))
	for i, v := range s.values {
		points[i] = Point{Date: s.timestamps[i], Value: v}
	}
	return points
}
