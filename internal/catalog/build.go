package catalog

import (
	"time"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	"github.com/aevon-lab/calseries/internal/core/aggregation"
	"github.com/aevon-lab/calseries/internal/core/calendar"
	tserr "github.com/aevon-lab/calseries/internal/core/errors"
	"github.com/aevon-lab/calseries/internal/core/timeseries"
)

// Series is the query surface shared by periodic and non-periodic series.
type Series interface {
	aggregation.Indexed

	DataType() timeseries.DataType
	Unit() string
	Calendar() calendar.Calendar
	EndDate() time.Time
	Values() []float64

	ValueAt(t time.Time) (float64, error)
	ValuesIn(start, end time.Time) ([]float64, error)
	NextDate(t time.Time) (time.Time, error)
	PointsBetween(start, end time.Time) []timeseries.Point
	TimestampedArray() []timeseries.Point
	CompressedRunList() []timeseries.Point
	Summary() timeseries.Summary
	Aggregate(intervals []aggregation.Interval, mode aggregation.Mode, useLastInterval bool) (aggregation.Result, error)
}

var (
	_ Series = (*timeseries.Series)(nil)
	_ Series = (*timeseries.NonPeriodic)(nil)
)

// Build turns a stored definition into an immutable in-memory series.
func Build(def *v1.Series) (Series, error) {
	if err := def.Validate(); err != nil {
		return nil, tserr.Malformedf("%s", err)
	}

	gran, err := calendar.ParseGranularity(def.Granularity)
	if err != nil {
		return nil, err
	}
	cal, err := calendar.Lookup(def.Calendar)
	if err != nil {
		return nil, err
	}
	dt, err := timeseries.ParseDataType(def.DataType)
	if err != nil {
		return nil, err
	}

	meta := timeseries.Metadata{
		DataType:    dt,
		Unit:        def.Unit,
		Granularity: gran,
		Calendar:    cal,
	}

	if def.Kind == v1.KindNonPeriodic {
		return timeseries.NewNonPeriodic(meta, def.Timestamps, def.Values)
	}
	return timeseries.New(meta, def.StartDate, def.Values)
}

// normalizeDates rewrites every date of def to its wall clock, the form in
// which dates are stored.
func normalizeDates(def *v1.Series) {
	if !def.StartDate.IsZero() {
		def.StartDate = calendar.WallClock(def.StartDate)
	}
	for i, ts := range def.Timestamps {
		def.Timestamps[i] = calendar.WallClock(ts)
	}
	if def.Kind == v1.KindNonPeriodic && len(def.Timestamps) > 0 {
		def.StartDate = def.Timestamps[0]
	}
}
