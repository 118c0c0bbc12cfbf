// Package aggregation reduces the samples of a series over one or more
// intervals into a single value, weighting the boundary samples by the part
// of their period the interval actually covers.
package aggregation

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/aevon-lab/calseries/internal/core/calendar"
	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// Indexed is the view of a series the aggregator works on. Both periodic and
// non-periodic series implement it.
type Indexed interface {
	Len() int
	Value(i int) float64
	Granularity() calendar.Granularity
	StartDate() time.Time

	// Window returns the sample range covered by [start, end).
	Window(start, end time.Time) (Window, error)
	// FracOffset returns how far t lies into the sample period containing it.
	FracOffset(t time.Time) float64
	// IndexAt returns the index of the sample whose period contains t.
	IndexAt(t time.Time) (int, error)
	// DateAt returns the start date of sample i.
	DateAt(i int) time.Time
	// DurationDays returns the length of sample i's period in days.
	DurationDays(i int) float64
}

// Reducer defines the semantics of an aggregation mode.
// To add a new mode: implement this interface and register it in Modes.
type Reducer interface {
	// Check rejects requests the mode cannot answer before any sample lookup.
	Check(intervals int, useLastInterval bool) error

	// Reduce combines the windows resolved for each interval.
	Reduce(s Indexed, intervals []Interval, windows []Window) (Result, error)
}

// Modes is the registry of all supported aggregation modes.
var Modes = map[Mode]Reducer{
	ModeSum:             weightedReducer{},
	ModeAverage:         weightedReducer{average: true},
	ModeWeightedAverage: weightedReducer{average: true, byDuration: true},
	ModeLast:            lastReducer{},
	ModeSumRealized:     flatReducer{reduce: floats.Sum},
	ModeMax:             flatReducer{reduce: floats.Max},
}

// ValidMode reports whether m is a registered aggregation mode.
func ValidMode(m Mode) bool {
	_, ok := Modes[m]
	return ok
}

// Aggregate reduces s over intervals with the given mode.
//
// Constant series short-circuit: every mode except sum returns the single
// value, and sum fails since a constant has no extent to sum over. For the
// last mode useLastInterval allows several intervals and reads the last one.
func Aggregate(s Indexed, intervals []Interval, mode Mode, useLastInterval bool) (Result, error) {
	r, ok := Modes[mode]
	if !ok {
		return Result{}, tserr.InvalidModef("unknown aggregation mode %q", mode)
	}
	if len(intervals) == 0 {
		return Result{}, tserr.Malformedf("at least one interval is required")
	}

	if s.Granularity().IsConstant() {
		if mode == ModeSum {
			return Result{}, tserr.InvalidModef("sum can't be computed on a constant series")
		}
		return Result{Date: intervals[0].Start, Value: s.Value(0)}, nil
	}

	if err := r.Check(len(intervals), useLastInterval); err != nil {
		return Result{}, err
	}

	windows := make([]Window, len(intervals))
	for i, iv := range intervals {
		if !iv.End.IsZero() && iv.End.Before(s.StartDate()) {
			return Result{}, tserr.OutOfRangef("interval end %s is before the series start %s",
				iv.End.Format(time.RFC3339), s.StartDate().Format(time.RFC3339))
		}
		w, err := s.Window(iv.Start, iv.End)
		if err != nil {
			return Result{}, err
		}
		if w.Len() == 0 {
			return Result{}, tserr.OutOfRangef("interval [%s, %s) covers no sample",
				iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
		}
		windows[i] = w
	}

	return r.Reduce(s, intervals, windows)
}

// weightedReducer sums samples weighted by the covered fraction of their
// period, optionally scaled by the period length and normalized into a mean.
type weightedReducer struct {
	average    bool
	byDuration bool
}

func (weightedReducer) Check(int, bool) error { return nil }

func (r weightedReducer) Reduce(s Indexed, intervals []Interval, windows []Window) (Result, error) {
	var total, weightSum float64
	for i, w := range windows {
		values, weights := weighWindow(s, intervals[i], w)
		if r.byDuration {
			for k := range weights {
				weights[k] *= s.DurationDays(w.Start + k)
			}
		}
		total += floats.Dot(values, weights)
		weightSum += floats.Sum(weights)
	}

	if !r.average {
		return Result{Date: intervals[0].Start, Value: total}, nil
	}
	if weightSum == 0 {
		return Result{}, tserr.OutOfRangef("intervals carry no weight")
	}
	return Result{Date: intervals[0].Start, Value: total / weightSum}, nil
}

// weighWindow returns the window's samples and their coverage weights. Every
// sample starts at weight 1; the first loses the part of its period before
// the interval start, the last the part after the interval end.
func weighWindow(s Indexed, iv Interval, w Window) (values, weights []float64) {
	n := w.Len()
	values = make([]float64, n)
	weights = make([]float64, n)
	for k := 0; k < n; k++ {
		values[k] = s.Value(w.Start + k)
		weights[k] = 1
	}

	if !w.StartClamped && !iv.Start.IsZero() {
		weights[0] -= s.FracOffset(iv.Start)
	}
	if !iv.End.IsZero() {
		if endFrac := s.FracOffset(iv.End); endFrac != 0 {
			weights[n-1] -= 1 - endFrac
		}
	}
	return values, weights
}

// lastReducer reads the sample in effect just before the interval end.
type lastReducer struct{}

func (lastReducer) Check(intervals int, useLastInterval bool) error {
	if intervals != 1 && !useLastInterval {
		return tserr.InvalidModef("last needs exactly one interval, got %d", intervals)
	}
	return nil
}

func (lastReducer) Reduce(s Indexed, intervals []Interval, _ []Window) (Result, error) {
	iv := intervals[len(intervals)-1]
	if iv.End.IsZero() {
		i := s.Len() - 1
		return Result{Date: s.DateAt(i), Value: s.Value(i)}, nil
	}
	i, err := s.IndexAt(iv.End.Add(-time.Second))
	if err != nil {
		return Result{}, err
	}
	return Result{Date: s.DateAt(i), Value: s.Value(i)}, nil
}

// flatReducer applies an unweighted reduction to every covered sample.
type flatReducer struct {
	reduce func([]float64) float64
}

func (flatReducer) Check(int, bool) error { return nil }

func (r flatReducer) Reduce(s Indexed, intervals []Interval, windows []Window) (Result, error) {
	var values []float64
	for _, w := range windows {
		for i := w.Start; i < w.Stop; i++ {
			values = append(values, s.Value(i))
		}
	}
	return Result{Date: intervals[0].Start, Value: r.reduce(values)}, nil
}
