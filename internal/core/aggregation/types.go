package aggregation

import (
	"strings"
	"time"

	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// Mode names an aggregation operation.
type Mode string

// Supported aggregation modes.
const (
	ModeSum             Mode = "sum"
	ModeAverage         Mode = "average"
	ModeWeightedAverage Mode = "weighted_average"
	ModeLast            Mode = "last"
	ModeSumRealized     Mode = "sum_realized"
	ModeMax             Mode = "max"
)

// ParseMode resolves a mode name. Unknown names fail with ErrInvalidMode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !ValidMode(m) {
		return "", tserr.InvalidModef("unknown aggregation mode %q", s)
	}
	return m, nil
}

// Interval is a half-open time range [Start, End). A zero Start or End leaves
// that side of the interval unbounded.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Window is the half-open range of sample indices [Start, Stop) covered by
// an interval.
type Window struct {
	Start int
	Stop  int

	// StartClamped is set when the interval starts before the first sample,
	// in which case the first sample counts with its full weight.
	StartClamped bool
}

// Len returns the number of samples in the window.
func (w Window) Len() int {
	if w.Stop <= w.Start {
		return 0
	}
	return w.Stop - w.Start
}

// Result is the outcome of an aggregation: a single value paired with a
// representative date.
type Result struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}
