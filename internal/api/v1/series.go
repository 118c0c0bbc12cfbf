package v1

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// Kind distinguishes implicitly dated series from explicitly timestamped ones.
type Kind string

const (
	KindPeriodic    Kind = "periodic"
	KindNonPeriodic Kind = "nonperiodic"
)

// MinDate and MaxDate bound every date a series may carry: the range of
// nanoseconds since the Unix epoch held in an int64.
var (
	MinDate = time.Unix(0, math.MinInt64).UTC()
	MaxDate = time.Unix(0, math.MaxInt64).UTC()
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]{0,127}$`)

// Series is the stored definition of a time series.
// It carries everything needed to rebuild the immutable in-memory series.
type Series struct {
	// ID is assigned by the server on creation.
	ID string `json:"id"`

	// Name is the unique, URL-safe handle clients address the series by.
	Name string `json:"name"`

	Kind        Kind   `json:"kind"`
	DataType    string `json:"data_type"`
	Unit        string `json:"unit,omitempty"`
	Granularity string `json:"granularity"`
	Calendar    string `json:"calendar,omitempty"`

	// StartDate dates the first sample of a periodic series.
	StartDate time.Time `json:"start_date"`

	// Timestamps dates every sample of a non-periodic series.
	Timestamps []time.Time `json:"timestamps,omitempty"`

	Values []float64 `json:"values"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the envelope of a series definition. Calendar,
// granularity and sample checks happen when the series is built.
func (s *Series) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !namePattern.MatchString(s.Name) {
		return fmt.Errorf("name %q must be 1-128 letters, digits, '.', '_' or '-'", s.Name)
	}
	if s.Granularity == "" {
		return fmt.Errorf("granularity is required")
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("values must not be empty")
	}

	switch s.Kind {
	case KindPeriodic:
		if s.StartDate.IsZero() {
			return fmt.Errorf("start_date is required for a periodic series")
		}
		if len(s.Timestamps) > 0 {
			return fmt.Errorf("timestamps are only allowed on a nonperiodic series")
		}
	case KindNonPeriodic:
		if len(s.Timestamps) != len(s.Values) {
			return fmt.Errorf("got %d timestamps for %d values", len(s.Timestamps), len(s.Values))
		}
	default:
		return fmt.Errorf("invalid kind %q (must be periodic or nonperiodic)", s.Kind)
	}

	if !s.StartDate.IsZero() && !inDateRange(s.StartDate) {
		return fmt.Errorf("start_date %s is outside [%s, %s]", s.StartDate.Format(time.RFC3339), MinDate.Format(time.RFC3339), MaxDate.Format(time.RFC3339))
	}
	for i, ts := range s.Timestamps {
		if !inDateRange(ts) {
			return fmt.Errorf("timestamp %d (%s) is outside [%s, %s]", i, ts.Format(time.RFC3339), MinDate.Format(time.RFC3339), MaxDate.Format(time.RFC3339))
		}
	}

	return nil
}

func inDateRange(t time.Time) bool {
	return !t.Before(MinDate) && !t.After(MaxDate)
}

// SeriesInfo is the listing view of a series, without samples.
type SeriesInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	DataType    string    `json:"data_type"`
	Unit        string    `json:"unit,omitempty"`
	Granularity string    `json:"granularity"`
	Calendar    string    `json:"calendar,omitempty"`
	StartDate   time.Time `json:"start_date"`
	Length      int       `json:"length"`
	CreatedAt   time.Time `json:"created_at"`
}

// Info returns the listing view of s.
func (s *Series) Info() SeriesInfo {
	start := s.StartDate
	if s.Kind == KindNonPeriodic && len(s.Timestamps) > 0 {
		start = s.Timestamps[0]
	}
	return SeriesInfo{
		ID:          s.ID,
		Name:        s.Name,
		Kind:        s.Kind,
		DataType:    s.DataType,
		Unit:        s.Unit,
		Granularity: s.Granularity,
		Calendar:    s.Calendar,
		StartDate:   start,
		Length:      len(s.Values),
		CreatedAt:   s.CreatedAt,
	}
}
