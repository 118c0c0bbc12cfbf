package v1

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

func TestSeries_Validate(t *testing.T) {
	start := time.Date(2009, 10, 1, 0, 0, 0, 0, time.UTC)
	valid := func() *Series {
		return &Series{Name: "gas.demand-1", Kind: KindPeriodic, Granularity: "daily", StartDate: start, Values: []float64{1}}
	}

	tests := []struct {
		name      string
		mutate    func(s *Series)
		wantError string
	}{
		{name: "valid periodic", mutate: func(*Series) {}},
		{name: "valid nonperiodic", mutate: func(s *Series) {
			s.Kind = KindNonPeriodic
			s.Timestamps = []time.Time{start}
		}},
		{name: "missing name", mutate: func(s *Series) { s.Name = "" }, wantError: "name is required"},
		{name: "name with slash", mutate: func(s *Series) { s.Name = "a/b" }, wantError: "must be 1-128"},
		{name: "missing granularity", mutate: func(s *Series) { s.Granularity = "" }, wantError: "granularity is required"},
		{name: "no values", mutate: func(s *Series) { s.Values = nil }, wantError: "values must not be empty"},
		{name: "periodic without start", mutate: func(s *Series) { s.StartDate = time.Time{} }, wantError: "start_date is required"},
		{name: "periodic with timestamps", mutate: func(s *Series) { s.Timestamps = []time.Time{start} }, wantError: "only allowed on a nonperiodic"},
		{name: "timestamp count mismatch", mutate: func(s *Series) { s.Kind = KindNonPeriodic }, wantError: "got 0 timestamps for 1 values"},
		{name: "unknown kind", mutate: func(s *Series) { s.Kind = "irregular" }, wantError: "invalid kind"},
		{name: "start before 1678", mutate: func(s *Series) { s.StartDate = time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC) }, wantError: "start_date 1600-01-01T00:00:00Z is outside"},
		{name: "timestamp after 2262", mutate: func(s *Series) {
			s.Kind = KindNonPeriodic
			s.Values = []float64{1, 2}
			s.Timestamps = []time.Time{start, time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)}
		}, wantError: "timestamp 1 (2300-01-01T00:00:00Z) is outside"},
		{name: "timestamps at the range bounds", mutate: func(s *Series) {
			s.Kind = KindNonPeriodic
			s.Values = []float64{1, 2}
			s.StartDate = MinDate
			s.Timestamps = []time.Time{MinDate, MaxDate}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(s)
			err := s.Validate()
			if tc.wantError == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantError)
		})
	}
}

func TestSeries_Info(t *testing.T) {
	ts := []time.Time{
		time.Date(2009, 10, 1, 3, 0, 0, 0, time.UTC),
		time.Date(2009, 10, 1, 5, 0, 0, 0, time.UTC),
	}
	s := &Series{Name: "spot", Kind: KindNonPeriodic, Granularity: "hourly", Timestamps: ts, Values: []float64{1, 2}}

	info := s.Info()
	require.Equal(t, "spot", info.Name)
	require.Equal(t, ts[0], info.StartDate)
	require.Equal(t, 2, info.Length)
}

func TestSeriesDefinition_ToSeries(t *testing.T) {
	def := &SeriesDefinition{
		Name:        "flags",
		DataType:    "boolean",
		Granularity: "hourly",
		Timestamps:  []string{"2009-10-01T00:00:00Z", "2009-10-01 02:00:00"},
		Values:      []interface{}{true, 0.0},
	}

	s, err := def.ToSeries("gas")
	require.NoError(t, err)
	require.Equal(t, KindNonPeriodic, s.Kind)
	require.Equal(t, "gas", s.Calendar)
	require.Equal(t, []float64{1, 0}, s.Values)
	require.Equal(t, time.Date(2009, 10, 1, 2, 0, 0, 0, time.UTC), s.Timestamps[1])

	periodic := &SeriesDefinition{
		Name:        "demand",
		Kind:        "Periodic",
		Granularity: "monthly",
		Calendar:    "normalized",
		StartDate:   "2009-10-01",
		Values:      []interface{}{1.5, "2.25"},
	}
	s, err = periodic.ToSeries("gas")
	require.NoError(t, err)
	require.Equal(t, KindPeriodic, s.Kind)
	require.Equal(t, "normalized", s.Calendar)
	require.Equal(t, []float64{1.5, 2.25}, s.Values)
}

func TestSeriesDefinition_ToSeriesErrors(t *testing.T) {
	tests := []struct {
		name      string
		def       SeriesDefinition
		wantError string
		malformed bool
	}{
		{
			name:      "bad start date",
			def:       SeriesDefinition{Name: "x", Granularity: "daily", StartDate: "yesterday", Values: []interface{}{1.0}},
			wantError: "start_date",
			malformed: true,
		},
		{
			name:      "bad timestamp",
			def:       SeriesDefinition{Name: "x", Granularity: "daily", Timestamps: []string{"soon"}, Values: []interface{}{1.0}},
			wantError: "timestamp 0",
			malformed: true,
		},
		{
			name:      "bad sample",
			def:       SeriesDefinition{Name: "x", Granularity: "daily", StartDate: "2009-10-01", Values: []interface{}{1.0, nil}},
			wantError: "sample 1",
			malformed: true,
		},
		{
			name:      "envelope error",
			def:       SeriesDefinition{Granularity: "daily", StartDate: "2009-10-01", Values: []interface{}{1.0}},
			wantError: "name is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.def.ToSeries("")
			require.ErrorContains(t, err, tc.wantError)
			require.Equal(t, tc.malformed, errors.Is(err, tserr.ErrMalformedInput))
		})
	}
}
