package v1

import (
	"fmt"
	"strings"

	coreagg "github.com/aevon-lab/calseries/internal/core/aggregation"
)

// SeriesDefinition is the client-facing shape of a new series, shared by the
// HTTP API and YAML seed files. Dates are strings so every layout accepted by
// the query API works here too; values are decoded loosely so integer and
// boolean series read naturally.
type SeriesDefinition struct {
	Name        string        `json:"name" yaml:"name"`
	Kind        string        `json:"kind,omitempty" yaml:"kind"`
	DataType    string        `json:"data_type,omitempty" yaml:"data_type"`
	Unit        string        `json:"unit,omitempty" yaml:"unit"`
	Granularity string        `json:"granularity" yaml:"granularity"`
	Calendar    string        `json:"calendar,omitempty" yaml:"calendar"`
	StartDate   string        `json:"start_date,omitempty" yaml:"start_date"`
	Timestamps  []string      `json:"timestamps,omitempty" yaml:"timestamps"`
	Values      []interface{} `json:"values" yaml:"values"`
}

// ToSeries parses the definition. The kind defaults to nonperiodic when
// timestamps are given and periodic otherwise; an empty calendar becomes
// defaultCalendar.
func (d *SeriesDefinition) ToSeries(defaultCalendar string) (*Series, error) {
	s := &Series{
		Name:        d.Name,
		Kind:        Kind(strings.ToLower(strings.TrimSpace(d.Kind))),
		DataType:    d.DataType,
		Unit:        d.Unit,
		Granularity: d.Granularity,
		Calendar:    d.Calendar,
	}
	if s.Kind == "" {
		s.Kind = KindPeriodic
		if len(d.Timestamps) > 0 {
			s.Kind = KindNonPeriodic
		}
	}
	if s.Calendar == "" {
		s.Calendar = defaultCalendar
	}

	var err error
	if d.StartDate != "" {
		if s.StartDate, err = coreagg.ParseTime(d.StartDate); err != nil {
			return nil, fmt.Errorf("start_date: %w", err)
		}
	}
	for i, ts := range d.Timestamps {
		t, err := coreagg.ParseTime(ts)
		if err != nil {
			return nil, fmt.Errorf("timestamp %d: %w", i, err)
		}
		s.Timestamps = append(s.Timestamps, t)
	}
	if s.Values, err = coreagg.SampleValues(d.Values); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
