package postgres

import (
	"fmt"
	"time"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// seriesArgs flattens a series into querySaveSeries arguments.
func seriesArgs(s *v1.Series) []interface{} {
	return []interface{}{
		s.ID,
		s.Name,
		string(s.Kind),
		s.DataType,
		s.Unit,
		s.Granularity,
		s.Calendar,
		s.StartDate.UTC(),
		len(s.Values),
		encodeValues(s.Values),
		encodeTimestamps(s.Timestamps),
		s.CreatedAt.UTC(),
	}
}

// scanSeriesRow scans a row selected with seriesColumns.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSeriesRow(row scanner) (*v1.Series, error) {
	var s v1.Series
	var kind string
	var count int
	var samples, timestamps []byte
	var start, created time.Time

	err := row.Scan(
		&s.ID,
		&s.Name,
		&kind,
		&s.DataType,
		&s.Unit,
		&s.Granularity,
		&s.Calendar,
		&start,
		&count,
		&samples,
		&timestamps,
		&created,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan series row: %w", err)
	}

	s.Kind = v1.Kind(kind)
	s.StartDate = start.UTC()
	s.CreatedAt = created.UTC()

	if s.Values, err = decodeValues(samples, count); err != nil {
		return nil, fmt.Errorf("series %q: %w", s.Name, err)
	}
	if s.Timestamps, err = decodeTimestamps(timestamps, count); err != nil {
		return nil, fmt.Errorf("series %q: %w", s.Name, err)
	}
	return &s, nil
}
