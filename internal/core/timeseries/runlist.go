package timeseries

import "time"

// Point is a sample paired with the start date of its period.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// runList compresses points into a step-function outline: the first point,
// then for every value change the last second of the previous run followed by
// the first point of the new run, then a closing point at end carrying the
// last value.
func runList(points []Point, end time.Time) []Point {
	if len(points) == 0 {
		return nil
	}

	out := []Point{points[0]}
	prev := points[0].Value
	for _, p := range points[1:] {
		if p.Value == prev {
			continue
		}
		out = append(out, Point{Date: p.Date.Add(-time.Second), Value: prev}, p)
		prev = p.Value
	}
	return append(out, Point{Date: end, Value: prev})
}

// pointsBetween returns the points whose date lies in [start, end). Zero
// bounds are open.
func pointsBetween(points []Point, start, end time.Time) []Point {
	var out []Point
	for _, p := range points {
		if !start.IsZero() && p.Date.Before(start) {
			continue
		}
		if !end.IsZero() && !p.Date.Before(end) {
			break
		}
		out = append(out, p)
	}
	return out
}
