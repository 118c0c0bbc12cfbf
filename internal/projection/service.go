// Package projection serves read queries over built series: point lookups,
// ranges, run lists and aggregations.
package projection

import (
	"context"
	"errors"
	"net/http"
	"time"

	aggbatch "github.com/aevon-lab/calseries/internal/aggregation"
	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	"github.com/aevon-lab/calseries/internal/catalog"
	coreagg "github.com/aevon-lab/calseries/internal/core/aggregation"
	httperr "github.com/aevon-lab/calseries/internal/core/errors"
	"github.com/aevon-lab/calseries/internal/core/storage"
	"github.com/aevon-lab/calseries/internal/core/timeseries"
)

// Service implements the query layer on top of the catalog.
type Service struct {
	catalog *catalog.Catalog
	batch   aggbatch.BatchJobParameter
}

var _ aggbatch.Evaluator = (*Service)(nil)

// NewService creates a new projection service.
func NewService(cat *catalog.Catalog, batch aggbatch.BatchJobParameter) *Service {
	if cat == nil {
		panic("projection: catalog must not be nil")
	}
	return &Service{catalog: cat, batch: batch}
}

// List returns the listing view of every series.
func (s *Service) List(ctx context.Context) ([]v1.SeriesInfo, error) {
	return s.catalog.List(ctx)
}

// Detail returns the metadata and summary statistics of a series.
func (s *Service) Detail(ctx context.Context, name string) (*SeriesDetail, error) {
	def, err := s.catalog.Definition(ctx, name)
	if err != nil {
		return nil, err
	}
	series, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	detail := &SeriesDetail{
		SeriesInfo: def.Info(),
		Summary:    summaryValue(series.Summary()),
	}
	if end := series.EndDate(); !end.IsZero() {
		detail.EndDate = &end
	}
	return detail, nil
}

func (s *Service) ValueAt(ctx context.Context, name string, at time.Time) (*ValueResponse, error) {
	series, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	v, err := series.ValueAt(at)
	if err != nil {
		return nil, err
	}
	return &ValueResponse{Series: name, At: at, Value: coreagg.ValueDecimal(v)}, nil
}

// ValuesIn returns the samples covering [start, end) with their dates.
func (s *Service) ValuesIn(ctx context.Context, name string, start, end time.Time) (*ValuesResponse, error) {
	series, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	w, err := series.Window(start, end)
	if err != nil {
		return nil, err
	}

	resp := &ValuesResponse{Series: name, Points: make([]PointValue, 0, w.Len())}
	if !start.IsZero() {
		resp.Start = &start
	}
	if !end.IsZero() {
		resp.End = &end
	}
	for i := w.Start; i < w.Stop; i++ {
		resp.Points = append(resp.Points, PointValue{Date: series.DateAt(i), Value: coreagg.ValueDecimal(series.Value(i))})
	}
	return resp, nil
}

// Points returns the dated samples whose date lies in [start, end). Unlike
// ValuesIn it never fails on bounds outside the series.
func (s *Service) Points(ctx context.Context, name string, start, end time.Time) (*ValuesResponse, error) {
	series, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	resp := &ValuesResponse{Series: name, Points: pointValues(series.PointsBetween(start, end))}
	if !start.IsZero() {
		resp.Start = &start
	}
	if !end.IsZero() {
		resp.End = &end
	}
	return resp, nil
}

func (s *Service) NextDate(ctx context.Context, name string, date time.Time) (*NextDateResponse, error) {
	series, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	next, err := series.NextDate(date)
	if err != nil {
		return nil, err
	}
	return &NextDateResponse{Series: name, Date: date, Next: next}, nil
}

// Runs returns the compressed run list of a series.
func (s *Service) Runs(ctx context.Context, name string) (*RunsResponse, error) {
	series, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return &RunsResponse{Series: name, Points: pointValues(series.CompressedRunList())}, nil
}

// Evaluate answers one parsed aggregation query.
func (s *Service) Evaluate(ctx context.Context, q aggbatch.Query) (coreagg.Result, error) {
	series, err := s.catalog.Get(ctx, q.Series)
	if err != nil {
		return coreagg.Result{}, err
	}
	return series.Aggregate(q.Intervals, q.Mode, q.UseLastInterval)
}

// Aggregate parses and answers one aggregation request.
func (s *Service) Aggregate(ctx context.Context, name string, req AggregateRequest) (*AggregateResponse, error) {
	q, err := parseQuery(name, req)
	if err != nil {
		return nil, err
	}
	res, err := s.Evaluate(ctx, q)
	if err != nil {
		return nil, err
	}
	return aggregateResponse(q, res), nil
}

// AggregateBatch answers every query of a batch on the worker pool. Errors of
// individual queries are reported inline; only an invalid batch fails as a
// whole.
func (s *Service) AggregateBatch(ctx context.Context, req BatchAggregateRequest) (*BatchAggregateResponse, error) {
	if err := s.batch.CheckSize(len(req.Queries)); err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(req.Queries))
	queries := make([]aggbatch.Query, 0, len(req.Queries))
	positions := make([]int, 0, len(req.Queries))

	for i, qr := range req.Queries {
		results[i].Index = i
		q, err := parseQuery(qr.Series, qr.AggregateRequest)
		if err != nil {
			results[i].Error = errorBody(err)
			continue
		}
		queries = append(queries, q)
		positions = append(positions, i)
	}

	outcomes, err := aggbatch.RunBatch(ctx, s, queries, s.batch)
	if err != nil {
		return nil, err
	}
	for k, o := range outcomes {
		i := positions[k]
		if o.Err != nil {
			results[i].Error = errorBody(o.Err)
			continue
		}
		results[i].Result = aggregateResponse(queries[k], o.Result)
	}

	resp := &BatchAggregateResponse{Results: results}
	for _, r := range results {
		if r.Error != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	return resp, nil
}

func parseQuery(name string, req AggregateRequest) (aggbatch.Query, error) {
	if name == "" {
		return aggbatch.Query{}, httperr.Malformedf("series is required")
	}
	mode, err := coreagg.ParseMode(req.Mode)
	if err != nil {
		return aggbatch.Query{}, err
	}

	q := aggbatch.Query{
		Series:          name,
		Mode:            mode,
		UseLastInterval: req.UseLastInterval,
		Intervals:       make([]coreagg.Interval, 0, len(req.Intervals)),
	}
	for _, ir := range req.Intervals {
		iv, err := coreagg.ParseInterval(ir.Start + "/" + ir.End)
		if err != nil {
			return aggbatch.Query{}, err
		}
		q.Intervals = append(q.Intervals, iv)
	}
	return q, nil
}

func aggregateResponse(q aggbatch.Query, res coreagg.Result) *AggregateResponse {
	intervals := make([]string, len(q.Intervals))
	for i, iv := range q.Intervals {
		intervals[i] = iv.String()
	}
	return &AggregateResponse{
		Series:    q.Series,
		Mode:      string(q.Mode),
		Intervals: intervals,
		Date:      res.Date,
		Value:     coreagg.ValueDecimal(res.Value),
	}
}

func pointValues(points []timeseries.Point) []PointValue {
	out := make([]PointValue, len(points))
	for i, p := range points {
		out[i] = PointValue{Date: p.Date, Value: coreagg.ValueDecimal(p.Value)}
	}
	return out
}

func summaryValue(sum timeseries.Summary) SummaryValue {
	return SummaryValue{
		Count: sum.Count,
		First: coreagg.ValueDecimal(sum.First),
		Last:  coreagg.ValueDecimal(sum.Last),
		Min:   coreagg.ValueDecimal(sum.Min),
		Max:   coreagg.ValueDecimal(sum.Max),
		Sum:   coreagg.ValueDecimal(sum.Sum),
		Mean:  coreagg.ValueDecimal(sum.Mean),
	}
}

// errorStatus maps a query error onto its HTTP status and error type.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, httperr.HttpSeriesNotFoundError
	case errors.Is(err, httperr.ErrOutOfRange):
		return http.StatusUnprocessableEntity, httperr.HttpOutOfRangeError
	case errors.Is(err, httperr.ErrInvalidMode):
		return http.StatusBadRequest, httperr.HttpInvalidModeError
	case errors.Is(err, httperr.ErrMalformedInput), errors.Is(err, aggbatch.ErrBatchTooLarge):
		return http.StatusBadRequest, httperr.HttpMalformedInputError
	}
	return http.StatusInternalServerError, httperr.HttpInternalError
}

func errorBody(err error) *httperr.ErrorResponse {
	_, errorType := errorStatus(err)
	msg := err.Error()
	if errorType == httperr.HttpInternalError {
		msg = "Failed to query series"
	}
	return &httperr.ErrorResponse{ErrorType: errorType, Message: msg}
}
