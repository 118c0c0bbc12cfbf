package projection

import (
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	httperr "github.com/aevon-lab/calseries/internal/core/errors"
)

// PointValue is a dated sample in a response.
type PointValue struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// SummaryValue renders timeseries.Summary with decimal values.
type SummaryValue struct {
	Count int             `json:"count"`
	First decimal.Decimal `json:"first"`
	Last  decimal.Decimal `json:"last"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Sum   decimal.Decimal `json:"sum"`
	Mean  decimal.Decimal `json:"mean"`
}

// SeriesDetail is the metadata view of one series. EndDate is omitted for a
// constant series, which has no end.
type SeriesDetail struct {
	v1.SeriesInfo
	EndDate *time.Time   `json:"end_date,omitempty"`
	Summary SummaryValue `json:"summary"`
}

type ValueResponse struct {
	Series string          `json:"series"`
	At     time.Time       `json:"at"`
	Value  decimal.Decimal `json:"value"`
}

type ValuesResponse struct {
	Series string       `json:"series"`
	Start  *time.Time   `json:"start,omitempty"`
	End    *time.Time   `json:"end,omitempty"`
	Points []PointValue `json:"points"`
}

type NextDateResponse struct {
	Series string    `json:"series"`
	Date   time.Time `json:"date"`
	Next   time.Time `json:"next"`
}

type RunsResponse struct {
	Series string       `json:"series"`
	Points []PointValue `json:"points"`
}

// IntervalRequest is one [start, end) range. Either bound may be empty to
// leave that side open.
type IntervalRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AggregateRequest is the body of POST /v1/series/:name/aggregate.
type AggregateRequest struct {
	Intervals       []IntervalRequest `json:"intervals"`
	Mode            string            `json:"mode"`
	UseLastInterval bool              `json:"use_last_interval"`
}

// AggregateResponse is the answer to one aggregation.
type AggregateResponse struct {
	Series    string          `json:"series"`
	Mode      string          `json:"mode"`
	Intervals []string        `json:"intervals"`
	Date      time.Time       `json:"date"`
	Value     decimal.Decimal `json:"value"`
}

// BatchQueryRequest is one entry of a batch aggregation.
type BatchQueryRequest struct {
	Series string `json:"series"`
	AggregateRequest
}

// BatchAggregateRequest is the body of POST /v1/aggregate/batch.
type BatchAggregateRequest struct {
	Queries []BatchQueryRequest `json:"queries"`
}

// BatchResult holds either the result or the error of the query at Index.
type BatchResult struct {
	Index  int                    `json:"index"`
	Result *AggregateResponse     `json:"result,omitempty"`
	Error  *httperr.ErrorResponse `json:"error,omitempty"`
}

type BatchAggregateResponse struct {
	Results   []BatchResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}
