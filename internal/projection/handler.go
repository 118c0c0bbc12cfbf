package projection

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	coreagg "github.com/aevon-lab/calseries/internal/core/aggregation"
	httperr "github.com/aevon-lab/calseries/internal/core/errors"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/series", s.HandleList)

	series := r.Group("/v1/series/:name")
	{
		series.GET("", s.HandleDetail)
		series.GET("/value", s.HandleValueAt)
		series.GET("/values", s.HandleValuesIn)
		series.GET("/points", s.HandlePoints)
		series.GET("/next", s.HandleNextDate)
		series.GET("/runs", s.HandleRuns)
		series.GET("/aggregate", s.HandleAggregateQuery)
		series.POST("/aggregate", s.HandleAggregate)
	}

	r.POST("/v1/aggregate/batch", s.HandleAggregateBatch)
}

// HandleList handles GET /v1/series
func (s *Service) HandleList(c *gin.Context) {
	infos, err := s.List(c.Request.Context())
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": infos})
}

// HandleDetail handles GET /v1/series/:name
func (s *Service) HandleDetail(c *gin.Context) {
	detail, err := s.Detail(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// HandleValueAt handles GET /v1/series/:name/value
// Query parameters: at (required)
func (s *Service) HandleValueAt(c *gin.Context) {
	var query struct {
		At string `form:"at" binding:"required"`
	}
	if !bindQuery(c, &query) {
		return
	}
	at, err := coreagg.ParseTime(query.At)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	resp, err := s.ValueAt(c.Request.Context(), c.Param("name"), at)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleValuesIn handles GET /v1/series/:name/values
// Query parameters: start, end (both optional)
func (s *Service) HandleValuesIn(c *gin.Context) {
	var query struct {
		Start string `form:"start"`
		End   string `form:"end"`
	}
	if !bindQuery(c, &query) {
		return
	}
	iv, err := coreagg.ParseInterval(query.Start + "/" + query.End)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	resp, err := s.ValuesIn(c.Request.Context(), c.Param("name"), iv.Start, iv.End)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandlePoints handles GET /v1/series/:name/points
// Query parameters: start, end (both optional)
func (s *Service) HandlePoints(c *gin.Context) {
	var query struct {
		Start string `form:"start"`
		End   string `form:"end"`
	}
	if !bindQuery(c, &query) {
		return
	}
	iv, err := coreagg.ParseInterval(query.Start + "/" + query.End)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	resp, err := s.Points(c.Request.Context(), c.Param("name"), iv.Start, iv.End)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleNextDate handles GET /v1/series/:name/next
// Query parameters: date (required)
func (s *Service) HandleNextDate(c *gin.Context) {
	var query struct {
		Date string `form:"date" binding:"required"`
	}
	if !bindQuery(c, &query) {
		return
	}
	date, err := coreagg.ParseTime(query.Date)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	resp, err := s.NextDate(c.Request.Context(), c.Param("name"), date)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleRuns handles GET /v1/series/:name/runs
func (s *Service) HandleRuns(c *gin.Context) {
	resp, err := s.Runs(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleAggregateQuery handles GET /v1/series/:name/aggregate
// Query parameters: interval (repeatable, "start/end"), mode, use_last_interval
func (s *Service) HandleAggregateQuery(c *gin.Context) {
	req := AggregateRequest{Mode: c.Query("mode")}

	if raw := c.Query("use_last_interval"); raw != "" {
		useLast, err := strconv.ParseBool(raw)
		if err != nil {
			writeQueryError(c, httperr.Malformedf("use_last_interval must be a boolean, got %q", raw))
			return
		}
		req.UseLastInterval = useLast
	}

	for _, raw := range c.QueryArray("interval") {
		iv, err := coreagg.ParseInterval(raw)
		if err != nil {
			writeQueryError(c, err)
			return
		}
		req.Intervals = append(req.Intervals, IntervalRequest{
			Start: formatBound(iv.Start),
			End:   formatBound(iv.End),
		})
	}

	s.aggregate(c, req)
}

// HandleAggregate handles POST /v1/series/:name/aggregate
func (s *Service) HandleAggregate(c *gin.Context) {
	var req AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}
	s.aggregate(c, req)
}

func (s *Service) aggregate(c *gin.Context, req AggregateRequest) {
	resp, err := s.Aggregate(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleAggregateBatch handles POST /v1/aggregate/batch
func (s *Service) HandleAggregateBatch(c *gin.Context) {
	var req BatchAggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.AggregateBatch(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bindQuery(c *gin.Context, query interface{}) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpMalformedInputError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

func writeQueryError(c *gin.Context, err error) {
	status, _ := errorStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("Series query failed", "error", err, "path", c.FullPath(), "series", c.Param("name"))
	}
	body := errorBody(err)
	if status == http.StatusNotFound {
		body.Details = map[string]interface{}{"series": c.Param("name")}
	}
	c.JSON(status, body)
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
