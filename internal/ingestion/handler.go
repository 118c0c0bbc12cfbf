package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	httperr "github.com/aevon-lab/calseries/internal/core/errors"
	"github.com/aevon-lab/calseries/internal/core/storage"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgPersistFailed   = "Failed to persist series"
	msgDeleteFailed    = "Failed to delete series"
	msgDuplicateSeries = "Series already exists"
	msgSeriesNotFound  = "Series not found"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// CreateHandler handles POST /v1/series.
func (s *Service) CreateHandler(c *gin.Context) {
	def, payloadSize, ierr := s.parseDefinition(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	series, ierr := toSeries(def)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	slog.Info("Received series",
		"series", series.Name,
		"kind", series.Kind,
		"granularity", series.Granularity,
		"samples", len(series.Values),
		"payload_size", payloadSize)

	if ierr := s.persistSeries(c.Request.Context(), series); ierr != nil {
		writeError(c, ierr)
		return
	}

	c.JSON(http.StatusCreated, series.Info())
}

// DeleteHandler handles DELETE /v1/series/:name.
func (s *Service) DeleteHandler(c *gin.Context) {
	name := c.Param("name")
	if err := s.catalog.Delete(c.Request.Context(), name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(c, &ingestionError{
				statusCode: http.StatusNotFound,
				errorType:  httperr.HttpSeriesNotFoundError,
				message:    msgSeriesNotFound,
				details:    map[string]interface{}{"series": name},
			})
			return
		}
		slog.Error("Failed to delete series", "error", err, "series", name)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgDeleteFailed,
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// parseDefinition reads the raw request body and binds it into a SeriesDefinition.
// Returns the parsed definition and the raw payload size (used for structured logging upstream).
func (s *Service) parseDefinition(c *gin.Context) (*v1.SeriesDefinition, int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var def v1.SeriesDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return &def, len(bodyBytes), nil
}

// toSeries parses dates and samples. The calendar is left for the catalog to
// default.
func toSeries(def *v1.SeriesDefinition) (*v1.Series, *ingestionError) {
	series, err := def.ToSeries("")
	if err != nil {
		slog.Warn("Series definition rejected", "error", err, "series", def.Name)
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpMalformedInputError,
			message:    err.Error(),
		}
	}
	return series, nil
}

// persistSeries builds the series and saves it through the catalog.
func (s *Service) persistSeries(ctx context.Context, series *v1.Series) *ingestionError {
	if _, err := s.catalog.Create(ctx, series); err != nil {
		switch {
		case errors.Is(err, httperr.ErrMalformedInput):
			slog.Warn("Series definition rejected", "error", err, "series", series.Name)
			return &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpMalformedInputError,
				message:    err.Error(),
			}
		case errors.Is(err, storage.ErrDuplicate):
			slog.Info("Duplicate series rejected", "series", series.Name)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateSeriesError,
				message:    msgDuplicateSeries,
				details:    map[string]interface{}{"series": series.Name},
			}
		}

		slog.Error("Failed to persist series", "error", err, "series", series.Name)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
