package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	"github.com/aevon-lab/calseries/internal/catalog"
	httperr "github.com/aevon-lab/calseries/internal/core/errors"
	"github.com/aevon-lab/calseries/internal/core/storage"
	storagemocks "github.com/aevon-lab/calseries/internal/mocks/storage"
)

func newTestRouter(t *testing.T, store storage.SeriesStore, maxBodySizeMB int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(catalog.New(store, 8, "gregorian"), maxBodySizeMB)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func doRequest(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateHandler_Success(t *testing.T) {
	body := []byte(`{
		"name": "gas.demand",
		"granularity": "daily",
		"calendar": "gas",
		"start_date": "2009-10-01T06:00:00",
		"values": [1, 2.5, "3"]
	}`)

	mockStore := storagemocks.NewSeriesStore(t)
	mockStore.EXPECT().
		SaveSeries(mock.Anything, mock.MatchedBy(func(s *v1.Series) bool {
			return s.Name == "gas.demand" &&
				s.Kind == v1.KindPeriodic &&
				s.ID != "" &&
				len(s.Values) == 3 && s.Values[2] == 3
		})).
		Return(nil).
		Once()

	resp := doRequest(newTestRouter(t, mockStore, 1), http.MethodPost, "/v1/series", body)

	require.Equal(t, http.StatusCreated, resp.Code)
	var info v1.SeriesInfo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &info))
	require.Equal(t, "gas.demand", info.Name)
	require.Equal(t, "gas", info.Calendar)
	require.Equal(t, 3, info.Length)
	require.NotEmpty(t, info.ID)
}

func TestCreateHandler_NonPeriodicDefaultsCalendar(t *testing.T) {
	body := []byte(`{
		"name": "spot",
		"granularity": "hourly",
		"timestamps": ["2009-10-01T00:00:00Z", "2009-10-01T03:00:00Z"],
		"values": [40.5, 41]
	}`)

	mockStore := storagemocks.NewSeriesStore(t)
	mockStore.EXPECT().
		SaveSeries(mock.Anything, mock.MatchedBy(func(s *v1.Series) bool {
			return s.Kind == v1.KindNonPeriodic && s.Calendar == "gregorian" && len(s.Timestamps) == 2
		})).
		Return(nil).
		Once()

	resp := doRequest(newTestRouter(t, mockStore, 1), http.MethodPost, "/v1/series", body)
	require.Equal(t, http.StatusCreated, resp.Code)
}

func TestCreateHandler_Errors(t *testing.T) {
	valid := `{"name":"demand","granularity":"daily","start_date":"2009-10-01","values":[1]}`

	tests := []struct {
		name           string
		body           string
		maxBodySizeMB  int
		configureStore func(store *storagemocks.SeriesStore)
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "invalid json",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidJsonError,
		},
		{
			name:           "oversized body",
			body:           `{"name":"demand","values":[` + strings.Repeat("1,", 600*1024) + `1]}`,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedType:   httperr.HttpInvalidJsonError,
		},
		{
			name:           "missing name",
			body:           `{"granularity":"daily","start_date":"2009-10-01","values":[1]}`,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpMalformedInputError,
		},
		{
			name:           "bad date",
			body:           `{"name":"demand","granularity":"daily","start_date":"soon","values":[1]}`,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpMalformedInputError,
		},
		{
			name:           "unknown granularity",
			body:           `{"name":"demand","granularity":"fortnightly","start_date":"2009-10-01","values":[1]}`,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpMalformedInputError,
		},
		{
			name:           "unordered timestamps",
			body:           `{"name":"spot","granularity":"hourly","timestamps":["2009-10-02","2009-10-01"],"values":[1,2]}`,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpMalformedInputError,
		},
		{
			name: "duplicate",
			body: valid,
			configureStore: func(store *storagemocks.SeriesStore) {
				store.EXPECT().SaveSeries(mock.Anything, mock.Anything).Return(storage.ErrDuplicate).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedType:   httperr.HttpDuplicateSeriesError,
		},
		{
			name: "storage error",
			body: valid,
			configureStore: func(store *storagemocks.SeriesStore) {
				store.EXPECT().SaveSeries(mock.Anything, mock.Anything).Return(errors.New("database connection failed")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := storagemocks.NewSeriesStore(t)
			if tc.configureStore != nil {
				tc.configureStore(mockStore)
			}

			resp := doRequest(newTestRouter(t, mockStore, tc.maxBodySizeMB), http.MethodPost, "/v1/series", []byte(tc.body))
			require.Equal(t, tc.expectedStatus, resp.Code)

			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, tc.expectedType, errResp.ErrorType)
		})
	}
}

func TestDeleteHandler(t *testing.T) {
	tests := []struct {
		name           string
		storeErr       error
		expectedStatus int
	}{
		{name: "deleted", expectedStatus: http.StatusNoContent},
		{name: "not found", storeErr: storage.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "storage error", storeErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := storagemocks.NewSeriesStore(t)
			mockStore.EXPECT().DeleteSeries(mock.Anything, "demand").Return(tc.storeErr).Once()

			resp := doRequest(newTestRouter(t, mockStore, 1), http.MethodDelete, "/v1/series/demand", nil)
			require.Equal(t, tc.expectedStatus, resp.Code)
		})
	}
}

func TestNewService_PanicsWithoutCatalog(t *testing.T) {
	require.Panics(t, func() { NewService(nil, 1) })
}
