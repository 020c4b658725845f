package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

type fakeEstimator struct {
	got        model.PropertyRecord
	err        error
	filter     model.PredictionFilter
	deleteN    int
	deleteNew  bool
	deletedID  int64
	predictErr error
}

func (f *fakeEstimator) Predict(_ context.Context, in model.PropertyRecord) (*model.PredictResponse, error) {
	f.got = in
	if f.predictErr != nil {
		return nil, f.predictErr
	}
	return &model.PredictResponse{RequestID: "req-1", PredictedPrice: 61234.5}, nil
}

func (f *fakeEstimator) Predictions(_ context.Context, filter model.PredictionFilter) (*model.PredictionsResponse, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return &model.PredictionsResponse{Results: []model.PredictionRecord{{ID: 7, Price: 1}}, Total: 1}, nil
}

func (f *fakeEstimator) DeletePredictions(_ context.Context, n int, newest bool) (int64, error) {
	f.deleteN, f.deleteNew = n, newest
	if n <= 0 {
		return 0, apperrors.ErrInvalidArgument
	}
	return int64(n), nil
}

func (f *fakeEstimator) DeletePrediction(_ context.Context, id int64) error {
	f.deletedID = id
	if id == 404 {
		return fmt.Errorf("%w: prediction %d not found", apperrors.ErrNoData, id)
	}
	return nil
}

type fakeDataset struct {
	query  string
	column string
	err    error
}

func (f *fakeDataset) List(context.Context) (*model.DatasetResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.DatasetResponse{Results: []model.CleanedRecord{{Price: 50000}}, Total: 1}, nil
}

func (f *fakeDataset) Search(_ context.Context, query string) (*model.SearchResponse, error) {
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return &model.SearchResponse{Column: "rooms", Value: "2", Total: 0}, nil
}

func (f *fakeDataset) Column(_ context.Context, column string) (*model.ColumnResponse, error) {
	f.column = column
	if f.err != nil {
		return nil, f.err
	}
	if column == "password" {
		return nil, apperrors.ErrInvalidArgument
	}
	v := "Kievsky"
	return &model.ColumnResponse{Column: column, Results: []model.ColumnValue{{ID: 1, Value: &v}}, Total: 1}, nil
}

func (f *fakeDataset) Statistics(context.Context) (*model.Statistics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Statistics{TypeDistribution: map[string]int{"Czech": 3}}, nil
}

func (f *fakeDataset) Ranges(context.Context) (model.Ranges, error) {
	return model.Ranges{Rooms: model.Range{Min: 1, Max: 4}}, f.err
}

func (f *fakeDataset) RefreshRanges(context.Context) (model.Ranges, error) {
	return model.Ranges{Rooms: model.Range{Min: 1, Max: 5}}, f.err
}

func setupRouter(est *fakeEstimator, ds *fakeDataset) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	router := gin.New()
	router.Use(RequestLogger(logger))
	Register(router.Group("/api/v1"),
		NewEstimateHandler(est, 50, logger),
		NewDatasetHandler(ds, logger))
	return router
}

func do(router *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validJSON = `{"district":"Kievsky","rooms":2,"floor":3,"floors":9,"area":"55.5",` +
	`"type":"Czech","cond":"Renovation","walls":"Brick","desc":"Sauna"}`

func TestPredict_JSON(t *testing.T) {
	est := &fakeEstimator{}
	router := setupRouter(est, &fakeDataset{})

	w := do(router, http.MethodPost, "/api/v1/predict", "application/json", validJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp model.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, 61234.5, resp.PredictedPrice)
	assert.Contains(t, w.Body.String(), `"warning":null`)

	assert.Equal(t, model.PropertyRecord{
		District: "Kievsky", Rooms: 2, Floor: 3, Floors: 9, Area: 55.5,
		Type: "Czech", Cond: "Renovation", Walls: "Brick", Description: est.got.Description,
	}, est.got)
	require.NotNil(t, est.got.Description)
	assert.Equal(t, "Sauna", *est.got.Description)
}

func TestPredict_Form(t *testing.T) {
	est := &fakeEstimator{}
	router := setupRouter(est, &fakeDataset{})

	form := url.Values{
		"district": {"Kievsky"}, "rooms": {"2"}, "floor": {"3"}, "floors": {"9"}, "area": {"abc"},
		"datatype": {"Czech"}, "cond": {"Renovation"}, "walls": {"Brick"},
	}
	w := do(router, http.MethodPost, "/api/v1/predict", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, "Czech", est.got.Type, "datatype is accepted for type")
	assert.Equal(t, 0.0, est.got.Area, "non-numeric text coerces to zero")
	assert.Nil(t, est.got.Description)
}

func TestPredict_InputErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "malformed json",
			body:     `{"district":`,
			wantCode: http.StatusBadRequest,
			wantBody: MsgInvalidInput,
		},
		{
			name:     "not an object",
			body:     `null`,
			wantCode: http.StatusBadRequest,
			wantBody: MsgInvalidInput,
		},
		{
			name:     "missing field",
			body:     `{"district":"Kievsky","rooms":2,"floor":3,"floors":9,"type":"Czech","cond":"Renovation","walls":"Brick"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: MsgDataProcessing,
		},
		{
			name:     "fractional rooms",
			body:     strings.Replace(validJSON, `"rooms":2`, `"rooms":2.5`, 1),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: MsgDataProcessing,
		},
		{
			name:     "object where a string is expected",
			body:     strings.Replace(validJSON, `"walls":"Brick"`, `"walls":{}`, 1),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: MsgDataProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&fakeEstimator{}, &fakeDataset{})

			w := do(router, http.MethodPost, "/api/v1/predict", "application/json", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestPredict_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name: "validation",
			err: apperrors.NewValidationError([]model.FieldError{
				{Field: "district", Error: "Invalid value for field: district"},
				{Field: "rooms", Error: "Invalid value for field: rooms"},
			}),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error_list":[{"field":"district","error":"Invalid value for field: district"},` +
				`{"field":"rooms","error":"Invalid value for field: rooms"}]}`,
		},
		{
			name:     "scoring",
			err:      fmt.Errorf("%w: shape mismatch", apperrors.ErrScoringFailed),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error":"Data processing error"}`,
		},
		{
			name:     "no data",
			err:      apperrors.ErrNoData,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"No data found"}`,
		},
		{
			name:     "internal",
			err:      errors.New("connection reset by peer"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&fakeEstimator{predictErr: tt.err}, &fakeDataset{})

			w := do(router, http.MethodPost, "/api/v1/predict", "application/json", validJSON)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestPredictions(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantCode   int
		wantFilter model.PredictionFilter
	}{
		{name: "defaults", query: "", wantCode: http.StatusOK, wantFilter: model.PredictionFilter{Limit: 50}},
		{name: "limit and request id", query: "?limit=5&request_id=abc", wantCode: http.StatusOK,
			wantFilter: model.PredictionFilter{Limit: 5, RequestID: "abc"}},
		{name: "bad limit", query: "?limit=x", wantCode: http.StatusBadRequest},
		{name: "bad price", query: "?price=cheap", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := &fakeEstimator{}
			router := setupRouter(est, &fakeDataset{})

			w := do(router, http.MethodGet, "/api/v1/predictions"+tt.query, "", "")
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantFilter, est.filter)
				assert.Contains(t, w.Body.String(), `"total":1`)
			}
		})
	}
}

func TestPredictions_PriceFilter(t *testing.T) {
	est := &fakeEstimator{}
	router := setupRouter(est, &fakeDataset{})

	w := do(router, http.MethodGet, "/api/v1/predictions?price=60000", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, est.filter.Price)
	assert.Equal(t, 60000.0, *est.filter.Price)
}

func TestDeletePredictions(t *testing.T) {
	est := &fakeEstimator{}
	router := setupRouter(est, &fakeDataset{})

	w := do(router, http.MethodDelete, "/api/v1/predictions?count=3&newest=true", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":3}`, w.Body.String())
	assert.Equal(t, 3, est.deleteN)
	assert.True(t, est.deleteNew)

	w = do(router, http.MethodDelete, "/api/v1/predictions", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodDelete, "/api/v1/predictions?count=0", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePrediction(t *testing.T) {
	est := &fakeEstimator{}
	router := setupRouter(est, &fakeDataset{})

	w := do(router, http.MethodDelete, "/api/v1/predictions/12", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":12}`, w.Body.String())
	assert.Equal(t, int64(12), est.deletedID)

	w = do(router, http.MethodDelete, "/api/v1/predictions/404", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No data found"}`, w.Body.String())

	w = do(router, http.MethodDelete, "/api/v1/predictions/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetColumn(t *testing.T) {
	ds := &fakeDataset{}
	router := setupRouter(&fakeEstimator{}, ds)

	w := do(router, http.MethodGet, "/api/v1/dataset/columns/district", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "district", ds.column)
	assert.JSONEq(t, `{"column":"district","results":[{"id":1,"value":"Kievsky"}],"total":1}`, w.Body.String())

	w = do(router, http.MethodGet, "/api/v1/dataset/columns/password", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetRoutes(t *testing.T) {
	ds := &fakeDataset{}
	router := setupRouter(&fakeEstimator{}, ds)

	w := do(router, http.MethodGet, "/api/v1/dataset", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = do(router, http.MethodPost, "/api/v1/dataset/search", "application/json", `{"query":"rooms:2"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rooms:2", ds.query)

	w = do(router, http.MethodPost, "/api/v1/dataset/search", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/statistics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Czech":3`)

	w = do(router, http.MethodGet, "/api/v1/ranges", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"max":4`)

	w = do(router, http.MethodPost, "/api/v1/ranges/refresh", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"max":5`)

	w = do(router, http.MethodGet, "/api/v1/vocabulary", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var vocab map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vocab))
	assert.Contains(t, vocab["district"], "kievsky")
	assert.Contains(t, vocab["walls"], "reed, dranka")
}

func TestDatasetRoutes_NoData(t *testing.T) {
	router := setupRouter(&fakeEstimator{}, &fakeDataset{err: apperrors.ErrNoData})

	for _, path := range []string{"/api/v1/dataset", "/api/v1/statistics", "/api/v1/ranges"} {
		w := do(router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"No data found"}`, w.Body.String())
	}

	w := do(router, http.MethodPost, "/api/v1/dataset/search", "application/json", `{"query":"zzz"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
