package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter-service/internal/domain/model"
	"currency-converter-service/internal/metrics"
	"currency-converter-service/internal/service"
	"currency-converter-service/pkg/logger"
)

type MockConverterService struct {
	GetSnapshotFunc func(ctx context.Context, base model.Currency, targets []model.Currency) (*model.SnapshotView, error)
	BuildSeriesFunc func(ctx context.Context, base model.Currency, targets []model.Currency, windowDays int) (*model.HistoryResult, error)
	ConvertFunc     func(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error)
}

func (m *MockConverterService) GetSnapshot(ctx context.Context, base model.Currency, targets []model.Currency) (*model.SnapshotView, error) {
	return m.GetSnapshotFunc(ctx, base, targets)
}

func (m *MockConverterService) BuildSeries(ctx context.Context, base model.Currency, targets []model.Currency, windowDays int) (*model.HistoryResult, error) {
	return m.BuildSeriesFunc(ctx, base, targets, windowDays)
}

func (m *MockConverterService) Convert(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error) {
	return m.ConvertFunc(ctx, request)
}

func (m *MockConverterService) Currencies() []model.Currency {
	return model.MenuCurrencies
}

var testMetrics = metrics.NewMetrics()

func newTestHandler(svc *MockConverterService) *Handler {
	return NewHandler(svc, logger.NewLogger("error"), testMetrics)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGetSnapshotHandler(t *testing.T) {
	handler := newTestHandler(&MockConverterService{
		GetSnapshotFunc: func(ctx context.Context, base model.Currency, targets []model.Currency) (*model.SnapshotView, error) {
			assert.Equal(t, model.USD, base)
			assert.Equal(t, []model.Currency{model.EUR, model.GBP}, targets)
			return &model.SnapshotView{
				Base:      base,
				Available: map[model.Currency]float64{model.EUR: 0.9},
				Missing:   []model.Currency{model.GBP},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshot?base=usd&targets=eur,gbp", nil)
	rec := httptest.NewRecorder()
	handler.GetSnapshotHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestGetSnapshotHandler_MissingBase(t *testing.T) {
	handler := newTestHandler(&MockConverterService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshot?targets=EUR", nil)
	rec := httptest.NewRecorder()
	handler.GetSnapshotHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestConvertHandler_SwapBeforeFetch(t *testing.T) {
	var got model.ConversionRequest

	handler := newTestHandler(&MockConverterService{
		ConvertFunc: func(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error) {
			got = request
			return &model.ConversionResult{Base: request.Base, Amount: request.Amount}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert?base=USD&targets=EUR,GBP&amount=10&swap=true", nil)
	rec := httptest.NewRecorder()
	handler.ConvertHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The swapped pair, not the submitted one, is what the service sees.
	assert.Equal(t, model.EUR, got.Base)
	assert.Equal(t, []model.Currency{model.USD, model.GBP}, got.Targets)
	assert.Equal(t, 10.0, got.Amount)
}

func TestConvertHandler_InvalidAmount(t *testing.T) {
	handler := newTestHandler(&MockConverterService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert?base=USD&targets=EUR&amount=ten", nil)
	rec := httptest.NewRecorder()
	handler.ConvertHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHistoryHandler(t *testing.T) {
	handler := newTestHandler(&MockConverterService{
		BuildSeriesFunc: func(ctx context.Context, base model.Currency, targets []model.Currency, windowDays int) (*model.HistoryResult, error) {
			assert.Equal(t, 30, windowDays)
			return &model.HistoryResult{
				Base:       base,
				Series:     map[model.Currency]model.TimeSeries{},
				FailedDays: 2,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?base=USD&targets=EUR", nil)
	rec := httptest.NewRecorder()
	handler.GetHistoryHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestServiceErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "Invalid currency", err: service.ErrInvalidCurrency, statusCode: http.StatusBadRequest},
		{name: "Invalid window", err: service.ErrInvalidWindow, statusCode: http.StatusBadRequest},
		{name: "Upstream rejected", err: model.ErrUpstreamRejected, statusCode: http.StatusBadRequest},
		{name: "Malformed response", err: model.ErrMalformedResponse, statusCode: http.StatusBadGateway},
		{name: "Unreachable", err: model.ErrUnreachable, statusCode: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(&MockConverterService{
				GetSnapshotFunc: func(ctx context.Context, base model.Currency, targets []model.Currency) (*model.SnapshotView, error) {
					return nil, tc.err
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshot?base=USD&targets=EUR", nil)
			rec := httptest.NewRecorder()
			handler.GetSnapshotHandler(rec, req)

			assert.Equal(t, tc.statusCode, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
		})
	}
}

func TestGetCurrenciesHandler(t *testing.T) {
	handler := newTestHandler(&MockConverterService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	rec := httptest.NewRecorder()
	handler.GetCurrenciesHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}
