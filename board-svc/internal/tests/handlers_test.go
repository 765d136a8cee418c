package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "orderboard/board-svc/internal/api/http"
	"orderboard/board-svc/internal/domain"
	"orderboard/board-svc/internal/mocks"
	"orderboard/board-svc/internal/realtime"
	"orderboard/board-svc/internal/service"
	"orderboard/board-svc/internal/state"
	"orderboard/board-svc/internal/storage"
)

func newTestRouter() (*mux.Router, *mocks.BoardServiceInterface, *mocks.AnalyticsSource, *mocks.QRGenerator) {
	board := new(mocks.BoardServiceInterface)
	analytics := new(mocks.AnalyticsSource)
	qr := new(mocks.QRGenerator)

	mirror := state.NewStore()
	handler := httpapi.NewHandler(board, mirror, realtime.NewReconciler(mirror), analytics, qr)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router, board, analytics, qr
}

func doRequest(router *mux.Router, method, path string, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func boardOrders(t *testing.T) []domain.Order {
	t.Helper()
	iso, err := time.Parse(time.RFC3339, "2024-03-04T14:00:00Z")
	require.NoError(t, err)
	return []domain.Order{
		{ID: "o1", Restaurant: "Tacos El Rey", Amount: 100, ISO: iso, LocalTime: "04/03/24, 08:00"},
		{ID: "o2", Restaurant: "Burritos", Amount: 50, ISO: iso.Add(time.Hour)},
		{ID: "o3", Restaurant: "Tacos El Rey", Amount: 70, ISO: iso.Add(2 * time.Hour)},
	}
}

func TestHealthCheck(t *testing.T) {
	router, _, _, _ := newTestRouter()

	rec := doRequest(router, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestGetState(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("State").Return(
		[]domain.Restaurant{{Name: "Tacos El Rey", CreatedAt: time.Now().UTC()}},
		boardOrders(t),
		nil,
	)

	rec := doRequest(router, "GET", "/api/state", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body struct {
		Restaurants []domain.Restaurant `json:"restaurants"`
		Orders      []domain.Order      `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Restaurants, 1)
	assert.Len(t, body.Orders, 3)
}

func TestGetState_ServiceFailure(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("State").Return(nil, nil, assert.AnError)

	rec := doRequest(router, "GET", "/api/state", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAddOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(board *mocks.BoardServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"restaurant":"Tacos El Rey","amount":100}`,
			setupMock: func(board *mocks.BoardServiceInterface) {
				board.On("AddOrder", "Tacos El Rey", 100.0).
					Return(&domain.Order{ID: "o1", Restaurant: "Tacos El Rey", Amount: 100}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid amount",
			body: `{"restaurant":"Tacos El Rey","amount":-1}`,
			setupMock: func(board *mocks.BoardServiceInterface) {
				board.On("AddOrder", "Tacos El Rey", -1.0).Return(nil, service.ErrInvalidAmount)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed JSON",
			body:           `{not json`,
			setupMock:      func(*mocks.BoardServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, board, _, _ := newTestRouter()
			tt.setupMock(board)

			rec := doRequest(router, "POST", "/api/orders", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			board.AssertExpectations(t)
		})
	}
}

func TestUpdateOrder_NotFound(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("UpdateOrder", "ghost", mock.Anything, mock.Anything).
		Return(nil, service.ErrOrderNotFound)

	rec := doRequest(router, "PUT", "/api/orders/ghost", `{"amount":50}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteOrderHandler(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("DeleteOrder", "o1").Return(nil)

	rec := doRequest(router, "DELETE", "/api/orders/o1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestClearHistoryHandler(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("ClearHistory").Return(nil)

	rec := doRequest(router, "POST", "/api/orders/clear", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddRestaurant(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("AddRestaurant", "Tacos El Rey").
		Return(&domain.Restaurant{Name: "Tacos El Rey", CreatedAt: time.Now().UTC()}, nil)

	rec := doRequest(router, "POST", "/api/restaurants", `{"name":"Tacos El Rey"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tacos El Rey")
}

func TestDeleteRestaurant_NotFoundStatus(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("DeleteRestaurant", "Ghost").Return(service.ErrRestaurantNotFound)

	rec := doRequest(router, "DELETE", "/api/restaurants/Ghost", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedOrders(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("Seed", mock.MatchedBy(func(cfg service.SeedConfig) bool {
		return cfg.PerDayMin == 2
	})).Return(42, nil)

	rec := doRequest(router, "POST", "/api/seed", `{"perDayMin":2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"created":42`)
}

func TestSeedOrders_NoRestaurants(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("Seed", mock.AnythingOfType("service.SeedConfig")).
		Return(0, service.ErrNoRestaurants)

	rec := doRequest(router, "POST", "/api/seed", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHistory(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("State").Return([]domain.Restaurant{}, boardOrders(t), nil)

	rec := doRequest(router, "GET", "/api/history?size=2&page=1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Orders  []domain.Order `json:"orders"`
		Page    int            `json:"page"`
		Pages   int            `json:"pages"`
		Total   int            `json:"total"`
		Summary struct {
			Count int     `json:"count"`
			Total float64 `json:"totalAmount"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Len(t, body.Orders, 2)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 2, body.Pages)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 3, body.Summary.Count)
	assert.Equal(t, 220.0, body.Summary.Total)
	// Default sort is newest first.
	assert.Equal(t, "o3", body.Orders[0].ID)
}

func TestGetHistory_InvalidPage(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("State").Return([]domain.Restaurant{}, []domain.Order{}, nil)

	rec := doRequest(router, "GET", "/api/history?page=-1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("State").Return([]domain.Restaurant{}, boardOrders(t), nil)

	rec := doRequest(router, "GET", "/api/export.csv", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), `"Fecha (MX)","ISO","Restaurante","Monto"`))
	assert.Contains(t, rec.Body.String(), `"04/03/24, 08:00","2024-03-04T14:00:00Z","Tacos El Rey","100"`)
}

func TestGetHourlyReport(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("State").Return([]domain.Restaurant{}, boardOrders(t), nil)

	rec := doRequest(router, "GET", "/api/reports/hourly?date=2024-03-04", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var h struct {
		Labels []string  `json:"labels"`
		Counts []int     `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	require.Len(t, h.Labels, 17)
	assert.Equal(t, 1, h.Counts[0]) // 08:00 local
	assert.Equal(t, 1, h.Counts[1])
	assert.Equal(t, 1, h.Counts[2])
}

func TestGetRangeReport_MissingParams(t *testing.T) {
	router, _, _, _ := newTestRouter()

	rec := doRequest(router, "GET", "/api/reports/range?from=2024-03-01", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMonthReport(t *testing.T) {
	router, board, _, _ := newTestRouter()

	board.On("State").Return([]domain.Restaurant{}, boardOrders(t), nil)

	rec := doRequest(router, "GET", "/api/reports/month?year=2024&month=3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"from":"2024-03-01"`)
	assert.Contains(t, rec.Body.String(), `"to":"2024-03-31"`)
}

func TestGetMonthReport_InvalidMonth(t *testing.T) {
	router, _, _, _ := newTestRouter()

	rec := doRequest(router, "GET", "/api/reports/month?year=2024&month=13", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderQRCode(t *testing.T) {
	router, board, _, qr := newTestRouter()

	board.On("State").Return([]domain.Restaurant{}, boardOrders(t), nil)
	qr.On("Generate", "o1").Return([]byte("png-bytes"), nil)

	rec := doRequest(router, "GET", "/api/orders/o1/qrcode", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestGetOrderQRCode_NotFound(t *testing.T) {
	router, board, _, qr := newTestRouter()

	board.On("State").Return([]domain.Restaurant{}, []domain.Order{}, nil)

	rec := doRequest(router, "GET", "/api/orders/ghost/qrcode", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	qr.AssertNotCalled(t, "Generate", mock.Anything)
}

func TestGetDailyAnalytics(t *testing.T) {
	router, _, analytics, _ := newTestRouter()

	analytics.On("Daily", "2024-03-04").Return(&storage.DailySnapshot{
		Date:    "2024-03-04",
		Orders:  12,
		Revenue: 840.5,
		ByRestaurant: map[string]float64{
			"Tacos El Rey": 500,
		},
	}, nil)

	rec := doRequest(router, "GET", "/api/analytics/daily?date=2024-03-04", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2024-03-04"`)
	assert.Contains(t, rec.Body.String(), "840.5")
}

func TestGetDailyAnalytics_Failure(t *testing.T) {
	router, _, analytics, _ := newTestRouter()

	analytics.On("Daily", mock.Anything).Return(nil, assert.AnError)

	rec := doRequest(router, "GET", "/api/analytics/daily", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
