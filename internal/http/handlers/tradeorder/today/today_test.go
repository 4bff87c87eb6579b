package today

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/tradeorder"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListToday(ctx context.Context, userID, brokerageID int64) ([]*models.TradeOrder, error) {
	args := m.Called(ctx, userID, brokerageID)
	orders, _ := args.Get(0).([]*models.TradeOrder)
	return orders, args.Error(1)
}

func TestTodayHandler(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "ордера найдены",
			setupMock: func(m *MockService) {
				m.On("ListToday", mock.Anything, int64(4), int64(2)).
					Return([]*models.TradeOrder{{ID: 1, Symbol: "EURUSD"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"symbol":"EURUSD"`,
		},
		{
			name: "ордеров за сегодня нет",
			setupMock: func(m *MockService) {
				m.On("ListToday", mock.Anything, int64(4), int64(2)).Return(nil, tradeorder.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `no trade orders found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/trade_order_info/today/2", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("brokerage_id", "2")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.AccountKey, &models.Account{ID: 4})
			w := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
