package payment

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/account"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ActivateByEmail(ctx context.Context, email, planCode string) (*models.Account, error) {
	args := m.Called(ctx, email, planCode)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestPaymentWebhook(t *testing.T) {
	monthly := "monthly"

	tests := []struct {
		name           string
		body           string
		wantPlan       string
		mockErr        error
		callService    bool
		expectedStatus int
	}{
		{
			name:           "план по названию продукта",
			body:           `{"email":"a@example.com","product":"Bot Semanal"}`,
			wantPlan:       "weekly",
			callService:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "неизвестный продукт передаётся пустым кодом",
			body:           `{"email":"a@example.com","product":"Mystery"}`,
			wantPlan:       "",
			callService:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "покупатель не найден",
			body:           `{"email":"ghost@example.com","product":"Mensal"}`,
			wantPlan:       "monthly",
			mockErr:        account.ErrNotFound,
			callService:    true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "нет продукта",
			body:           `{"email":"a@example.com"}`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callService {
				email := "a@example.com"
				if strings.Contains(tt.body, "ghost") {
					email = "ghost@example.com"
				}
				var acc *models.Account
				if tt.mockErr == nil {
					acc = &models.Account{ID: 1, Email: email, IsActive: true, CurrentPlan: &monthly}
				}
				svc.On("ActivateByEmail", mock.Anything, email, tt.wantPlan).Return(acc, tt.mockErr)
			}

			req := httptest.NewRequest(http.MethodPost, "/webhook/payment", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
