package update

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

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/botoptions"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Update(ctx context.Context, userID int64, patch models.BotOptionsPatch) (*models.BotOptions, error) {
	args := m.Called(ctx, userID, patch)
	opts, _ := args.Get(0).(*models.BotOptions)
	return opts, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		withAccount    bool
		setupMock      func(*ServiceMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "частичное обновление",
			body:        `{"bot_status":true,"stop_win":50}`,
			withAccount: true,
			setupMock: func(m *ServiceMock) {
				m.On("Update", mock.Anything, int64(9), mock.MatchedBy(func(p models.BotOptionsPatch) bool {
					return p.BotStatus != nil && *p.BotStatus && p.StopWin != nil && *p.StopWin == 50 && p.StopLoss == nil
				})).Return(&models.BotOptions{UserID: 9, BotStatus: true, StopWin: 50}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"stop_win":50`,
		},
		{
			name:           "отрицательный stop_loss",
			body:           `{"stop_loss":-1}`,
			withAccount:    true,
			setupMock:      func(_ *ServiceMock) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "настройки не найдены",
			body:        `{}`,
			withAccount: true,
			setupMock: func(m *ServiceMock) {
				m.On("Update", mock.Anything, int64(9), mock.Anything).Return(nil, botoptions.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `bot options not found`,
		},
		{
			name:           "без учётной записи в контексте",
			body:           `{}`,
			setupMock:      func(_ *ServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPut, "/bot-options", strings.NewReader(tt.body))
			if tt.withAccount {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.AccountKey, &models.Account{ID: 9}))
			}
			w := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
