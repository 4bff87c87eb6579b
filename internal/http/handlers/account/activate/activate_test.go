package activate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/account"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Activate(ctx context.Context, id int64, days int) (*models.Account, error) {
	args := m.Called(ctx, id, days)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestActivateHandler(t *testing.T) {
	weekly := "weekly"

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*ServiceMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "план weekly",
			id:   "4",
			body: `{"days":7}`,
			setupMock: func(m *ServiceMock) {
				m.On("Activate", mock.Anything, int64(4), 7).
					Return(&models.Account{ID: 4, IsActive: true, CurrentPlan: &weekly}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"current_plan":"weekly"`,
		},
		{
			name: "уже активна",
			id:   "4",
			body: `{"days":7}`,
			setupMock: func(m *ServiceMock) {
				m.On("Activate", mock.Anything, int64(4), 7).Return(nil, account.ErrAlreadyActive)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `account already active`,
		},
		{
			name: "нет такой записи",
			id:   "99",
			body: `{"days":1}`,
			setupMock: func(m *ServiceMock) {
				m.On("Activate", mock.Anything, int64(99), 1).Return(nil, account.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "некорректный id",
			id:             "x",
			body:           `{"days":1}`,
			setupMock:      func(_ *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/admin/accounts/"+tt.id+"/activate", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
