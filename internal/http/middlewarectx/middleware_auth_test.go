package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/auth"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) ResolveCurrentAccount(ctx context.Context, token string) (*models.Account, error) {
	args := m.Called(ctx, token)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

type BasicMock struct {
	mock.Mock
}

func (m *BasicMock) AuthenticateBasic(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockAcc        *models.Account
		mockErr        error
		wantStatusCode int
		wantCalled     bool
		wantBody       string
	}{
		{
			name:           "missing Authorization header",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired",
			mockErr:        auth.ErrTokenExpired,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "token expired",
		},
		{
			name:           "unknown account",
			authHeader:     "Bearer orphan",
			mockErr:        auth.ErrUnauthenticated,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "not authenticated",
		},
		{
			name:           "storage failure",
			authHeader:     "Bearer token",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer validtoken",
			mockAcc:        &models.Account{ID: 5, Email: "user@example.com"},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(ResolverMock)
			if tt.mockAcc != nil || tt.mockErr != nil {
				resolver.On("ResolveCurrentAccount", mock.Anything, tt.authHeader[len("Bearer "):]).
					Return(tt.mockAcc, tt.mockErr).Once()
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				acc, ok := middlewarectx.AccountFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, int64(5), acc.ID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(resolver, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestBasicAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		user, pass string
		setAuth    bool
		mockErr    error
		wantStatus int
		wantCalled bool
	}{
		{name: "valid", user: "bot", pass: "pw", setAuth: true, wantStatus: http.StatusOK, wantCalled: true},
		{name: "wrong password", user: "bot", pass: "bad", setAuth: true, mockErr: auth.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "no header", mockErr: auth.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "server misconfigured", user: "bot", pass: "pw", setAuth: true, mockErr: auth.ErrMisconfiguredServer, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(BasicMock)
			verifier.On("AuthenticateBasic", tt.user, tt.pass).Return(tt.user, tt.mockErr).Once()

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, tt.user, r.Context().Value(middlewarectx.BasicUserKey))
			})

			req := httptest.NewRequest(http.MethodPost, "/trade_order_info/create", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()

			middlewarectx.BasicAuthMiddleware(verifier, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled && tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
			}
			verifier.AssertExpectations(t)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), rate.Limit(1), 2)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"), "other clients keep their own budget")
}

func TestRateLimitMiddleware_IgnoresForwardedHeaders(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middlewarectx.PeerAddrMiddleware, middleware.RealIP)
	r.With(middlewarectx.RateLimitMiddleware(newNoopLogger(), rate.Limit(1), 5)).
		Post("/user/login", func(w http.ResponseWriter, r *http.Request) {})

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", "203.0.113."+strconv.Itoa(i))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed, "смена X-Forwarded-For не даёт нового лимита")
}

func TestPeerHost(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4000"
	assert.Equal(t, "192.0.2.7", middlewarectx.PeerHost(req))

	var seen string
	h := middlewarectx.PeerAddrMiddleware(middleware.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middlewarectx.PeerHost(r)
	})))
	req.Header.Set("X-Real-IP", "198.51.100.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.7", seen)
}
