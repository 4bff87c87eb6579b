// Package middlewarectx содержит HTTP middleware аутентификации,
// ограничения частоты запросов и сбора метрик.
//
// JWTMiddleware проверяет bearer-токен из заголовка Authorization, находит
// владельца через сервис аутентификации и кладёт учётную запись в контекст.
// BasicAuthMiddleware защищает служебные эндпоинты бота и админки.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// AccountKey — ключ текущей учётной записи в контексте.
	AccountKey Key = "account"
	// BasicUserKey — ключ имени пользователя Basic в контексте.
	BasicUserKey Key = "basic_user"
)

// SessionResolver определяет учётную запись по access-токену.
type SessionResolver interface {
	ResolveCurrentAccount(ctx context.Context, bearerToken string) (*models.Account, error)
}

// BasicVerifier проверяет учётные данные Basic.
type BasicVerifier interface {
	AuthenticateBasic(username, password string) (string, error)
}

// BearerToken достаёт токен из заголовка Authorization.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// JWTMiddleware возвращает middleware, пропускающий только запросы с
// действительным access-токеном существующей учётной записи.
func JWTMiddleware(resolver SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := BearerToken(r)
			if !ok {
				log.Info("missing or invalid authorization header")
				w.Header().Set("WWW-Authenticate", "Bearer")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}

			acc, err := resolver.ResolveCurrentAccount(r.Context(), tokenStr)
			if err != nil {
				log.Info("session rejected", sl.Err(err))
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), AccountKey, acc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext возвращает учётную запись, положенную JWTMiddleware.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	acc, ok := ctx.Value(AccountKey).(*models.Account)
	return acc, ok && acc != nil
}

// BasicAuthMiddleware пропускает запросы с верными учётными данными Basic.
func BasicAuthMiddleware(verifier BasicVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.BasicAuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, pass, _ := r.BasicAuth()
			name, err := verifier.AuthenticateBasic(user, pass)
			if err != nil {
				log.Warn("basic auth rejected", sl.Err(err))
				w.Header().Set("WWW-Authenticate", "Basic")
				response.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), BasicUserKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
