// Package refresh выдаёт новый access-токен по refresh-токену из
// заголовка Authorization.
package refresh

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/auth"
)

// Service описывает обновление токена.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновление access-токена
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=auth.TokenPair}
// @Failure 401 {object} response.ErrorResponse
// @Router /user/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := middlewarectx.BearerToken(r)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	pair, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		log.Info("refresh rejected", sl.Err(err))
		w.Header().Set("WWW-Authenticate", "Bearer")
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(pair))
}
