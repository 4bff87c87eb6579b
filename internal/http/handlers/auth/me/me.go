// Package me возвращает учётную запись владельца токена.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.Account}
// @Failure 401 {object} response.ErrorResponse
// @Router /user/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	acc, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		h.log.Error("account missing in context", slog.String("op", "handlers.auth.me"))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(acc))
}
