// Package read отдаёт подключение пользователя к брокеру. Пользователь
// берётся из параметра пути user_id (маршрут бота под Basic) либо из
// учётной записи, положенной JWT middleware.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/request"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

type Service interface {
	GetConnection(ctx context.Context, userID, brokerageID int64) (*models.UserBrokerage, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подключение к брокеру
// @Tags UserBrokerages
// @Produce json
// @Security BearerAuth
// @Param brokerage_id path int true "ID брокера"
// @Success 200 {object} response.Response{data=models.UserBrokerage}
// @Failure 404 {object} response.ErrorResponse
// @Router /user_brokerages/{brokerage_id} [get]
// @Router /user_brokerages/{brokerage_id}/{user_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.userbrokerage.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	brokerageID, ok := request.IDParam(w, r, log, "brokerage_id")
	if !ok {
		return
	}

	var userID int64
	if chi.URLParam(r, "user_id") != "" {
		if userID, ok = request.IDParam(w, r, log, "user_id"); !ok {
			return
		}
	} else {
		acc, ok := middlewarectx.AccountFromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("not authenticated"))
			return
		}
		userID = acc.ID
	}

	ub, err := h.service.GetConnection(r.Context(), userID, brokerageID)
	if err != nil {
		log.Info("failed to read connection", sl.AccountID(userID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(ub))
}
