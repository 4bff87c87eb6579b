package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/request"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

type Service interface {
	UpdateConnection(ctx context.Context, userID, brokerageID int64, patch models.UserBrokeragePatch) (*models.UserBrokerage, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменение подключения к брокеру
// @Tags UserBrokerages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param brokerage_id path int true "ID брокера"
// @Param request body models.UserBrokeragePatch true "Изменения"
// @Success 200 {object} response.Response{data=models.UserBrokerage}
// @Failure 404 {object} response.ErrorResponse
// @Router /user_brokerages/{brokerage_id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.userbrokerage.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}
	brokerageID, ok := request.IDParam(w, r, log, "brokerage_id")
	if !ok {
		return
	}

	var patch models.UserBrokeragePatch
	if !request.DecodeJSON(w, r, log, h.validate, &patch) {
		return
	}

	ub, err := h.service.UpdateConnection(r.Context(), acc.ID, brokerageID, patch)
	if err != nil {
		log.Error("failed to update connection", sl.AccountID(acc.ID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(ub))
}
