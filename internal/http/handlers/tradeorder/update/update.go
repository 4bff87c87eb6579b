package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/request"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

type Service interface {
	UpdateStatus(ctx context.Context, id, userID int64, patch models.TradeOrderPatch) (*models.TradeOrder, error)
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
// @Summary Обновление ордера ботом
// @Description Ордер ищется по id и user_id. Переход в closed отправляет уведомление.
// @Tags TradeOrders
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body models.TradeOrderUpdate true "Изменения"
// @Success 200 {object} response.Response{data=models.TradeOrder}
// @Failure 404 {object} response.ErrorResponse
// @Router /trade_order_info/update [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tradeorder.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.TradeOrderUpdate
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), req.ID, req.UserID, req.TradeOrderPatch)
	if err != nil {
		log.Info("failed to update trade order", slog.Int64("id", req.ID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(order))
}
