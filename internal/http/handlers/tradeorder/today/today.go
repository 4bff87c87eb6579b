package today

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/request"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

type Service interface {
	ListToday(ctx context.Context, userID, brokerageID int64) ([]*models.TradeOrder, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Ордера за сегодня
// @Description Сутки считаются по UTC.
// @Tags TradeOrders
// @Produce json
// @Security BearerAuth
// @Param brokerage_id path int true "ID брокера"
// @Success 200 {object} response.Response{data=[]models.TradeOrder}
// @Failure 404 {object} response.ErrorResponse "Ордеров нет"
// @Router /trade_order_info/today/{brokerage_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tradeorder.today"

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

	orders, err := h.service.ListToday(r.Context(), acc.ID, brokerageID)
	if err != nil {
		log.Info("no trade orders for today", sl.AccountID(acc.ID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(orders))
}
