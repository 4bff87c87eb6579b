// Package create принимает ордер, отправленный ботом брокеру.
package create

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
	Create(ctx context.Context, in models.NewTradeOrder) (*models.TradeOrder, error)
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
// @Summary Запись ордера ботом
// @Tags TradeOrders
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body models.NewTradeOrder true "Ордер"
// @Success 201 {object} response.Response{data=models.TradeOrder}
// @Failure 422 {object} response.ErrorResponse
// @Router /trade_order_info/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tradeorder.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.NewTradeOrder
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create trade order", sl.AccountID(req.UserID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("trade order created", sl.AccountID(req.UserID), slog.Int64("id", order.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(order))
}
