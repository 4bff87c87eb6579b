// Package payment принимает уведомления платёжной системы об оплате и
// продлевает план покупателя.
package payment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/request"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/plan"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

// Request — оплаченный продукт и email покупателя.
type Request struct {
	Email   string `json:"email" validate:"required,email"`
	Product string `json:"product" validate:"required"`
}

type Service interface {
	ActivateByEmail(ctx context.Context, email, planCode string) (*models.Account, error)
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
// @Summary Вебхук оплаты
// @Description План выбирается по названию продукта. Повторная оплата перезапускает срок.
// @Tags Webhook
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body Request true "Оплата"
// @Success 200 {object} response.Response{data=models.Account}
// @Failure 404 {object} response.ErrorResponse
// @Router /webhook/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.payment"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	code := plan.SelectFromProduct(req.Product)
	acc, err := h.service.ActivateByEmail(r.Context(), req.Email, code)
	if err != nil {
		log.Error("payment activation failed", slog.String("product", req.Product), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("plan renewed by payment", sl.AccountID(acc.ID), slog.String("plan", acc.Plan()))
	render.JSON(w, r, response.StatusOKWithData(acc))
}
