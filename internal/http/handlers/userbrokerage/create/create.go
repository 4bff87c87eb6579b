package create

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

// Request — подключение к брокеру. Пароль хранится в base64.
type Request struct {
	BrokerageID int64 `json:"brokerage_id" validate:"required,gt=0"`
	models.UserBrokeragePatch
}

type Service interface {
	CreateConnection(ctx context.Context, userID, brokerageID int64, patch models.UserBrokeragePatch) (*models.UserBrokerage, error)
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
// @Summary Подключение к брокеру
// @Tags UserBrokerages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Подключение"
// @Success 201 {object} response.Response{data=models.UserBrokerage}
// @Failure 404 {object} response.ErrorResponse "Брокер не найден"
// @Failure 409 {object} response.ErrorResponse "Уже подключён"
// @Router /user_brokerages [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.userbrokerage.create"

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

	var req Request
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	ub, err := h.service.CreateConnection(r.Context(), acc.ID, req.BrokerageID, req.UserBrokeragePatch)
	if err != nil {
		log.Error("failed to create connection", sl.AccountID(acc.ID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(ub))
}
