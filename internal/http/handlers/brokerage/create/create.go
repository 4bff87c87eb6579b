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

// Request — новая запись каталога.
type Request struct {
	Name  string `json:"brokerage_name" validate:"required,max=250"`
	Route string `json:"brokerage_route" validate:"required,max=250"`
	Icon  string `json:"brokerage_icon" validate:"max=250"`
}

type Service interface {
	Create(ctx context.Context, b models.Brokerage) (*models.Brokerage, error)
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
// @Summary Добавление брокера в каталог
// @Tags Brokerages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Брокер"
// @Success 201 {object} response.Response{data=models.Brokerage}
// @Failure 422 {object} response.ErrorResponse
// @Router /brokerages [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.brokerage.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	b, err := h.service.Create(r.Context(), models.Brokerage{Name: req.Name, Route: req.Route, Icon: req.Icon})
	if err != nil {
		log.Error("failed to create brokerage", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(b))
}
