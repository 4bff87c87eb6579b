package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/request"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

// Request — новое значение опции.
type Request struct {
	KeyValue string `json:"key_value" validate:"required"`
}

type Service interface {
	Update(ctx context.Context, name, value string) (*models.SiteOption, error)
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
// @Summary Изменение опции сайта
// @Tags SiteOptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Имя опции"
// @Param request body Request true "Значение"
// @Success 200 {object} response.Response{data=models.SiteOption}
// @Failure 404 {object} response.ErrorResponse
// @Router /site_options/{name} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.siteoption.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, "name")
	var req Request
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	opt, err := h.service.Update(r.Context(), name, req.KeyValue)
	if err != nil {
		log.Error("failed to update site option", slog.String("name", name), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("site option updated", slog.String("name", name))
	render.JSON(w, r, response.StatusOKWithData(opt))
}
