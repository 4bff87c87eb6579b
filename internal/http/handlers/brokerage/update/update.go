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
	Update(ctx context.Context, id int64, patch models.BrokeragePatch) (*models.Brokerage, error)
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
// @Summary Изменение записи каталога
// @Tags Brokerages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брокера"
// @Param request body models.BrokeragePatch true "Изменения"
// @Success 200 {object} response.Response{data=models.Brokerage}
// @Failure 404 {object} response.ErrorResponse
// @Router /brokerages/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.brokerage.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	var patch models.BrokeragePatch
	if !request.DecodeJSON(w, r, log, h.validate, &patch) {
		return
	}

	b, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		log.Error("failed to update brokerage", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(b))
}
