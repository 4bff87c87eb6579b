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
	Update(ctx context.Context, id int64, patch models.TradePairPatch) (*models.TradePair, error)
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
// @Summary Переименование торговой пары
// @Tags TradePairs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пары"
// @Param request body models.TradePairPatch true "Изменения"
// @Success 200 {object} response.Response{data=models.TradePair}
// @Failure 404 {object} response.ErrorResponse
// @Router /trade_pairs/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tradepair.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	var patch models.TradePairPatch
	if !request.DecodeJSON(w, r, log, h.validate, &patch) {
		return
	}

	tp, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		log.Error("failed to update trade pair", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(tp))
}
