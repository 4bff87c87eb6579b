package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/request"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

type Service interface {
	Delete(ctx context.Context, id int64) (*models.TradePair, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление торговой пары
// @Description Возвращает удалённую запись.
// @Tags TradePairs
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пары"
// @Success 200 {object} response.Response{data=models.TradePair}
// @Failure 404 {object} response.ErrorResponse
// @Router /trade_pairs/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tradepair.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}

	tp, err := h.service.Delete(r.Context(), id)
	if err != nil {
		log.Info("failed to delete trade pair", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	log.Info("trade pair deleted", slog.Int64("trade_pair_id", id))
	render.JSON(w, r, response.StatusOKWithData(tp))
}
