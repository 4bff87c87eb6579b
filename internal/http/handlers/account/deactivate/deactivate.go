package deactivate

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
	Deactivate(ctx context.Context, id int64) (*models.Account, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Деактивация учётной записи
// @Tags Accounts
// @Produce json
// @Security BasicAuth
// @Param id path int true "ID учётной записи"
// @Success 200 {object} response.Response{data=models.Account}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Уже неактивна"
// @Router /admin/accounts/{id}/deactivate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.deactivate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}

	acc, err := h.service.Deactivate(r.Context(), id)
	if err != nil {
		log.Info("deactivation rejected", sl.AccountID(id), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("account deactivated", sl.AccountID(id))
	render.JSON(w, r, response.StatusOKWithData(acc))
}
