package list

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
	List(ctx context.Context, limit, offset int) ([]*models.Account, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список учётных записей
// @Tags Accounts
// @Produce json
// @Security BasicAuth
// @Param limit query int false "Лимит" default(100)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} response.Response{data=[]models.Account}
// @Router /admin/accounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := request.Pagination(r)
	accounts, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(accounts))
}
