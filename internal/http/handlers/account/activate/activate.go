// Package activate выдаёт учётной записи план на заданное число дней.
package activate

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

// Request — длительность плана в днях: 1, 7 или 30. Иное значение
// активирует без плана.
type Request struct {
	Days int `json:"days" validate:"gte=0"`
}

type Service interface {
	Activate(ctx context.Context, id int64, days int) (*models.Account, error)
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
// @Summary Активация учётной записи
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "ID учётной записи"
// @Param request body Request true "Длительность плана"
// @Success 200 {object} response.Response{data=models.Account}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Уже активна"
// @Router /admin/accounts/{id}/activate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	var req Request
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	acc, err := h.service.Activate(r.Context(), id, req.Days)
	if err != nil {
		log.Info("activation rejected", sl.AccountID(id), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("account activated", sl.AccountID(id), slog.String("plan", acc.Plan()))
	render.JSON(w, r, response.StatusOKWithData(acc))
}
