package update

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

type Service interface {
	Update(ctx context.Context, userID int64, patch models.BotOptionsPatch) (*models.BotOptions, error)
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
// @Summary Изменение настроек бота
// @Description Меняются только переданные поля.
// @Tags BotOptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BotOptionsPatch true "Изменения"
// @Success 200 {object} response.Response{data=models.BotOptions}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /bot-options [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.botoptions.update"

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

	var patch models.BotOptionsPatch
	if !request.DecodeJSON(w, r, log, h.validate, &patch) {
		return
	}

	opts, err := h.service.Update(r.Context(), acc.ID, patch)
	if err != nil {
		log.Error("failed to update bot options", sl.AccountID(acc.ID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("bot options updated", sl.AccountID(acc.ID))
	render.JSON(w, r, response.StatusOKWithData(opts))
}
