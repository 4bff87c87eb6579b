// Package create реализует создание учётной записи администратором
// (Basic-аутентификация).
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

// Request — данные новой учётной записи.
type Request struct {
	Name        string `json:"complete_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Password    string `json:"password" validate:"required,min=6"`
	IsSuperuser bool   `json:"is_superuser"`
}

type Service interface {
	Create(ctx context.Context, name, email, rawPassword string, isSuperuser bool) (*models.Account, error)
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
// @Summary Создание пользователя
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body Request true "Новая учётная запись"
// @Success 201 {object} response.Response{data=models.Account}
// @Failure 400 {object} response.ErrorResponse "Email уже занят"
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /user/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	acc, err := h.service.Create(r.Context(), req.Name, req.Email, req.Password, req.IsSuperuser)
	if err != nil {
		log.Error("failed to create account", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("account created", sl.AccountID(acc.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(acc))
}
