package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/password"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/account"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/auth"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/botoptions"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/brokerage"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/siteoption"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/tradeorder"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/tradepair"
)

type mapping struct {
	target error
	status int
	msg    string
}

var mappings = []mapping{
	{auth.ErrInvalidFormat, http.StatusUnprocessableEntity, "invalid identifier format"},
	{auth.ErrUnsupportedIdentifier, http.StatusUnprocessableEntity, "only email login is supported"},
	{auth.ErrInvalidCredentials, http.StatusBadRequest, "incorrect email or password"},
	{auth.ErrTokenExpired, http.StatusUnauthorized, "token expired"},
	{auth.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
	{auth.ErrUnauthorized, http.StatusUnauthorized, "incorrect username or password"},
	{auth.ErrMisconfiguredServer, http.StatusInternalServerError, "server misconfigured"},
	{account.ErrPlanExpired, http.StatusForbidden, "plan expired"},
	{account.ErrNotFound, http.StatusNotFound, "account not found"},
	{account.ErrAlreadyActive, http.StatusConflict, "account already active"},
	{account.ErrAlreadyInactive, http.StatusConflict, "account already inactive"},
	{account.ErrEmailTaken, http.StatusBadRequest, "account with this email already exists"},
	{password.ErrTooLong, http.StatusUnprocessableEntity, "password must be at most 72 bytes"},
	{botoptions.ErrNotFound, http.StatusNotFound, "bot options not found"},
	{brokerage.ErrNotFound, http.StatusNotFound, "brokerage not found"},
	{brokerage.ErrAlreadyConnected, http.StatusConflict, "brokerage already connected"},
	{tradeorder.ErrNotFound, http.StatusNotFound, "no trade orders found"},
	{siteoption.ErrNotFound, http.StatusNotFound, "site option not found"},
	{tradepair.ErrNotFound, http.StatusNotFound, "trade pair not found"},
	{tradepair.ErrAlreadyExists, http.StatusConflict, "trade pair already exists"},
}

// StatusFor возвращает HTTP-статус и текст для ошибки сервиса.
// Неизвестные ошибки считаются внутренними.
func StatusFor(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "internal error"
}

// WriteError отвечает конвертом ошибки со статусом из StatusFor.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := StatusFor(err)
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}
