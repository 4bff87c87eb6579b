// Package auth проверяет учётные данные, выдаёт токены при входе и
// определяет текущую учётную запись по bearer-токену.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/metrics"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/password"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/account"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

// Время жизни токенов, выдаваемых при входе.
const (
	LoginAccessTTL  = 12 * time.Hour
	LoginRefreshTTL = 30 * 24 * time.Hour
)

// TokenTypeBearer — значение token_type в ответе.
const TokenTypeBearer = "bearer"

var identifierRe = regexp.MustCompile(`^[\w.+\-]+@[a-zA-Z0-9\-]+\.[a-zA-Z0-9\-.]+$|^\w+$`)

// AccountFinder ищет учётную запись по email.
type AccountFinder interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// Lifecycle — операции жизненного цикла, нужные при входе.
type Lifecycle interface {
	CheckAndEnforceExpiry(ctx context.Context, id int64) error
	RecordLogin(ctx context.Context, id int64) error
}

// TokenMaker выдаёт и проверяет токены.
type TokenMaker interface {
	IssueAccess(subject string, ttl time.Duration) (string, error)
	IssueRefresh(subject string, ttl time.Duration) (string, error)
	Verify(token string, expected jwt.TokenType) (string, error)
	VerifyRefresh(token string) (string, error)
}

// BasicCredentials — ожидаемые учётные данные служебных эндпоинтов.
type BasicCredentials struct {
	User string
	Pass string
}

// TokenPair — ответ на вход и обновление токена.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Service — проверка учётных данных и сессий.
type Service struct {
	accounts  AccountFinder
	lifecycle Lifecycle
	tokens    TokenMaker
	basic     BasicCredentials
	log       *slog.Logger
}

// New создаёт Service.
func New(accounts AccountFinder, lifecycle Lifecycle, tokens TokenMaker, basic BasicCredentials, log *slog.Logger) *Service {
	return &Service{
		accounts:  accounts,
		lifecycle: lifecycle,
		tokens:    tokens,
		basic:     basic,
		log:       log,
	}
}

// Authenticate проверяет пару email/пароль и возвращает учётную запись.
func (s *Service) Authenticate(ctx context.Context, identifier, secret string) (*models.Account, error) {
	const op = "auth.Authenticate"

	if !identifierRe.MatchString(identifier) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidFormat)
	}
	if !strings.Contains(identifier, "@") {
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedIdentifier)
	}

	a, err := s.accounts.GetAccountByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !password.Verify(secret, a.PasswordHash) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	return a, nil
}

// AuthenticateBasic сравнивает учётные данные Basic с настроенными за постоянное время.
func (s *Service) AuthenticateBasic(username, pass string) (string, error) {
	const op = "auth.AuthenticateBasic"

	if s.basic.User == "" || s.basic.Pass == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMisconfiguredServer)
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.basic.User))
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.basic.Pass))
	if userOK&passOK != 1 {
		return "", fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	return username, nil
}

// ResolveCurrentAccount возвращает владельца access-токена.
func (s *Service) ResolveCurrentAccount(ctx context.Context, bearerToken string) (*models.Account, error) {
	const op = "auth.ResolveCurrentAccount"

	email, err := s.tokens.Verify(bearerToken, jwt.Access)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, tokenError(err))
	}
	a, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// Login проверяет учётные данные и срок плана, выдаёт пару токенов и
// отмечает вход.
func (s *Service) Login(ctx context.Context, identifier, secret string) (*TokenPair, error) {
	const op = "auth.Login"
	log := s.log.With(sl.Op(op))

	a, err := s.Authenticate(ctx, identifier, secret)
	if err != nil {
		metrics.RecordLogin(loginResult(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.lifecycle.CheckAndEnforceExpiry(ctx, a.ID); err != nil {
		metrics.RecordLogin(loginResult(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	access, err := s.tokens.IssueAccess(a.Email, LoginAccessTTL)
	if err != nil {
		metrics.RecordLogin(metrics.LoginInternalFail)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refresh, err := s.tokens.IssueRefresh(a.Email, LoginRefreshTTL)
	if err != nil {
		metrics.RecordLogin(metrics.LoginInternalFail)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.lifecycle.RecordLogin(ctx, a.ID); err != nil {
		metrics.RecordLogin(metrics.LoginInternalFail)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	log.Info("user logged in", sl.AccountID(a.ID))
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: TokenTypeBearer}, nil
}

// Refresh выдаёт новый access-токен со сроком по умолчанию по refresh-токену.
func (s *Service) Refresh(_ context.Context, refreshToken string) (*TokenPair, error) {
	const op = "auth.Refresh"

	email, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, tokenError(err))
	}
	access, err := s.tokens.IssueAccess(email, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &TokenPair{AccessToken: access, TokenType: TokenTypeBearer}, nil
}

func tokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return metrics.LoginInvalid
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrUnsupportedIdentifier):
		return metrics.LoginBadFormat
	case errors.Is(err, account.ErrPlanExpired):
		return metrics.LoginPlanExpired
	default:
		return metrics.LoginInternalFail
	}
}
