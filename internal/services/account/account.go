// Package account управляет жизненным циклом учётной записи: созданием,
// активацией плана, деактивацией и ленивым истечением плана при входе.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/metrics"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/password"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/plan"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

// Repository описывает хранилище учётных записей.
type Repository interface {
	// CreateAccount сохраняет учётную запись вместе с настройками бота по умолчанию.
	CreateAccount(ctx context.Context, na models.NewAccount) (*models.Account, error)
	// GetAccountByID возвращает учётную запись по id.
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	// GetAccountByEmail возвращает учётную запись по email без учёта регистра.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	// ListAccounts возвращает страницу учётных записей.
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
	// UpdateAccount выполняет чтение, mutate и запись в одной транзакции с блокировкой строки.
	UpdateAccount(ctx context.Context, id int64, mutate func(*models.Account) error) (*models.Account, error)
}

// Service — менеджер жизненного цикла учётных записей.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New создаёт Service.
func New(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// civilNow — текущий момент в часовом поясе сервиса, без долей секунды.
func (s *Service) civilNow() time.Time {
	return plan.In(s.now()).Truncate(time.Second)
}

// Create регистрирует неактивную учётную запись.
func (s *Service) Create(ctx context.Context, name, email, rawPassword string, isSuperuser bool) (*models.Account, error) {
	const op = "account.Create"

	hash, err := password.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a, err := s.repo.CreateAccount(ctx, models.NewAccount{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		IsSuperuser:  isSuperuser,
		CreatedAt:    s.civilNow(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	s.log.Info("account created", sl.Op(op), sl.AccountID(a.ID))
	return a, nil
}

// Get возвращает учётную запись по id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Account, error) {
	const op = "account.Get"
	a, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return a, nil
}

// List возвращает страницу учётных записей.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "account.List"
	accounts, err := s.repo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return accounts, nil
}

// Activate включает учётную запись на days дней.
// 1, 7 и 30 дней соответствуют daily, weekly и monthly; для других
// значений план остаётся незаданным.
func (s *Service) Activate(ctx context.Context, id int64, days int) (*models.Account, error) {
	const op = "account.Activate"
	a, err := s.repo.UpdateAccount(ctx, id, func(a *models.Account) error {
		if a.IsActive {
			return ErrAlreadyActive
		}
		a.GrantPlan(plan.FromDays(days), s.civilNow())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	s.log.Info("account activated", sl.Op(op), sl.AccountID(id), slog.String("plan", a.Plan()))
	return a, nil
}

// ActivateByEmail выдаёт план по email из вебхука оплаты.
// Неизвестный код плана заменяется на monthly. Уже активная учётная
// запись не отклоняется: окно плана начинается заново.
func (s *Service) ActivateByEmail(ctx context.Context, email, planCode string) (*models.Account, error) {
	const op = "account.ActivateByEmail"
	log := s.log.With(sl.Op(op))

	found, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	code := planCode
	if !plan.Known(code) {
		log.Warn("unknown plan code, falling back to monthly", slog.String("plan", planCode), sl.AccountID(found.ID))
		code = plan.Monthly
	}

	a, err := s.repo.UpdateAccount(ctx, found.ID, func(a *models.Account) error {
		a.GrantPlan(code, s.civilNow())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	log.Info("account activated by payment", sl.AccountID(a.ID), slog.String("plan", code))
	return a, nil
}

// Deactivate выключает учётную запись и снимает план.
func (s *Service) Deactivate(ctx context.Context, id int64) (*models.Account, error) {
	const op = "account.Deactivate"
	a, err := s.repo.UpdateAccount(ctx, id, func(a *models.Account) error {
		if !a.IsActive {
			return ErrAlreadyInactive
		}
		a.ClearPlan()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	s.log.Info("account deactivated", sl.Op(op), sl.AccountID(id))
	return a, nil
}

// CheckAndEnforceExpiry проверяет срок плана и деактивирует учётную
// запись, если он прошёл. Деактивация фиксируется, после чего
// возвращается ErrPlanExpired. Суперпользователь не проверяется.
func (s *Service) CheckAndEnforceExpiry(ctx context.Context, id int64) error {
	const op = "account.CheckAndEnforceExpiry"
	log := s.log.With(sl.Op(op), sl.AccountID(id))

	expired := false
	_, err := s.repo.UpdateAccount(ctx, id, func(a *models.Account) error {
		if a.IsSuperuser || a.ActivatedAt == nil || a.CurrentPlan == nil {
			return errUnchanged
		}
		expiresAt, ok := plan.ExpiresAt(*a.ActivatedAt, a.Plan())
		if !ok {
			log.Info("plan has no duration, expiry skipped", slog.String("plan", a.Plan()))
			return errUnchanged
		}
		if !s.civilNow().After(expiresAt) {
			return errUnchanged
		}
		a.ClearPlan()
		expired = true
		return nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if expired {
		metrics.RecordPlanExpired()
		log.Info("plan expired, account deactivated")
		return fmt.Errorf("%s: %w", op, ErrPlanExpired)
	}
	return nil
}

// RecordLogin отмечает момент входа.
func (s *Service) RecordLogin(ctx context.Context, id int64) error {
	const op = "account.RecordLogin"
	_, err := s.repo.UpdateAccount(ctx, id, func(a *models.Account) error {
		now := s.civilNow()
		a.LastLogin = &now
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	return nil
}

// translate переводит ошибки хранилища в ошибки сервиса.
func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrEmailTaken):
		return ErrEmailTaken
	default:
		return err
	}
}
