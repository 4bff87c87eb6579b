// Package brokerage управляет каталогом брокеров и подключениями
// пользователей к ним.
package brokerage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

var (
	// ErrNotFound — брокер или подключение не найдены.
	ErrNotFound = errors.New("brokerage not found")
	// ErrAlreadyConnected — пользователь уже подключён к брокеру.
	ErrAlreadyConnected = errors.New("brokerage already connected")
)

// Repository описывает хранилище брокеров и подключений.
type Repository interface {
	ListBrokerages(ctx context.Context, limit, offset int) ([]*models.Brokerage, error)
	GetBrokerage(ctx context.Context, id int64) (*models.Brokerage, error)
	CreateBrokerage(ctx context.Context, b models.Brokerage) (*models.Brokerage, error)
	UpdateBrokerage(ctx context.Context, id int64, mutate func(*models.Brokerage) error) (*models.Brokerage, error)
	GetUserBrokerage(ctx context.Context, userID, brokerageID int64) (*models.UserBrokerage, error)
	CreateUserBrokerage(ctx context.Context, ub models.UserBrokerage) (*models.UserBrokerage, error)
	UpdateUserBrokerage(ctx context.Context, userID, brokerageID int64, mutate func(*models.UserBrokerage) error) (*models.UserBrokerage, error)
}

// Service — брокеры и подключения.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает каталог брокеров.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Brokerage, error) {
	const op = "brokerage.List"
	list, err := s.repo.ListBrokerages(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Get возвращает брокера по id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Brokerage, error) {
	const op = "brokerage.Get"
	b, err := s.repo.GetBrokerage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return b, nil
}

// Create добавляет брокера в каталог.
func (s *Service) Create(ctx context.Context, b models.Brokerage) (*models.Brokerage, error) {
	const op = "brokerage.Create"
	created, err := s.repo.CreateBrokerage(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("brokerage created", sl.Op(op), slog.Int64("brokerage_id", created.ID))
	return created, nil
}

// Update применяет patch к записи каталога.
func (s *Service) Update(ctx context.Context, id int64, patch models.BrokeragePatch) (*models.Brokerage, error) {
	const op = "brokerage.Update"
	b, err := s.repo.UpdateBrokerage(ctx, id, func(b *models.Brokerage) error {
		patch.Apply(b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return b, nil
}

// GetConnection возвращает подключение пользователя к брокеру.
func (s *Service) GetConnection(ctx context.Context, userID, brokerageID int64) (*models.UserBrokerage, error) {
	const op = "brokerage.GetConnection"
	ub, err := s.repo.GetUserBrokerage(ctx, userID, brokerageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return ub, nil
}

// CreateConnection подключает пользователя к брокеру. Пароль сохраняется в base64.
func (s *Service) CreateConnection(ctx context.Context, userID, brokerageID int64, patch models.UserBrokeragePatch) (*models.UserBrokerage, error) {
	const op = "brokerage.CreateConnection"
	if _, err := s.repo.GetBrokerage(ctx, brokerageID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	ub := models.UserBrokerage{UserID: userID, BrokerageID: brokerageID}
	patch.Apply(&ub)
	created, err := s.repo.CreateUserBrokerage(ctx, ub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	s.log.Info("brokerage connected", sl.Op(op), sl.AccountID(userID), slog.Int64("brokerage_id", brokerageID))
	return created, nil
}

// UpdateConnection применяет patch к подключению пользователя.
func (s *Service) UpdateConnection(ctx context.Context, userID, brokerageID int64, patch models.UserBrokeragePatch) (*models.UserBrokerage, error) {
	const op = "brokerage.UpdateConnection"
	ub, err := s.repo.UpdateUserBrokerage(ctx, userID, brokerageID, func(ub *models.UserBrokerage) error {
		patch.Apply(ub)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return ub, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return ErrAlreadyConnected
	default:
		return err
	}
}
