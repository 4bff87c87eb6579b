// Package botoptions управляет настройками торгового бота пользователя.
package botoptions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

// ErrNotFound — у пользователя нет настроек бота.
var ErrNotFound = errors.New("bot options not found")

// Repository описывает хранилище настроек бота.
type Repository interface {
	GetBotOptions(ctx context.Context, userID int64) (*models.BotOptions, error)
	UpdateBotOptions(ctx context.Context, userID int64, mutate func(*models.BotOptions) error) (*models.BotOptions, error)
}

// Service — настройки бота.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get возвращает настройки бота пользователя.
func (s *Service) Get(ctx context.Context, userID int64) (*models.BotOptions, error) {
	const op = "botoptions.Get"
	opts, err := s.repo.GetBotOptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return opts, nil
}

// Update применяет patch к настройкам бота пользователя.
func (s *Service) Update(ctx context.Context, userID int64, patch models.BotOptionsPatch) (*models.BotOptions, error) {
	const op = "botoptions.Update"
	opts, err := s.repo.UpdateBotOptions(ctx, userID, func(o *models.BotOptions) error {
		patch.Apply(o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	s.log.Info("bot options updated", sl.Op(op), sl.AccountID(userID), slog.Bool("bot_status", opts.BotStatus))
	return opts, nil
}

func translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
