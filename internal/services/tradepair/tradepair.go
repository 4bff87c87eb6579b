// Package tradepair управляет каталогом торговых пар.
package tradepair

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
	// ErrNotFound — пары с таким id нет.
	ErrNotFound = errors.New("trade pair not found")
	// ErrAlreadyExists — пара с таким именем уже есть.
	ErrAlreadyExists = errors.New("trade pair already exists")
)

// Repository описывает хранилище торговых пар.
type Repository interface {
	ListTradePairs(ctx context.Context, limit, offset int) ([]*models.TradePair, error)
	GetTradePair(ctx context.Context, id int64) (*models.TradePair, error)
	CreateTradePair(ctx context.Context, tp models.TradePair) (*models.TradePair, error)
	UpdateTradePair(ctx context.Context, id int64, mutate func(*models.TradePair) error) (*models.TradePair, error)
	DeleteTradePair(ctx context.Context, id int64) (*models.TradePair, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.TradePair, error) {
	const op = "tradepair.List"
	list, err := s.repo.ListTradePairs(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.TradePair, error) {
	const op = "tradepair.Get"
	tp, err := s.repo.GetTradePair(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return tp, nil
}

func (s *Service) Create(ctx context.Context, name string) (*models.TradePair, error) {
	const op = "tradepair.Create"
	created, err := s.repo.CreateTradePair(ctx, models.TradePair{PairName: name})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	s.log.Info("trade pair created", sl.Op(op), slog.Int64("trade_pair_id", created.ID))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch models.TradePairPatch) (*models.TradePair, error) {
	const op = "tradepair.Update"
	tp, err := s.repo.UpdateTradePair(ctx, id, func(tp *models.TradePair) error {
		patch.Apply(tp)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return tp, nil
}

// Delete удаляет пару и возвращает удалённую запись.
func (s *Service) Delete(ctx context.Context, id int64) (*models.TradePair, error) {
	const op = "tradepair.Delete"
	tp, err := s.repo.DeleteTradePair(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	s.log.Info("trade pair deleted", sl.Op(op), slog.Int64("trade_pair_id", id))
	return tp, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return ErrAlreadyExists
	default:
		return err
	}
}
