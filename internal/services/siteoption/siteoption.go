// Package siteoption отдаёт глобальные настройки сайта с кешированием в Redis.
package siteoption

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

const (
	keyPrefix = "siteoption:"
	cacheTTL  = time.Hour
)

// ErrNotFound — опция не существует.
var ErrNotFound = errors.New("site option not found")

// Repository — хранилище опций.
type Repository interface {
	ListSiteOptions(ctx context.Context, limit, offset int) ([]*models.SiteOption, error)
	GetSiteOption(ctx context.Context, name string) (*models.SiteOption, error)
	UpdateSiteOptionValue(ctx context.Context, name, value string) (*models.SiteOption, error)
}

// Cache — кеш опций по имени.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service — опции сайта.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создаёт Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// List возвращает страницу опций из базы.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.SiteOption, error) {
	const op = "siteoption.List"
	list, err := s.repo.ListSiteOptions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Get возвращает опцию по имени. Ошибки кеша не мешают чтению из базы.
func (s *Service) Get(ctx context.Context, name string) (*models.SiteOption, error) {
	const op = "siteoption.Get"
	log := s.log.With(sl.Op(op), slog.String("name", name))

	var cached models.SiteOption
	found, err := s.cache.Get(ctx, keyPrefix+name, &cached)
	if err != nil {
		log.Warn("cache read failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	opt, err := s.repo.GetSiteOption(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, keyPrefix+name, opt, cacheTTL); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}
	return opt, nil
}

// Update меняет значение опции и сбрасывает её кеш.
func (s *Service) Update(ctx context.Context, name, value string) (*models.SiteOption, error) {
	const op = "siteoption.Update"

	opt, err := s.repo.UpdateSiteOptionValue(ctx, name, value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, keyPrefix+name); err != nil {
		s.log.Warn("cache invalidate failed", sl.Op(op), sl.Err(err))
	}
	return opt, nil
}
