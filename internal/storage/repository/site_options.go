package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

func scanSiteOption(row rowScanner) (*models.SiteOption, error) {
	var (
		o    models.SiteOption
		desc sql.NullString
	)
	if err := row.Scan(&o.ID, &o.KeyName, &o.KeyValue, &o.Type, &desc); err != nil {
		return nil, err
	}
	o.Description = stringPtr(desc)
	return &o, nil
}

// ListSiteOptions возвращает страницу опций сайта.
func (s *Storage) ListSiteOptions(ctx context.Context, limit, offset int) ([]*models.SiteOption, error) {
	const op = "storage.ListSiteOptions"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, key_name, key_value, type, description
		 FROM site_options ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SiteOption
	for rows.Next() {
		o, err := scanSiteOption(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetSiteOption возвращает опцию по имени ключа.
func (s *Storage) GetSiteOption(ctx context.Context, name string) (*models.SiteOption, error) {
	const op = "storage.GetSiteOption"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, key_name, key_value, type, description FROM site_options WHERE key_name = $1`, name)
	o, err := scanSiteOption(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return o, nil
}

// UpdateSiteOptionValue меняет значение опции и возвращает обновлённую запись.
func (s *Storage) UpdateSiteOptionValue(ctx context.Context, name, value string) (*models.SiteOption, error) {
	const op = "storage.UpdateSiteOptionValue"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`UPDATE site_options SET key_value = $1 WHERE key_name = $2
		 RETURNING id, key_name, key_value, type, description`, value, name)
	o, err := scanSiteOption(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return o, nil
}
