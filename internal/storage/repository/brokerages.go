package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

func scanBrokerage(row rowScanner) (*models.Brokerage, error) {
	var b models.Brokerage
	if err := row.Scan(&b.ID, &b.Name, &b.Route, &b.Icon); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBrokerages возвращает каталог брокеров.
func (s *Storage) ListBrokerages(ctx context.Context, limit, offset int) ([]*models.Brokerage, error) {
	const op = "storage.ListBrokerages"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, brokerage_name, brokerage_route, brokerage_icon
		 FROM brokerages ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Brokerage
	for rows.Next() {
		b, err := scanBrokerage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetBrokerage возвращает брокера по id.
func (s *Storage) GetBrokerage(ctx context.Context, id int64) (*models.Brokerage, error) {
	const op = "storage.GetBrokerage"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, brokerage_name, brokerage_route, brokerage_icon FROM brokerages WHERE id = $1`, id)
	b, err := scanBrokerage(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return b, nil
}

// CreateBrokerage добавляет брокера в каталог.
func (s *Storage) CreateBrokerage(ctx context.Context, b models.Brokerage) (*models.Brokerage, error) {
	const op = "storage.CreateBrokerage"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO brokerages (brokerage_name, brokerage_route, brokerage_icon)
		 VALUES ($1, $2, $3)
		 RETURNING id, brokerage_name, brokerage_route, brokerage_icon`,
		b.Name, b.Route, b.Icon)
	created, err := scanBrokerage(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateBrokerage применяет mutate к записи каталога под блокировкой строки.
func (s *Storage) UpdateBrokerage(ctx context.Context, id int64, mutate func(*models.Brokerage) error) (*models.Brokerage, error) {
	const op = "storage.UpdateBrokerage"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.Brokerage
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT id, brokerage_name, brokerage_route, brokerage_icon
			 FROM brokerages WHERE id = $1 FOR UPDATE`, id)
		b, err := scanBrokerage(row)
		if err != nil {
			return notFound(err)
		}
		if err := mutate(b); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE brokerages SET brokerage_name = $1, brokerage_route = $2, brokerage_icon = $3 WHERE id = $4`,
			b.Name, b.Route, b.Icon, b.ID); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}
