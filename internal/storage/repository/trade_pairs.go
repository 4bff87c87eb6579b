package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

func scanTradePair(row rowScanner) (*models.TradePair, error) {
	var tp models.TradePair
	if err := row.Scan(&tp.ID, &tp.PairName); err != nil {
		return nil, err
	}
	return &tp, nil
}

// ListTradePairs возвращает каталог торговых пар.
func (s *Storage) ListTradePairs(ctx context.Context, limit, offset int) ([]*models.TradePair, error) {
	const op = "storage.ListTradePairs"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, pair_name FROM trade_pairs ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TradePair
	for rows.Next() {
		tp, err := scanTradePair(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, tp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTradePair возвращает торговую пару по id.
func (s *Storage) GetTradePair(ctx context.Context, id int64) (*models.TradePair, error) {
	const op = "storage.GetTradePair"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx, `SELECT id, pair_name FROM trade_pairs WHERE id = $1`, id)
	tp, err := scanTradePair(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return tp, nil
}

// CreateTradePair добавляет пару. Повтор имени даёт ErrAlreadyExists.
func (s *Storage) CreateTradePair(ctx context.Context, tp models.TradePair) (*models.TradePair, error) {
	const op = "storage.CreateTradePair"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO trade_pairs (pair_name) VALUES ($1) RETURNING id, pair_name`, tp.PairName)
	created, err := scanTradePair(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateTradePair применяет mutate к паре под блокировкой строки.
func (s *Storage) UpdateTradePair(ctx context.Context, id int64, mutate func(*models.TradePair) error) (*models.TradePair, error) {
	const op = "storage.UpdateTradePair"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.TradePair
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT id, pair_name FROM trade_pairs WHERE id = $1 FOR UPDATE`, id)
		tp, err := scanTradePair(row)
		if err != nil {
			return notFound(err)
		}
		if err := mutate(tp); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE trade_pairs SET pair_name = $1 WHERE id = $2`, tp.PairName, tp.ID); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return err
		}
		updated = tp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteTradePair удаляет пару и возвращает удалённую запись.
func (s *Storage) DeleteTradePair(ctx context.Context, id int64) (*models.TradePair, error) {
	const op = "storage.DeleteTradePair"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`DELETE FROM trade_pairs WHERE id = $1 RETURNING id, pair_name`, id)
	deleted, err := scanTradePair(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return deleted, nil
}
