package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

const userBrokerageColumns = `id, user_id, brokerage_id, api_key, brokerage_username, brokerage_password`

func scanUserBrokerage(row rowScanner) (*models.UserBrokerage, error) {
	var (
		ub                         models.UserBrokerage
		apiKey, username, password sql.NullString
	)
	if err := row.Scan(&ub.ID, &ub.UserID, &ub.BrokerageID, &apiKey, &username, &password); err != nil {
		return nil, err
	}
	ub.APIKey = stringPtr(apiKey)
	ub.Username = stringPtr(username)
	ub.Password = stringPtr(password)
	return &ub, nil
}

// GetUserBrokerage возвращает подключение пользователя к брокеру.
func (s *Storage) GetUserBrokerage(ctx context.Context, userID, brokerageID int64) (*models.UserBrokerage, error) {
	const op = "storage.GetUserBrokerage"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+userBrokerageColumns+` FROM user_brokerages WHERE user_id = $1 AND brokerage_id = $2`,
		userID, brokerageID)
	ub, err := scanUserBrokerage(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return ub, nil
}

// CreateUserBrokerage сохраняет подключение. Повтор пары пользователь/брокер даёт ErrAlreadyExists.
func (s *Storage) CreateUserBrokerage(ctx context.Context, ub models.UserBrokerage) (*models.UserBrokerage, error) {
	const op = "storage.CreateUserBrokerage"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO user_brokerages (user_id, brokerage_id, api_key, brokerage_username, brokerage_password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userBrokerageColumns,
		ub.UserID, ub.BrokerageID, nullString(ub.APIKey), nullString(ub.Username), nullString(ub.Password))
	created, err := scanUserBrokerage(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateUserBrokerage применяет mutate к подключению под блокировкой строки.
func (s *Storage) UpdateUserBrokerage(ctx context.Context, userID, brokerageID int64, mutate func(*models.UserBrokerage) error) (*models.UserBrokerage, error) {
	const op = "storage.UpdateUserBrokerage"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.UserBrokerage
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+userBrokerageColumns+` FROM user_brokerages
			 WHERE user_id = $1 AND brokerage_id = $2 FOR UPDATE`, userID, brokerageID)
		ub, err := scanUserBrokerage(row)
		if err != nil {
			return notFound(err)
		}
		if err := mutate(ub); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE user_brokerages
			 SET api_key = $1, brokerage_username = $2, brokerage_password = $3
			 WHERE id = $4`,
			nullString(ub.APIKey), nullString(ub.Username), nullString(ub.Password), ub.ID); err != nil {
			return err
		}
		updated = ub
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}
