package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

const accountColumns = `id, name, email, password_hash, is_superuser, is_active,
	last_login, created_at, activated_at, current_plan`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a           models.Account
		lastLogin   sql.NullTime
		activatedAt sql.NullTime
		currentPlan sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.IsSuperuser, &a.IsActive,
		&lastLogin, &a.CreatedAt, &activatedAt, &currentPlan); err != nil {
		return nil, err
	}
	a.LastLogin = timePtr(lastLogin)
	a.ActivatedAt = timePtr(activatedAt)
	a.CurrentPlan = stringPtr(currentPlan)
	return &a, nil
}

// CreateAccount сохраняет учётную запись вместе с настройками бота по умолчанию.
// Email приводится к нижнему регистру. Занятый email даёт ErrEmailTaken.
func (s *Storage) CreateAccount(ctx context.Context, na models.NewAccount) (*models.Account, error) {
	const op = "storage.CreateAccount"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created *models.Account
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`INSERT INTO accounts (name, email, password_hash, is_superuser, is_active, created_at)
			 VALUES ($1, $2, $3, $4, FALSE, $5)
			 RETURNING `+accountColumns,
			na.Name, strings.ToLower(na.Email), na.PasswordHash, na.IsSuperuser, na.CreatedAt)
		a, err := scanAccount(row)
		if err != nil {
			return err
		}
		if err := insertBotOptions(ctx, tx, models.DefaultBotOptions(a.ID)); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetAccountByEmail ищет учётную запись по email без учёта регистра.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, strings.ToLower(email))
	a, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return a, nil
}

// GetAccountByID возвращает учётную запись по идентификатору.
func (s *Storage) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	const op = "storage.GetAccountByID"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return a, nil
}

// ListAccounts возвращает страницу учётных записей по возрастанию id.
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "storage.ListAccounts"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateAccount читает учётную запись с блокировкой строки, передаёт её в
// mutate и сохраняет результат в той же транзакции. Ошибка mutate
// откатывает транзакцию и возвращается без изменений.
func (s *Storage) UpdateAccount(ctx context.Context, id int64, mutate func(*models.Account) error) (*models.Account, error) {
	const op = "storage.UpdateAccount"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.Account
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
		a, err := scanAccount(row)
		if err != nil {
			return notFound(err)
		}
		if err := mutate(a); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE accounts
			 SET name = $1, is_superuser = $2, is_active = $3, last_login = $4,
			     activated_at = $5, current_plan = $6
			 WHERE id = $7`,
			a.Name, a.IsSuperuser, a.IsActive, a.LastLogin, a.ActivatedAt, nullString(a.CurrentPlan), a.ID)
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}
