package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

const botOptionsColumns = `id, user_id, bot_status, stop_loss, stop_win, entry_price,
	api_key, is_demo, win_value, loss_value, gale_one, gale_two`

func scanBotOptions(row rowScanner) (*models.BotOptions, error) {
	var (
		o      models.BotOptions
		apiKey sql.NullString
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.BotStatus, &o.StopLoss, &o.StopWin, &o.EntryPrice,
		&apiKey, &o.IsDemo, &o.WinValue, &o.LossValue, &o.GaleOne, &o.GaleTwo); err != nil {
		return nil, err
	}
	o.APIKey = stringPtr(apiKey)
	return &o, nil
}

func insertBotOptions(ctx context.Context, tx *sql.Tx, o models.BotOptions) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO bot_options (user_id, bot_status, stop_loss, stop_win, entry_price,
		     api_key, is_demo, win_value, loss_value, gale_one, gale_two)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.UserID, o.BotStatus, o.StopLoss, o.StopWin, o.EntryPrice,
		nullString(o.APIKey), o.IsDemo, o.WinValue, o.LossValue, o.GaleOne, o.GaleTwo)
	return err
}

// GetBotOptions возвращает настройки бота пользователя.
func (s *Storage) GetBotOptions(ctx context.Context, userID int64) (*models.BotOptions, error) {
	const op = "storage.GetBotOptions"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+botOptionsColumns+` FROM bot_options WHERE user_id = $1`, userID)
	o, err := scanBotOptions(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return o, nil
}

// UpdateBotOptions применяет mutate к настройкам пользователя под блокировкой строки.
func (s *Storage) UpdateBotOptions(ctx context.Context, userID int64, mutate func(*models.BotOptions) error) (*models.BotOptions, error) {
	const op = "storage.UpdateBotOptions"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.BotOptions
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+botOptionsColumns+` FROM bot_options WHERE user_id = $1 FOR UPDATE`, userID)
		o, err := scanBotOptions(row)
		if err != nil {
			return notFound(err)
		}
		if err := mutate(o); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE bot_options
			 SET bot_status = $1, stop_loss = $2, stop_win = $3, entry_price = $4, api_key = $5,
			     is_demo = $6, win_value = $7, loss_value = $8, gale_one = $9, gale_two = $10
			 WHERE id = $11`,
			o.BotStatus, o.StopLoss, o.StopWin, o.EntryPrice, nullString(o.APIKey),
			o.IsDemo, o.WinValue, o.LossValue, o.GaleOne, o.GaleTwo, o.ID)
		if err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}
