package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

const tradeOrderColumns = `id, user_id, brokerage_id, order_id, symbol, order_type,
	quantity, price, status, date_time`

func scanTradeOrder(row rowScanner) (*models.TradeOrder, error) {
	var o models.TradeOrder
	if err := row.Scan(&o.ID, &o.UserID, &o.BrokerageID, &o.OrderID, &o.Symbol, &o.OrderType,
		&o.Quantity, &o.Price, &o.Status, &o.DateTime); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Storage) queryTradeOrders(ctx context.Context, op, query string, args ...any) ([]*models.TradeOrder, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TradeOrder
	for rows.Next() {
		o, err := scanTradeOrder(rows)
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

// CreateTradeOrder записывает ордер в журнал.
func (s *Storage) CreateTradeOrder(ctx context.Context, o models.TradeOrder) (*models.TradeOrder, error) {
	const op = "storage.CreateTradeOrder"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO trade_orders (user_id, brokerage_id, order_id, symbol, order_type, quantity, price, status, date_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+tradeOrderColumns,
		o.UserID, o.BrokerageID, o.OrderID, o.Symbol, o.OrderType, o.Quantity, o.Price, o.Status, o.DateTime)
	created, err := scanTradeOrder(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListTradeOrdersSince возвращает ордера пользователя у брокера начиная с момента since.
func (s *Storage) ListTradeOrdersSince(ctx context.Context, userID, brokerageID int64, since time.Time) ([]*models.TradeOrder, error) {
	const op = "storage.ListTradeOrdersSince"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.queryTradeOrders(ctx, op,
		`SELECT `+tradeOrderColumns+` FROM trade_orders
		 WHERE user_id = $1 AND brokerage_id = $2 AND date_time >= $3
		 ORDER BY date_time`, userID, brokerageID, since)
}

// ListTradeOrders возвращает все ордера пользователя.
func (s *Storage) ListTradeOrders(ctx context.Context, userID int64) ([]*models.TradeOrder, error) {
	const op = "storage.ListTradeOrders"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.queryTradeOrders(ctx, op,
		`SELECT `+tradeOrderColumns+` FROM trade_orders WHERE user_id = $1 ORDER BY date_time`, userID)
}

// UpdateTradeOrder применяет mutate к ордеру пользователя под блокировкой строки.
func (s *Storage) UpdateTradeOrder(ctx context.Context, id, userID int64, mutate func(*models.TradeOrder) error) (*models.TradeOrder, error) {
	const op = "storage.UpdateTradeOrder"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.TradeOrder
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+tradeOrderColumns+` FROM trade_orders WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID)
		o, err := scanTradeOrder(row)
		if err != nil {
			return notFound(err)
		}
		if err := mutate(o); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE trade_orders
			 SET symbol = $1, order_type = $2, quantity = $3, price = $4, status = $5
			 WHERE id = $6`,
			o.Symbol, o.OrderType, o.Quantity, o.Price, o.Status, o.ID); err != nil {
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
