// Package notifier превращает события ордеров из очереди в сообщения Telegram.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/metrics"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/telegram"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

// Sender доставляет текст в чат.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
}

// Service обрабатывает сообщения очереди notifications.trade.
type Service struct {
	sender Sender
	log    *slog.Logger
}

// New создаёт Service.
func New(sender Sender, log *slog.Logger) *Service {
	return &Service{sender: sender, log: log}
}

// Handle разбирает событие и отправляет уведомление. Ошибка доставки
// возвращается, чтобы сообщение вернулось в очередь. Битое сообщение
// и ненастроенный Telegram не ретраятся.
func (s *Service) Handle(ctx context.Context, body []byte) error {
	const op = "notifier.Handle"
	log := s.log.With(sl.Op(op))

	var event models.TradeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal trade event, dropping", sl.Err(err))
		return nil
	}

	err := s.sender.SendMessage(ctx, FormatTradeMessage(event))
	metrics.RecordNotification(err)
	switch {
	case errors.Is(err, telegram.ErrNotConfigured):
		log.Warn("telegram is not configured, event skipped", slog.String("kind", event.Kind))
		return nil
	case err != nil:
		log.Error("failed to send notification", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("notification sent", sl.AccountID(event.Order.UserID), slog.String("kind", event.Kind))
	return nil
}

// FormatTradeMessage собирает HTML-текст уведомления.
func FormatTradeMessage(e models.TradeEvent) string {
	title := "Ордер"
	switch e.Kind {
	case models.TradeOpened:
		title = "🟢 Сделка открыта"
	case models.TradeClosed:
		title = "🔴 Сделка закрыта"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", title)
	if e.Email != "" {
		fmt.Fprintf(&b, "Пользователь: %s\n", html.EscapeString(e.Email))
	}
	o := e.Order
	fmt.Fprintf(&b, "Ордер: %s\n", html.EscapeString(o.OrderID))
	fmt.Fprintf(&b, "Актив: %s (%s)\n", html.EscapeString(o.Symbol), html.EscapeString(o.OrderType))
	fmt.Fprintf(&b, "Объём: %g, цена: %g\n", o.Quantity, o.Price)
	fmt.Fprintf(&b, "Статус: %s", html.EscapeString(o.Status))
	if !e.Timestamp.IsZero() {
		fmt.Fprintf(&b, "\nВремя: %s UTC", e.Timestamp.UTC().Format("02.01.2006 15:04:05"))
	}
	return b.String()
}
