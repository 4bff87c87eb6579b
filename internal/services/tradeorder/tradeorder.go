// Package tradeorder ведёт журнал ордеров бота и публикует события
// открытия и закрытия сделок в шину уведомлений.
package tradeorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/metrics"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

// ErrNotFound — ордер не найден либо список пуст.
var ErrNotFound = errors.New("trade orders not found")

// Repository — хранилище ордеров и аккаунтов (для email в событии).
type Repository interface {
	CreateTradeOrder(ctx context.Context, o models.TradeOrder) (*models.TradeOrder, error)
	ListTradeOrdersSince(ctx context.Context, userID, brokerageID int64, since time.Time) ([]*models.TradeOrder, error)
	ListTradeOrders(ctx context.Context, userID int64) ([]*models.TradeOrder, error)
	UpdateTradeOrder(ctx context.Context, id, userID int64, mutate func(*models.TradeOrder) error) (*models.TradeOrder, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
}

// Publisher отправляет сообщение в шину.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg any) error
}

// Service — журнал ордеров.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// New создаёт Service. publisher может быть nil, тогда события не публикуются.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create сохраняет ордер, присланный ботом. Время ордера проставляется сервером.
func (s *Service) Create(ctx context.Context, in models.NewTradeOrder) (*models.TradeOrder, error) {
	const op = "tradeorder.Create"

	order, err := s.repo.CreateTradeOrder(ctx, models.TradeOrder{
		UserID:      in.UserID,
		BrokerageID: in.BrokerageID,
		OrderID:     in.OrderID,
		Symbol:      in.Symbol,
		OrderType:   in.OrderType,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Status:      in.Status,
		DateTime:    s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if order.Status == models.OrderStatusOpen {
		s.publish(ctx, models.TradeOpened, order)
	}
	return order, nil
}

// ListToday возвращает ордера пользователя у брокера с начала текущих суток (UTC).
func (s *Service) ListToday(ctx context.Context, userID, brokerageID int64) ([]*models.TradeOrder, error) {
	const op = "tradeorder.ListToday"

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	orders, err := s.repo.ListTradeOrdersSince(ctx, userID, brokerageID, midnight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return orders, nil
}

// ListAll возвращает все ордера пользователя.
func (s *Service) ListAll(ctx context.Context, userID int64) ([]*models.TradeOrder, error) {
	const op = "tradeorder.ListAll"

	orders, err := s.repo.ListTradeOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return orders, nil
}

// UpdateStatus применяет patch к ордеру пользователя. Переход в closed
// публикует событие закрытия.
func (s *Service) UpdateStatus(ctx context.Context, id, userID int64, patch models.TradeOrderPatch) (*models.TradeOrder, error) {
	const op = "tradeorder.UpdateStatus"

	var prev string
	order, err := s.repo.UpdateTradeOrder(ctx, id, userID, func(o *models.TradeOrder) error {
		prev = o.Status
		patch.Apply(o)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if prev != models.OrderStatusClosed && order.Status == models.OrderStatusClosed {
		s.publish(ctx, models.TradeClosed, order)
	}
	return order, nil
}

// publish не влияет на результат записи: ошибки только логируются.
func (s *Service) publish(ctx context.Context, kind string, order *models.TradeOrder) {
	const op = "tradeorder.publish"
	if s.publisher == nil {
		return
	}
	log := s.log.With(sl.Op(op), sl.AccountID(order.UserID), slog.String("kind", kind))

	event := models.TradeEvent{Kind: kind, Order: *order, Timestamp: s.now()}
	acc, err := s.repo.GetAccountByID(ctx, order.UserID)
	if err != nil {
		log.Warn("account lookup for trade event failed", sl.Err(err))
	} else {
		event.Email = acc.Email
	}

	err = s.publisher.Publish(ctx, rabbitmq.RoutingKeyTrade, event)
	metrics.RecordTradeEvent(kind, err)
	if err != nil {
		log.Error("failed to publish trade event", sl.Err(err))
		return
	}
	log.Debug("trade event published", slog.Int64("order_id", order.ID))
}
