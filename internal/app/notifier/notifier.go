// Package notifier собирает потребителя очереди событий ордеров,
// пересылающего их в Telegram.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trading-bot-backend/internal/config"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/telegram"
	notifierservice "github.com/magabrotheeeer/trading-bot-backend/internal/services/notifier"
)

type App struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	notifier *notifierservice.Service
	logger   *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.TradeQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if cfg.BotToken == "" || cfg.ChatID == "" {
		logger.Warn("telegram is not configured, events will be acknowledged without delivery")
	}
	client := telegram.NewClient(cfg.BotToken, cfg.ChatID, cfg.APIURL, cfg.RequestTimeout)

	return &App{
		conn:     conn,
		ch:       ch,
		notifier: notifierservice.New(client, logger),
		logger:   logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	handler := func(body []byte) error {
		return a.notifier.Handle(ctx, body)
	}
	if err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.QueueTrade, handler); err != nil {
		a.logger.Error("failed to start trade consumer", sl.Err(err))
		return err
	}
	a.logger.Info("consuming trade events", slog.String("queue", rabbitmq.QueueTrade))

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
