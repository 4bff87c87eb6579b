// Package backend собирает HTTP API торгового бота: хранилище, кеш,
// шину событий, сервисы и маршруты.
package backend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trading-bot-backend/internal/cache"
	"github.com/magabrotheeeer/trading-bot-backend/internal/config"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
	"github.com/magabrotheeeer/trading-bot-backend/internal/migrations"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/account"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/auth"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/botoptions"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/brokerage"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/siteoption"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/tradeorder"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/tradepair"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "backend.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{logger: logger, db: db, cache: cacheRedis}

	// Без RabbitMQ ордера пишутся, но уведомления не отправляются.
	var publisher tradeorder.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.close()
			return nil, err
		}
		app.conn = conn
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.TradeQueues())
		if err != nil {
			app.close()
			return nil, err
		}
		app.ch = ch
		publisher = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("RABBITMQ_URL is not set, trade notifications are disabled", sl.Op(op))
	}

	tokens := jwt.NewMaker(cfg.JWTSecretKey)
	accounts := account.New(db, logger)
	services := Services{
		Auth:       auth.New(db, accounts, tokens, auth.BasicCredentials{User: cfg.APIUser, Pass: cfg.APIPass}, logger),
		Accounts:   accounts,
		BotOptions: botoptions.New(db, logger),
		Brokerages: brokerage.New(db, logger),
		Orders:     tradeorder.New(db, publisher, logger),
		TradePairs: tradepair.New(db, logger),
		Options:    siteoption.New(db, cacheRedis, logger),
		Health:     db,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
