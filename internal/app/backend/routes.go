package backend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	accountactivate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/account/activate"
	accountcreate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/account/create"
	accountdeactivate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/account/deactivate"
	accountlist "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/account/list"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/auth/refresh"
	botoptionsread "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/botoptions/read"
	botoptionsupdate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/botoptions/update"
	brokeragecreate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/brokerage/create"
	brokeragelist "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/brokerage/list"
	brokerageread "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/brokerage/read"
	brokerageupdate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/brokerage/update"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/health"
	siteoptionlist "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/siteoption/list"
	siteoptionread "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/siteoption/read"
	siteoptionupdate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/siteoption/update"
	tradeorderall "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradeorder/all"
	tradeordercreate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradeorder/create"
	tradeordertoday "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradeorder/today"
	tradeorderupdate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradeorder/update"
	tradepaircreate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradepair/create"
	tradepairlist "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradepair/list"
	tradepairread "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradepair/read"
	tradepairremove "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradepair/remove"
	tradepairupdate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/tradepair/update"
	userbrokeragecreate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/userbrokerage/create"
	userbrokerageread "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/userbrokerage/read"
	userbrokerageupdate "github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/userbrokerage/update"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/handlers/webhook/payment"
	"github.com/magabrotheeeer/trading-bot-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/account"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/auth"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/botoptions"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/brokerage"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/siteoption"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/tradeorder"
	"github.com/magabrotheeeer/trading-bot-backend/internal/services/tradepair"
)

// Частота попыток входа с одного адреса.
const (
	loginRate  = rate.Limit(1)
	loginBurst = 5
)

// Services — сервисы, которые обслуживают маршруты.
type Services struct {
	Auth       *auth.Service
	Accounts   *account.Service
	BotOptions *botoptions.Service
	Brokerages *brokerage.Service
	Orders     *tradeorder.Service
	TradePairs *tradepair.Service
	Options    *siteoption.Service
	Health     health.Checker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middlewarectx.PeerAddrMiddleware,
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	jwtAuth := middlewarectx.JWTMiddleware(s.Auth, logger)
	basicAuth := middlewarectx.BasicAuthMiddleware(s.Auth, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middlewarectx.RateLimitMiddleware(logger, loginRate, loginBurst)).
			Post("/user/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/user/refresh", refresh.New(logger, s.Auth).ServeHTTP)

		// Пользовательские маршруты под JWT
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth)
			r.Get("/user/me", me.New(logger).ServeHTTP)

			r.Get("/bot-options", botoptionsread.New(logger, s.BotOptions).ServeHTTP)
			r.Put("/bot-options", botoptionsupdate.New(logger, s.BotOptions).ServeHTTP)

			r.Get("/brokerages", brokeragelist.New(logger, s.Brokerages).ServeHTTP)
			r.Post("/brokerages", brokeragecreate.New(logger, s.Brokerages).ServeHTTP)
			r.Get("/brokerages/{id}", brokerageread.New(logger, s.Brokerages).ServeHTTP)
			r.Put("/brokerages/{id}", brokerageupdate.New(logger, s.Brokerages).ServeHTTP)

			r.Post("/user_brokerages", userbrokeragecreate.New(logger, s.Brokerages).ServeHTTP)
			r.Get("/user_brokerages/{brokerage_id}", userbrokerageread.New(logger, s.Brokerages).ServeHTTP)
			r.Put("/user_brokerages/{brokerage_id}", userbrokerageupdate.New(logger, s.Brokerages).ServeHTTP)

			r.Get("/trade_order_info/today/{brokerage_id}", tradeordertoday.New(logger, s.Orders).ServeHTTP)
			r.Get("/trade_order_info/all", tradeorderall.New(logger, s.Orders).ServeHTTP)

			r.Get("/trade_pairs/all", tradepairlist.New(logger, s.TradePairs).ServeHTTP)
			r.Post("/trade_pairs/create", tradepaircreate.New(logger, s.TradePairs).ServeHTTP)
			r.Get("/trade_pairs/{id}", tradepairread.New(logger, s.TradePairs).ServeHTTP)
			r.Put("/trade_pairs/{id}", tradepairupdate.New(logger, s.TradePairs).ServeHTTP)
			r.Delete("/trade_pairs/{id}", tradepairremove.New(logger, s.TradePairs).ServeHTTP)

			r.Get("/site_options/all", siteoptionlist.New(logger, s.Options).ServeHTTP)
			r.Get("/site_options/{name}", siteoptionread.New(logger, s.Options).ServeHTTP)
			r.Put("/site_options/{name}", siteoptionupdate.New(logger, s.Options).ServeHTTP)
		})

		// Служебные маршруты бота, админки и платёжного вебхука под Basic
		r.Group(func(r chi.Router) {
			r.Use(basicAuth)
			r.Post("/user/create", accountcreate.New(logger, s.Accounts).ServeHTTP)
			r.Get("/admin/accounts", accountlist.New(logger, s.Accounts).ServeHTTP)
			r.Post("/admin/accounts/{id}/activate", accountactivate.New(logger, s.Accounts).ServeHTTP)
			r.Post("/admin/accounts/{id}/deactivate", accountdeactivate.New(logger, s.Accounts).ServeHTTP)
			r.Post("/webhook/payment", payment.New(logger, s.Accounts).ServeHTTP)

			r.Get("/user_brokerages/{brokerage_id}/{user_id}", userbrokerageread.New(logger, s.Brokerages).ServeHTTP)
			r.Post("/trade_order_info/create", tradeordercreate.New(logger, s.Orders).ServeHTTP)
			r.Put("/trade_order_info/update", tradeorderupdate.New(logger, s.Orders).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, s.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
