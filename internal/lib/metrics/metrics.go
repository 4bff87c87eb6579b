// Package metrics содержит метрики Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты попытки входа.
const (
	LoginSuccess      = "success"
	LoginInvalid      = "invalid_credentials"
	LoginPlanExpired  = "plan_expired"
	LoginBadFormat    = "invalid_format"
	LoginInternalFail = "internal_error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	PlanExpirationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_plan_expirations_total",
			Help: "Total number of accounts deactivated because the plan expired",
		},
	)

	TradeEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_events_published_total",
			Help: "Total number of trade events published to the message bus",
		},
		[]string{"kind", "status"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of Telegram notifications by status",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequest учитывает обработанный HTTP-запрос.
func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordLogin учитывает попытку входа.
func RecordLogin(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordPlanExpired учитывает деактивацию по истечении плана.
func RecordPlanExpired() {
	PlanExpirationsTotal.Inc()
}

// RecordTradeEvent учитывает публикацию события ордера.
func RecordTradeEvent(kind string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	TradeEventsPublishedTotal.WithLabelValues(kind, status).Inc()
}

// RecordNotification учитывает отправку уведомления.
func RecordNotification(err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	NotificationsSentTotal.WithLabelValues(status).Inc()
}
