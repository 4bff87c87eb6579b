package middlewarectx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/trading-bot-backend/internal/http/response"
)

// PeerAddrKey — адрес сокета клиента до обработки заголовков прокси.
const PeerAddrKey Key = "peer_addr"

// limiterIdleTTL — через сколько простоя лимитер адреса удаляется.
const limiterIdleTTL = 10 * time.Minute

// PeerAddrMiddleware сохраняет r.RemoteAddr в контексте. Должен стоять
// раньше middleware.RealIP, который подменяет RemoteAddr значением из
// X-Forwarded-For и X-Real-IP.
func PeerAddrMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), PeerAddrKey, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PeerHost возвращает хост сокета клиента. Без PeerAddrMiddleware
// используется r.RemoteAddr.
func PeerHost(r *http.Request) string {
	addr, ok := r.Context().Value(PeerAddrKey).(string)
	if !ok || addr == "" {
		addr = r.RemoteAddr
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
	entries   map[string]*limiterEntry
}

func newIPLimiters(rps rate.Limit, burst int, idleTTL time.Duration, now func() time.Time) *ipLimiters {
	return &ipLimiters{
		rps:       rps,
		burst:     burst,
		idleTTL:   idleTTL,
		now:       now,
		lastSweep: now(),
		entries:   make(map[string]*limiterEntry),
	}
}

func (l *ipLimiters) allow(host string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) >= l.idleTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[host]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.entries[host] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimitMiddleware ограничивает частоту запросов с одного адреса сокета.
// Заголовки прокси не учитываются.
func RateLimitMiddleware(log *slog.Logger, rps rate.Limit, burst int) func(http.Handler) http.Handler {
	return rateLimit(log, newIPLimiters(rps, burst, limiterIdleTTL, time.Now))
}

func rateLimit(log *slog.Logger, limiters *ipLimiters) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := PeerHost(r)
			if !limiters.allow(host) {
				log.Warn("too many requests", slog.String("remote", host))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
