package mwratelimit

import (
	"autoDetailing/internal/config"
	"autoDetailing/internal/lib/api/response"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// idleTTL is how long a client bucket survives without requests.
const idleTTL = 10 * time.Minute

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type limiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	cfg       config.RateLimit
	now       func() time.Time
	lastSweep time.Time
}

func newLimiter(cfg config.RateLimit) *limiter {
	return &limiter{
		clients: make(map[string]*client),
		cfg:     cfg,
		now:     time.Now,
	}
}

func (l *limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= idleTTL {
		l.sweep(now)
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		burst := l.cfg.Burst
		if burst <= 0 {
			burst = 5
		}
		c = &client{lim: rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.lim
}

// sweep drops buckets idle for idleTTL. Callers hold mu.
func (l *limiter) sweep(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= idleTTL {
			delete(l.clients, key)
		}
	}
}

// New throttles requests per client IP. A non-positive RPS disables it.
func New(log *slog.Logger, cfg config.RateLimit) func(next http.Handler) http.Handler {
	l := newLimiter(cfg)

	return func(next http.Handler) http.Handler {
		if cfg.RPS <= 0 {
			return next
		}

		log := log.With(slog.String("component", "middleware/ratelimit"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !l.get(key).Allow() {
				log.Warn("rate limit exceeded", slog.String("client", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
