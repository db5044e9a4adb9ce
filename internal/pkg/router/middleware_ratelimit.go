package router

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/pkg/config"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimitRPS   = 1.0
	defaultRateLimitBurst = 5
	limiterIdleSweep      = 5 * time.Minute
)

type ipLimiter struct {
	limiters  sync.Map // map[string]*rate.Limiter
	limit     rate.Limit
	burst     int
	mu        sync.Mutex
	lastSweep time.Time
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	v, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))
	l.sweep()

	return v.(*rate.Limiter)
}

// sweep drops limiters whose bucket refilled completely, which means the
// client has been idle for at least burst/limit seconds.
func (l *ipLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastSweep) < limiterIdleSweep {
		return
	}
	l.lastSweep = time.Now()

	l.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// middlewareRateLimit limits requests per client address using a token
// bucket per address. It relies on middlewareIP having resolved RemoteAddr.
func middlewareRateLimit(cfg config.Config) Middleware {
	if cfg == nil || !cfg.GetBool("app.server.rate_limit.enabled") {
		return nil
	}

	rps := cfg.GetFloat64("app.server.rate_limit.rps")
	if rps <= 0 {
		rps = defaultRateLimitRPS
	}
	burst := cfg.GetInt("app.server.rate_limit.burst")
	if burst <= 0 {
		burst = defaultRateLimitBurst
	}

	return newRateLimit(rate.Limit(rps), burst)
}

func newRateLimit(limit rate.Limit, burst int) Middleware {
	l := &ipLimiter{limit: limit, burst: burst, lastSweep: time.Now()}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			limiter := l.get(key)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			reservation := limiter.Reserve()
			retryAfter := max(int(reservation.Delay().Seconds()), 1)
			reservation.Cancel()

			slog.WarnContext(r.Context(), "rate limit exceeded", "key", key, "path", matchedRoutePath(r), "retry_after", retryAfter)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeError(w, "Too many requests", http.StatusTooManyRequests)
		})
	}
}
