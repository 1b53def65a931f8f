package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"car-rental/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token-bucket limit per client IP. Stale buckets are
// evicted so the map does not grow with the address space.
func RateLimit(cfg utils.RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*clientLimiter)
	)

	cleanup := func(now time.Time) {
		for ip, cl := range limiters {
			if now.Sub(cl.lastSeen) > 10*time.Minute {
				delete(limiters, ip)
			}
		}
	}

	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			now := time.Now()

			mu.Lock()
			cl, ok := limiters[ip]
			if !ok {
				cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
				limiters[ip] = cl
			}
			cl.lastSeen = now
			if len(limiters) > 10000 {
				cleanup(now)
			}
			allowed := cl.limiter.Allow()
			mu.Unlock()

			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseTooManyRequests(w, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
