package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/supplyhub/marketplace-api/internal/api/metrics"
)

const visitorIdleTTL = 10 * time.Minute

// RateLimiter applies per-IP token buckets with tighter limits on the
// credential endpoints. It backstops the generic credential error: an
// attacker cannot compensate for the non-leaking response by brute force.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{visitors: make(map[string]*visitor)}
	go rl.cleanupVisitors()
	return rl
}

// Limit returns the echo middleware enforcing the per-IP limits.
func (rl *RateLimiter) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			class, limit, burst := classify(c.Request().URL.Path)

			if !rl.allow(ip+":"+class, limit, burst) {
				metrics.RateLimitedTotal.WithLabelValues(class).Inc()
				c.Response().Header().Set("Retry-After", retryAfter(limit))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}

// classify picks the limit for a path. Sign-in and registration are the
// abuse targets; everything else gets a generous general bucket.
func classify(path string) (string, rate.Limit, int) {
	switch {
	case strings.HasPrefix(path, "/auth/login"), strings.HasPrefix(path, "/auth/password-reset"):
		return "login", rate.Every(time.Minute), 5
	case strings.HasPrefix(path, "/auth/register"):
		return "register", rate.Every(5 * time.Minute), 3
	default:
		return "general", rate.Every(time.Second), 20
	}
}

// retryAfter reports the refill interval for one token, in whole seconds,
// never less than 1.
func retryAfter(limit rate.Limit) string {
	interval := time.Duration(float64(time.Second) / float64(limit))
	secs := int(interval.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func (rl *RateLimiter) allow(key string, limit rate.Limit, burst int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(limit, burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupVisitors() {
	for range time.Tick(time.Minute) {
		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > visitorIdleTTL {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}
