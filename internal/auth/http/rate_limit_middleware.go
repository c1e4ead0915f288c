package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimiter enforces per-IP rate limiting on the credential endpoints
// to slow down password guessing and credential stuffing.
//
// Uses a token bucket per IP address via golang.org/x/time/rate. A background
// goroutine drops limiters for IPs that went quiet so the map cannot grow
// without bound under address churn; Close stops it.
type LoginRateLimiter struct {
	limiters sync.Map // map[string]*loginRateLimiterEntry (IP -> limiter)
	rps      float64
	burst    int
	logger   *slog.Logger
	stop     context.CancelFunc
	done     chan struct{}
}

// loginRateLimiterEntry holds a rate limiter and last access time for cleanup.
type loginRateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// NewLoginRateLimiter creates a rate limiter and starts its cleanup goroutine.
// The caller owns the lifecycle and must call Close on shutdown.
func NewLoginRateLimiter(rps float64, burst int, logger *slog.Logger) *LoginRateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	limiter := &LoginRateLimiter{
		rps:    rps,
		burst:  burst,
		logger: logger,
		stop:   cancel,
		done:   make(chan struct{}),
	}
	go limiter.cleanupStale(ctx, 5*time.Minute)
	return limiter
}

// Close stops the cleanup goroutine and waits for it to exit.
func (l *LoginRateLimiter) Close() {
	l.stop()
	<-l.done
}

// Middleware returns the gin handler enforcing the limit.
//
// The IP comes from c.ClientIP(), which honors X-Forwarded-For and X-Real-IP
// when gin's trusted proxy settings allow it. Returns 429 Too Many Requests
// with a Retry-After header once the bucket is empty.
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := l.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			l.logger.Debug("login rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many authentication attempts from this IP. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates a rate limiter for an IP address.
// LoadOrStore keeps concurrent first requests from the same IP on a single
// bucket instead of each minting its own.
func (l *LoginRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now()
	val, loaded := l.limiters.LoadOrStore(ip, &loginRateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(l.rps), l.burst),
		lastAccess: now,
	})
	entry := val.(*loginRateLimiterEntry)
	if loaded {
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
	}
	return entry.limiter
}

// cleanupStale removes rate limiters that haven't been accessed in the last
// hour.
func (l *LoginRateLimiter) cleanupStale(ctx context.Context, interval time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-1 * time.Hour)
			l.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*loginRateLimiterEntry)
				entry.mu.Lock()
				shouldDelete := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if shouldDelete {
					l.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
