package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/accountvault/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// ipLimiterStore holds per-IP rate limiters.
type ipLimiterStore struct {
	limiters sync.Map // client IP -> *ipLimiterEntry
	rps      float64
	burst    int
	now      func() time.Time
}

type ipLimiterEntry struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	lastAccess time.Time
}

// AuthRateLimitMiddleware enforces a token bucket per client IP on the
// unauthenticated login and registration endpoints, which are the ones exposed
// to password guessing. Idle limiters are evicted by a goroutine that runs
// until ctx is done.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket is empty.
func AuthRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &ipLimiterStore{
		rps:   rps,
		burst: burst,
		now:   time.Now,
	}

	go store.cleanupStale(ctx, limiterCleanupInterval, limiterIdleTimeout)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := max(int(reservation.Delay().Seconds()), 1)
			reservation.Cancel()

			logger.Debug("auth rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Too many authentication attempts from this IP, retry later",
			})
			return
		}

		c.Next()
	}
}

func (s *ipLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := s.now()
	val, loaded := s.limiters.Load(ip)
	if !loaded {
		val, _ = s.limiters.LoadOrStore(ip, &ipLimiterEntry{
			limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
			lastAccess: now,
		})
	}

	entry := val.(*ipLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = now
	entry.mu.Unlock()
	return entry.limiter
}

// evictIdle removes limiters not used since now-idle.
func (s *ipLimiterStore) evictIdle(idle time.Duration) {
	threshold := s.now().Add(-idle)
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*ipLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}

func (s *ipLimiterStore) cleanupStale(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(idle)
		}
	}
}
