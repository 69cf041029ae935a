package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

// ipRateLimiter keeps one token bucket per client IP
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(perMinute, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// RateLimit limits requests per client IP, answering 429 when exceeded
func RateLimit(perMinute, burst int, log *logger.Logger) gin.HandlerFunc {
	store := newIPRateLimiter(perMinute, burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			log.WithField("ip", ip).Warn("Rate limit exceeded")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, try again later", nil)
			return
		}
		c.Next()
	}
}
