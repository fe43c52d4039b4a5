package middleware

import (
	"net/http"
	"sync"
	"time"

	"detailing/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*visitor
	perMin   int
	mu       sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 100
	}
	return &rateLimiterStore{limiters: make(map[string]*visitor), perMin: perMin}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.limiters[ip]
	if !exists {
		// perMin requests per minute, bursting up to the full minute's allowance.
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops limiters not used for idle.
func (s *rateLimiterStore) sweep(now time.Time, idle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, v := range s.limiters {
		if now.Sub(v.lastSeen) > idle {
			delete(s.limiters, ip)
		}
	}
}

// RateLimitMiddleware limits requests per IP address to perMin per minute.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	var requests uint64
	var mu sync.Mutex

	return func(c *gin.Context) {
		now := time.Now()
		mu.Lock()
		requests++
		if requests%1000 == 0 {
			store.sweep(now, 10*time.Minute)
		}
		mu.Unlock()

		ip := getClientIP(c)
		if !store.getLimiter(ip, now).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": "rate_limited", "message": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
