package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-storefront/internal/session"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
	lastGC   time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		lastGC:   time.Now(),
	}
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.lastGC) > s.idleTTL {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.idleTTL {
				delete(s.visitors, k)
			}
		}
		s.lastGC = now
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

// RateLimitByIP allows rps requests per second per client IP with the given burst.
func RateLimitByIP(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)
	return func(c *gin.Context) {
		if !store.allow(c.ClientIP()) {
			abortWith(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimitByUser keys on the session and falls back to the client IP for
// guests. It must run after AuthMiddleware to see the session.
func RateLimitByUser(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if s, ok := session.FromGin(c); ok {
			key = s.Key()
		}

		if !store.allow(key) {
			abortWith(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
