package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/insynpulse/internal/domain/dto"
)

// Defaults for RateLimiter: `limit` requests per `window`, refilled evenly.
var (
	window = time.Minute
	limit  = 60
)

// visitor is a per-client token bucket and the last time it was used.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is an in-memory middleware that limits the number of requests per client IP.
//
// Behavior:
//   - Each client IP gets a token bucket holding `limit` tokens, refilled at
//     `limit` per `window` (default: 60 requests per minute).
//   - Buckets idle for longer than ten windows are evicted.
//   - If the bucket is empty, returns HTTP 429 Too Many Requests.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter())
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{
//	    "message": "rate limit exceeded",
//	    "timestamp": "..."
//	}
func RateLimiter() gin.HandlerFunc {
	var (
		mu        sync.Mutex
		visitors  = make(map[string]*visitor)
		lastSweep = time.Now()
		every     = rate.Every(window / time.Duration(limit))
		burst     = limit
		idle      = 10 * window
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > idle {
			for k, v := range visitors {
				if now.Sub(v.lastSeen) > idle {
					delete(visitors, k)
				}
			}
			lastSweep = now
		}
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(every, burst)}
			visitors[ip] = v
		}
		v.lastSeen = now
		allowed := v.limiter.AllowN(now, 1)
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}
