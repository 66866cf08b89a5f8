package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter gives each client IP a fixed budget of requests per window.
// The window opens on the IP's first request and the budget resets only
// when it closes, so no IP gets more than requests admissions in a window.
type ipLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	requests  int
	window    time.Duration
	lastPrune time.Time
	now       func() time.Time
}

type visitor struct {
	limiter     *rate.Limiter
	windowStart time.Time
}

func newIPLimiter(requests int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) > l.window {
		for k, v := range l.visitors {
			if now.Sub(v.windowStart) >= l.window {
				delete(l.visitors, k)
			}
		}
		l.lastPrune = now
	}

	v, ok := l.visitors[ip]
	if !ok || now.Sub(v.windowStart) >= l.window {
		// A zero refill rate leaves exactly requests tokens for the window.
		v = &visitor{limiter: rate.NewLimiter(0, l.requests), windowStart: now}
		l.visitors[ip] = v
	}

	return v.limiter.AllowN(now, 1)
}

// rateLimit rejects clients that exceed requests per window with 429.
func rateLimit(requests int, window time.Duration) gin.HandlerFunc {
	if requests <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	l := newIPLimiter(requests, window)

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			respondKind(c, http.StatusTooManyRequests, kindRateLimited, "Too many requests from this IP, please try again later.")
			return
		}
		c.Next()
	}
}
