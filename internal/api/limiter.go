package api

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// clientLimiter hands out one token bucket per client key. Buckets for
// clients idle longer than the configured window are evicted.
type clientLimiter struct {
	mu      sync.Mutex
	buckets *cache.Cache
	limit   rate.Limit
	burst   int
}

func newClientLimiter(perSecond float64, burst int, idle time.Duration) *clientLimiter {
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &clientLimiter{
		buckets: cache.New(idle, 2*idle),
		limit:   limit,
		burst:   burst,
	}
}

// Allow reports whether key may make one more request now.
func (l *clientLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var limiter *rate.Limiter
	if cached, ok := l.buckets.Get(key); ok {
		limiter = cached.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	// Re-set on every hit so the expiry tracks the last request.
	l.buckets.SetDefault(key, limiter)
	return limiter.Allow()
}

// Clients returns the number of tracked buckets.
func (l *clientLimiter) Clients() int {
	return l.buckets.ItemCount()
}
