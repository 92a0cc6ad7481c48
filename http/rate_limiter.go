package http

import (
	"sync"
	"time"
)

const (
	staleVisitorAge = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

type visitor struct {
	remaining  int
	lastRefill time.Time
}

// RateLimiter is a per-client token bucket. Buckets refill to capacity once
// per refill window; clients idle longer than staleVisitorAge are dropped by
// a background cleanup goroutine.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	visitors  map[string]*visitor
	stop      chan struct{}
}

func NewRateLimiter(capacity int, refillDur time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		visitors:  make(map[string]*visitor),
		stop:      make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for ip, v := range r.visitors {
		if now.Sub(v.lastRefill) > staleVisitorAge {
			delete(r.visitors, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	close(r.stop)
}

// Allow reports whether the client identified by ip may proceed, consuming
// one token when it may.
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	v, exists := r.visitors[ip]
	if !exists {
		r.visitors[ip] = &visitor{
			remaining:  r.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(v.lastRefill) >= r.refillDur {
		v.remaining = r.capacity
		v.lastRefill = now
	}

	if v.remaining <= 0 {
		return false
	}

	v.remaining--
	return true
}
