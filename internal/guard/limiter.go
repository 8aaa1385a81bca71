package guard

import (
	"sync"
	"time"
)

// tokenBucket is a per-caller token bucket. Tokens refill at a steady rate
// up to the capacity; each request consumes one token.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Limiter tracks request rates per caller using token buckets. It backs the
// recent-request guard when the caller does not supply its own count.
type Limiter struct {
	buckets    map[string]*tokenBucket
	mu         sync.RWMutex
	limit      int
	window     time.Duration
	lastAccess map[string]time.Time
	accessMu   sync.Mutex

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter allowing limit requests per window per caller.
func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*tokenBucket),
		limit:      limit,
		window:     window,
		lastAccess: make(map[string]time.Time),
	}
	l.cleanupTicker = time.NewTicker(5 * time.Minute)
	l.cleanupStop = make(chan struct{})
	go l.cleanupLoop()
	return l
}

// Allow reports whether the caller may issue another request now.
func (l *Limiter) Allow(callerID string) bool {
	bucket := l.getBucket(callerID)

	l.accessMu.Lock()
	l.lastAccess[callerID] = time.Now()
	l.accessMu.Unlock()

	return bucket.allow()
}

func (l *Limiter) getBucket(key string) *tokenBucket {
	l.mu.RLock()
	bucket, exists := l.buckets[key]
	l.mu.RUnlock()
	if exists {
		return bucket
	}

	refillRate := float64(l.limit) / l.window.Seconds()
	bucket = newTokenBucket(l.limit, refillRate)

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, exists := l.buckets[key]; exists {
		return existing
	}
	l.buckets[key] = bucket
	return bucket
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets drops buckets idle for over an hour.
func (l *Limiter) cleanupBuckets() {
	cutoff := time.Now().Add(-time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accessMu.Lock()
	defer l.accessMu.Unlock()

	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	l.cleanupTicker.Stop()
	close(l.cleanupStop)
}
