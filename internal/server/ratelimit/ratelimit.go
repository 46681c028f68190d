// Package ratelimit provides per-client request rate limiting using a
// token bucket per client and endpoint.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to its capacity
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(tb.capacity, tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
}

// take consumes one token if available and reports the remaining count
// and when the bucket refills completely.
func (tb *tokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.refill(now)

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		allowed = true
	}

	remaining = int(tb.tokens)
	resetTime = now
	if tb.tokens < tb.capacity {
		secondsUntilFull := (tb.capacity - tb.tokens) / tb.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// EndpointLimit is a per-endpoint rate limit. Paths ending in "/" are
// matched by prefix, others exactly.
type EndpointLimit struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Endpoints       []EndpointLimit
}

// DefaultConfig returns the limits used by the API server. Scoring and
// job mutation endpoints are held tighter than plain reads.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Endpoints: []EndpointLimit{
			{Path: "/analyze/score", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
			{Path: "/jobs/", Method: "PATCH", Limit: 120, Window: time.Minute, Burst: 20},
		},
	}
}

// Info describes the rate limit state returned with each decision
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks token buckets per client and endpoint
type Limiter struct {
	mu         sync.Mutex
	config     *Config
	buckets    map[string]*tokenBucket
	lastAccess map[string]time.Time
	stop       chan struct{}
	ticker     *time.Ticker
}

// NewLimiter creates a limiter; a nil config uses DefaultConfig
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*tokenBucket),
		lastAccess: make(map[string]time.Time),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// match finds the endpoint limit for a path and method. The health
// endpoint is never limited.
func (l *Limiter) match(path, method string) *EndpointLimit {
	if path == "/health" && method == "GET" {
		return &EndpointLimit{}
	}
	for i := range l.config.Endpoints {
		e := &l.config.Endpoints[i]
		if e.Method != method {
			continue
		}
		if e.Path == path {
			return e
		}
		if strings.HasSuffix(e.Path, "/") && strings.HasPrefix(path, e.Path) {
			return e
		}
	}
	return nil
}

// Allow reports whether a request from clientID to the endpoint may
// proceed, along with the current limit state.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	limit := l.match(path, method)
	if limit == nil {
		limit = &EndpointLimit{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if limit.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + method + ":" + limit.pathKey(path)
	bucket := l.bucket(key, limit)

	allowed, remaining, resetTime := bucket.take()
	info := Info{
		Allowed:   allowed,
		Limit:     limit.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(resetTime), 0)
	}
	return allowed, info
}

// pathKey buckets prefix-matched endpoints together so a client cannot
// multiply its budget across path parameters.
func (e *EndpointLimit) pathKey(path string) string {
	if e.Path != "" {
		return e.Path
	}
	return path
}

func (l *Limiter) bucket(key string, limit *EndpointLimit) *tokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastAccess[key] = time.Now()
	if b, ok := l.buckets[key]; ok {
		return b
	}

	burst := limit.Burst
	if burst <= 0 {
		burst = limit.Limit
	}
	b := newTokenBucket(burst, float64(limit.Limit)/limit.Window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.evictStale()
		case <-l.stop:
			return
		}
	}
}

// evictStale drops buckets idle for over an hour
func (l *Limiter) evictStale() {
	cutoff := time.Now().Add(-1 * time.Hour)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop terminates the cleanup goroutine
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
