package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointLimit{
			{Path: "/analyze/score", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
			{Path: "/jobs/", Method: "PATCH", Limit: 120, Window: time.Minute, Burst: 3},
		},
	}
}

func TestLimiter_BurstThenLimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	// Burst of 2 allowed, third request rejected
	allowed, _ := l.Allow("1.2.3.4", "/analyze/score", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/analyze/score", "POST")
	assert.True(t, allowed)

	allowed, info := l.Allow("1.2.3.4", "/analyze/score", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 60, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/analyze/score", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.1.1.1", "/analyze/score", "POST")
	assert.False(t, allowed)

	// Fresh client still has its full burst
	allowed, _ = l.Allow("2.2.2.2", "/analyze/score", "POST")
	assert.True(t, allowed)
}

func TestLimiter_PrefixMatchSharesBucket(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	// Different job IDs draw from the same PATCH /jobs/ bucket
	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("1.2.3.4", fmt.Sprintf("/jobs/%d", i), "PATCH")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.2.3.4", "/jobs/99", "PATCH")
	assert.False(t, allowed)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/analyze/score", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_UnmatchedEndpointUsesDefault(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 2
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/jobs", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/jobs", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := l.Allow("1.2.3.4", "/analyze/score", "POST")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Burst capacity is 2, only a couple of the racing requests pass
	assert.GreaterOrEqual(t, allowedCount, 2)
	assert.LessOrEqual(t, allowedCount, 3)
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	tb := newTokenBucket(1, 100) // 100 tokens/sec for a fast test

	allowed, _, _ := tb.take()
	require.True(t, allowed)
	allowed, _, _ = tb.take()
	require.False(t, allowed)

	time.Sleep(20 * time.Millisecond)
	allowed, _, _ = tb.take()
	assert.True(t, allowed)
}
