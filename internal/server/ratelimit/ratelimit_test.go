package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, config *Config) (*Limiter, *time.Time) {
	t.Helper()
	l := NewLimiter(config)
	t.Cleanup(l.Stop)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.InDelta(t, float64(6*time.Second), float64(info.RetryAfter), float64(time.Millisecond))
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})

	for i := 0; i < 60; i++ {
		allowed, _ := l.Allow("c", "/test", "GET")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/test", "GET")
	require.False(t, allowed)

	*clock = clock.Add(time.Second)
	allowed, _ = l.Allow("c", "/test", "GET")
	assert.True(t, allowed, "one token refills per second")

	allowed, _ = l.Allow("c", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Lists(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		client    string
		wantAllow bool
	}{
		{
			name:      "disabled",
			config:    &Config{Enabled: false},
			client:    "127.0.0.1",
			wantAllow: true,
		},
		{
			name:      "whitelisted",
			config:    &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, Whitelist: map[string]bool{"127.0.0.1": true}},
			client:    "127.0.0.1",
			wantAllow: true,
		},
		{
			name:      "blacklisted",
			config:    &Config{Enabled: true, DefaultLimit: 1000, DefaultWindow: time.Minute, Blacklist: map[string]bool{"192.168.1.1": true}},
			client:    "192.168.1.1",
			wantAllow: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLimiter(t, tt.config)
			for i := 0; i < 5; i++ {
				allowed, info := l.Allow(tt.client, "/test", "GET")
				assert.Equal(t, tt.wantAllow, allowed)
				assert.Equal(t, 0, info.Limit)
			}
		})
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("c", "/analyze", "POST")
		require.True(t, allowed, "burst request %d", i+1)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, _ := l.Allow("c", "/analyze", "POST")
	assert.False(t, allowed, "burst exhausted")

	allowed, info := l.Allow("c", "/other", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	allowed, _ = l.Allow("other-client", "/analyze", "POST")
	assert.True(t, allowed, "buckets are per client")
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		count int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("c", "/test", "GET"); allowed {
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, count)
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Minute})

	for i := 0; i < 4; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i), "/test", "GET")
	}
	require.Equal(t, 4, l.size())

	*clock = clock.Add(2 * time.Minute)
	l.Allow("10.0.0.0", "/test", "GET")
	l.cleanupBuckets()

	assert.Equal(t, 1, l.size())
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l, _ := newTestLimiter(t, nil)
	allowed, info := l.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, DefaultLimit, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 30},
		{Path: "/reports/", Method: "GET", Limit: 5},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantNil   bool
		wantLimit int
	}{
		{name: "exact", path: "/analyze", method: "POST", wantLimit: 30},
		{name: "prefix", path: "/reports/abc", method: "GET", wantLimit: 5},
		{name: "method mismatch", path: "/analyze", method: "GET", wantNil: true},
		{name: "health", path: "/health", method: "GET", wantLimit: 0},
		{name: "unknown", path: "/other", method: "POST", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	env := map[string]string{
		"RATE_LIMIT_DEFAULT_LIMIT": "50",
		"RATE_LIMIT_ANALYZE_LIMIT": "3",
		"RATE_LIMIT_WHITELIST":     "10.0.0.1, 10.0.0.2,",
	}
	cfg := LoadConfig(func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	require.Len(t, cfg.EndpointConfigs, 1)
	assert.Equal(t, 3, cfg.EndpointConfigs[0].Limit)
	assert.Equal(t, 5, cfg.EndpointConfigs[0].Burst)

	disabled := LoadConfig(func(k string) string {
		if k == "RATE_LIMIT_ENABLED" {
			return "false"
		}
		return ""
	})
	assert.False(t, disabled.Enabled)
}
