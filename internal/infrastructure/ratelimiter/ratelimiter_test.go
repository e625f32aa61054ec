package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowConsumesBurst(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		MaxBurst:         3,
	})

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client-1"), "request %d should pass within burst", i)
	}
	assert.False(t, rl.Allow("client-1"), "burst exhausted")
}

func TestAllowRefillsOverTime(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 100, // one token every 10ms
		MaxBurst:         2,
	})

	require.True(t, rl.Allow("client-1"))
	require.True(t, rl.Allow("client-1"))
	require.False(t, rl.Allow("client-1"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("client-1"), "tokens should refill with elapsed time")
}

func TestSourcesAreIndependent(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		MaxBurst:         1,
	})

	require.True(t, rl.Allow("client-1"))
	require.False(t, rl.Allow("client-1"))
	assert.True(t, rl.Allow("client-2"), "a throttled source must not affect others")
}

func TestRemaining(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		MaxBurst:         5,
	})

	assert.Equal(t, 5, rl.Remaining("client-1"))
	require.True(t, rl.Allow("client-1"))
	assert.Equal(t, 4, rl.Remaining("client-1"))
}

func TestGetSourceKey(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		SourceHeaderKey:  "X-Forwarded-For",
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", rl.GetSourceKey(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", rl.GetSourceKey(r))
}

func TestBurstDefaultsToRate(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 7})
	assert.Equal(t, 7, rl.GetMaxBurst())
}

func TestInMemoryCacheExpiry(t *testing.T) {
	c := NewInMemory()
	defer c.Close()

	require.NoError(t, c.SetWithExpiration("k", 42, 20*time.Millisecond))

	v, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	time.Sleep(40 * time.Millisecond)
	_, err = c.Get("k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
