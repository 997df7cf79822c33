package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/roomboom-api/internal/config"
)

func setupLimiter(t *testing.T, requests int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLimiter(client, config.RateLimitConfig{
		Enabled:  true,
		Requests: requests,
		Window:   time.Minute,
	}), mr
}

func TestLimiter_ExceedsAfterLimit(t *testing.T) {
	ctx := context.Background()
	limiter, _ := setupLimiter(t, 3)

	for i := 0; i < 3; i++ {
		exceeded, err := limiter.CheckIPRateLimitWithPurpose(ctx, "10.0.0.1", "login")
		require.NoError(t, err)
		assert.False(t, exceeded, "request %d", i+1)
		require.NoError(t, limiter.RecordIPRequestWithPurpose(ctx, "10.0.0.1", "login"))
	}

	exceeded, err := limiter.CheckIPRateLimitWithPurpose(ctx, "10.0.0.1", "login")
	require.NoError(t, err)
	assert.True(t, exceeded)
}

func TestLimiter_SeparatesIPsAndPurposes(t *testing.T) {
	ctx := context.Background()
	limiter, _ := setupLimiter(t, 1)

	require.NoError(t, limiter.RecordIPRequestWithPurpose(ctx, "10.0.0.1", "login"))

	exceeded, err := limiter.CheckIPRateLimitWithPurpose(ctx, "10.0.0.1", "register")
	require.NoError(t, err)
	assert.False(t, exceeded)

	exceeded, err = limiter.CheckIPRateLimitWithPurpose(ctx, "10.0.0.2", "login")
	require.NoError(t, err)
	assert.False(t, exceeded)
}

func TestLimiter_WindowExpires(t *testing.T) {
	ctx := context.Background()
	limiter, mr := setupLimiter(t, 1)

	require.NoError(t, limiter.RecordIPRequestWithPurpose(ctx, "10.0.0.1", "login"))
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:ip:login:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)

	exceeded, err := limiter.CheckIPRateLimitWithPurpose(ctx, "10.0.0.1", "login")
	require.NoError(t, err)
	assert.False(t, exceeded)
}

func TestLimiter_WindowIsNotExtendedByLaterHits(t *testing.T) {
	ctx := context.Background()
	limiter, mr := setupLimiter(t, 5)
	key := "ratelimit:ip:login:10.0.0.1"

	require.NoError(t, limiter.RecordIPRequestWithPurpose(ctx, "10.0.0.1", "login"))
	mr.FastForward(20 * time.Second)
	require.NoError(t, limiter.RecordIPRequestWithPurpose(ctx, "10.0.0.1", "login"))

	assert.Equal(t, 40*time.Second, mr.TTL(key))
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestLimiter_CounterWithoutTTLGetsOne(t *testing.T) {
	ctx := context.Background()
	limiter, mr := setupLimiter(t, 1)
	key := "ratelimit:ip:login:10.0.0.1"

	// A counter stranded without expiry by an earlier failed EXPIRE
	require.NoError(t, mr.Set(key, "7"))
	assert.Zero(t, mr.TTL(key))

	require.NoError(t, limiter.RecordIPRequestWithPurpose(ctx, "10.0.0.1", "login"))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	exceeded, err := limiter.CheckIPRateLimitWithPurpose(ctx, "10.0.0.1", "login")
	require.NoError(t, err)
	assert.False(t, exceeded)
}

func TestDisabledLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(nil, config.RateLimitConfig{Enabled: false})

	for i := 0; i < 100; i++ {
		require.NoError(t, limiter.RecordIPRequestWithPurpose(ctx, "10.0.0.1", "login"))
	}

	exceeded, err := limiter.CheckIPRateLimitWithPurpose(ctx, "10.0.0.1", "login")
	require.NoError(t, err)
	assert.False(t, exceeded)
}
