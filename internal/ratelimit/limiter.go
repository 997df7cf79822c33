package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/redmonkez12/roomboom-api/internal/config"
)

// Limiter counts requests per client IP and purpose in fixed Redis windows.
// A Limiter without a client never limits.
type Limiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

func NewLimiter(client *redis.Client, cfg config.RateLimitConfig) *Limiter {
	if !cfg.Enabled {
		return Disabled()
	}
	return &Limiter{
		client:   client,
		requests: cfg.Requests,
		window:   cfg.Window,
	}
}

// Disabled returns a limiter that lets every request through
func Disabled() *Limiter {
	return &Limiter{}
}

// getIPKey generates the Redis key for an IP counter
func getIPKey(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:ip:%s:%s", purpose, ip)
}

// CheckIPRateLimitWithPurpose reports whether ip has used up its requests
// for purpose in the current window
func (l *Limiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	if l.client == nil {
		return false, nil
	}

	count, err := l.client.Get(ctx, getIPKey(ip, purpose)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read rate limit counter: %w", err)
	}

	return count >= l.requests, nil
}

// RecordIPRequestWithPurpose counts one request. The window starts with the
// first request; EXPIRE NX runs on every hit so a counter left without a TTL
// picks one up on the next request.
func (l *Limiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	if l.client == nil {
		return nil
	}

	key := getIPKey(ip, purpose)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record rate limit hit: %w", err)
	}

	return nil
}
