package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"healeo-sense/internal/engine"
	"healeo-sense/internal/resilience"
)

var ErrMiss = errors.New("cache miss")

type Options struct {
	Addr            string
	RateLimit       int
	RateLimitWindow time.Duration
}

type Client struct {
	rdb         *redis.Client
	breaker     *resilience.CircuitBreaker
	maxRequests int
	window      time.Duration
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: opts.Addr,
	})

	err := resilience.Retry(ctx, 3, 500*time.Millisecond, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}

	maxRequests := opts.RateLimit
	if maxRequests <= 0 {
		maxRequests = 10
	}
	window := opts.RateLimitWindow
	if window <= 0 {
		window = 60 * time.Second
	}

	return &Client{
		rdb:         rdb,
		breaker:     resilience.NewCircuitBreaker("redis", 3, 10*time.Second),
		maxRequests: maxRequests,
		window:      window,
	}, nil
}

// IsRateLimited counts a request for key in the current window. Redis errors fail open.
func (c *Client) IsRateLimited(ctx context.Context, key string) bool {
	key = fmt.Sprintf("ratelimit:%s", key)

	var incr *redis.IntCmd
	err := c.breaker.Execute(func() error {
		pipe := c.rdb.Pipeline()
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, c.window)
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		slog.Debug("Rate limit check skipped", "key", key, "error", err)
		return false
	}

	return incr.Val() > int64(c.maxRequests)
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := c.breaker.Execute(func() error {
		var err error
		data, err = c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// a miss is not a failure
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrMiss
	}
	return data, nil
}

func (c *Client) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.breaker.Execute(func() error {
		return c.rdb.Set(ctx, key, data, ttl).Err()
	})
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func RecommendationKey(userID string, period engine.MealPeriod, preference engine.DietPreference) string {
	return fmt.Sprintf("recommendation:%s:%s:%s", userID, period, preference)
}
