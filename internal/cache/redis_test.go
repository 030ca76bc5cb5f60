package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healeo-sense/internal/engine"
)

func newTestClient(t *testing.T, limit int) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(context.Background(), Options{
		Addr:            mr.Addr(),
		RateLimit:       limit,
		RateLimitWindow: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_GetSet(t *testing.T) {
	c, mr := newTestClient(t, 10)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), 30*time.Second))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	mr.FastForward(31 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestClient_IsRateLimited(t *testing.T) {
	c, mr := newTestClient(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.False(t, c.IsRateLimited(ctx, "10.0.0.1"), "request %d", i+1)
	}
	assert.True(t, c.IsRateLimited(ctx, "10.0.0.1"))
	assert.False(t, c.IsRateLimited(ctx, "10.0.0.2"))

	mr.FastForward(61 * time.Second)
	assert.False(t, c.IsRateLimited(ctx, "10.0.0.1"))
}

func TestClient_FailsOpenWhenRedisIsDown(t *testing.T) {
	c, mr := newTestClient(t, 1)
	ctx := context.Background()
	mr.Close()

	for i := 0; i < 5; i++ {
		assert.False(t, c.IsRateLimited(ctx, "10.0.0.1"))
	}
	_, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestNewClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewClient(ctx, Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestRecommendationKey(t *testing.T) {
	assert.Equal(t, "recommendation:u1:Evening Snacks:high-protein",
		RecommendationKey("u1", engine.EveningSnacks, engine.HighProtein))
}
