package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache()
	c.now = func() time.Time { return clock }

	var _ BytesCache = c

	_, ok, err := c.GetBytes(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetBytes(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, c.SetBytes(ctx, "forever", []byte("b"), 0))

	b, ok, _ := c.GetBytes(ctx, "short")
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), b)

	clock = clock.Add(2 * time.Second)
	_, ok, _ = c.GetBytes(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = c.GetBytes(ctx, "forever")
	assert.True(t, ok)
}

func TestTTLCacheSweep(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache()
	c.now = func() time.Time { return clock }

	_ = c.SetBytes(ctx, "a", []byte("1"), time.Second)
	_ = c.SetBytes(ctx, "b", []byte("2"), time.Hour)
	clock = clock.Add(time.Minute)
	c.Sweep()
	assert.Len(t, c.m, 1)
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	r := NewRedisCache(RedisConfig{Addr: "127.0.0.1:1", Prefix: "astrotrade"})
	defer r.Close()
	var _ BytesCache = r

	assert.Equal(t, "astrotrade:resp:/api/stocks", r.key("resp:/api/stocks"))
	assert.Equal(t, "k", (&RedisCache{}).key("k"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, ok, err := r.GetBytes(ctx, "x")
	assert.False(t, ok)
	assert.Error(t, err, "unreachable server surfaces an error")
}
