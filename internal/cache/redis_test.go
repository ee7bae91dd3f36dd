package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), &redis.Options{Addr: mr.Addr()}, time.Minute, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "product:1", item{ID: 1, Name: "x1"}))

	var got item
	require.NoError(t, c.Get(ctx, "product:1", &got))
	assert.Equal(t, item{ID: 1, Name: "x1"}, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "product:1", &got), redis.Nil)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got item
	assert.ErrorIs(t, c.Get(context.Background(), "nope", &got), redis.Nil)
}

func TestRedisCache_DeleteByPattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "product:1", item{ID: 1}))
	require.NoError(t, c.Set(ctx, "product:2", item{ID: 2}))
	require.NoError(t, c.Set(ctx, "customer:1", item{ID: 1}))

	require.NoError(t, c.DeleteByPattern(ctx, "product:*"))

	assert.False(t, mr.Exists("product:1"))
	assert.False(t, mr.Exists("product:2"))
	assert.True(t, mr.Exists("customer:1"))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), &redis.Options{Addr: addr}, time.Minute, zap.NewNop())
	assert.Error(t, err)
}
