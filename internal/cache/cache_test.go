package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	t.Run("should return a stored value", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("should report a miss for unknown keys", func(t *testing.T) {
		_, err := c.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("should expire entries after their ttl", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Millisecond))
		time.Sleep(5 * time.Millisecond)
		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("should delete entries", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "gone", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "gone"))
		_, err := c.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("should not share buffers with callers", func(t *testing.T) {
		buf := []byte("abc")
		require.NoError(t, c.Set(ctx, "buf", buf, time.Minute))
		buf[0] = 'x'
		got, err := c.Get(ctx, "buf")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := NewMemoryCache(5 * time.Millisecond)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Millisecond))
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	type payload struct {
		Names []string `json:"names"`
	}

	require.NoError(t, SetJSON(ctx, c, "json", payload{Names: []string{"eggs", "milk"}}, time.Minute))

	var got payload
	require.NoError(t, GetJSON(ctx, c, "json", &got))
	assert.Equal(t, []string{"eggs", "milk"}, got.Names)

	assert.ErrorIs(t, GetJSON(ctx, c, "nope", &got), ErrCacheMiss)
}

func TestKey(t *testing.T) {
	a := Key("recipe", "eggs", "milk")
	assert.Equal(t, a, Key("recipe", "eggs", "milk"))
	assert.NotEqual(t, a, Key("recipe", "eggsmilk"))
	assert.NotEqual(t, a, Key("ingredients", "eggs", "milk"))
	assert.Regexp(t, `^recipe:[0-9a-f]{64}$`, a)
}
