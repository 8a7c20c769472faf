package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "a", Count: 3}, 0))

	var got payload
	require.NoError(t, c.Get(ctx, "k1", &got))
	assert.Equal(t, payload{Name: "a", Count: 3}, got)
}

func TestMemoryCache_MissReturnsSentinel(t *testing.T) {
	c := NewMemoryCache()

	var got string
	err := c.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))

	var got string
	require.NoError(t, c.Get(ctx, "k", &got))

	time.Sleep(20 * time.Millisecond)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "authoring:session:1", "a", 0))
	require.NoError(t, c.Set(ctx, "authoring:session:2", "b", 0))
	require.NoError(t, c.Set(ctx, "other:1", "c", 0))

	require.NoError(t, c.DeletePattern(ctx, "authoring:session:*"))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "authoring:session:1", &got), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, "authoring:session:2", &got), ErrCacheMiss)
	assert.NoError(t, c.Get(ctx, "other:1", &got))
}
