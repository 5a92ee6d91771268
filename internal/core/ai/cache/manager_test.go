package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef-finokio/internal/infrastructure/config"
)

func testManager(t *testing.T, maxSize int, ttl time.Duration) *CacheManager {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = maxSize
	cfg.Cache.TTL = ttl
	cfg.Cache.CleanupInterval = time.Hour

	m := NewManager(cfg)
	require.NotNil(t, m)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestDisabledCacheReturnsNil(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	assert.Nil(t, NewManager(cfg))
}

func TestSetThenGet(t *testing.T) {
	m := testManager(t, 10, time.Hour)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "genera 3 ricette", `[{"id":"x"}]`))

	value, err := m.Get(ctx, "genera 3 ricette")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, value)

	_, err = m.Get(ctx, "altro prompt")
	assert.Error(t, err)
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	m := testManager(t, 10, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt", "value"))
	time.Sleep(5 * time.Millisecond)

	_, err := m.Get(ctx, "prompt")
	assert.Error(t, err)
}

func TestLRUEvictionWhenFull(t *testing.T) {
	m := testManager(t, 2, time.Hour)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	// Touch "a" so "b" is the LRU entry.
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "b")
	assert.Error(t, err)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	m := testManager(t, 10, time.Hour)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt", "value"))
	_, _ = m.Get(ctx, "prompt")
	_, _ = m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}

func TestCloseStopsCleanupAndIsIdempotent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = 10
	cfg.Cache.TTL = time.Hour
	cfg.Cache.CleanupInterval = time.Millisecond

	m := NewManager(cfg)
	require.NotNil(t, m)

	require.NoError(t, m.Set(context.Background(), "prompt", "value"))

	require.NoError(t, m.Close())
	// the stop channel is closed once, a second Close must not panic
	require.NoError(t, m.Close())

	select {
	case <-m.stop:
	default:
		t.Fatal("stop channel still open after Close")
	}
}

func TestCloseOnNilManager(t *testing.T) {
	var m *CacheManager
	assert.NoError(t, m.Close())
}
