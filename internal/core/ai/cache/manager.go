package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"

	"go.uber.org/zap"
)

// CacheManager is the in-memory prompt→response cache in front of the
// text-generation endpoint, with TTL expiry and LRU eviction.
type CacheManager struct {
	config   *config.Config
	mu       sync.RWMutex
	store    map[string]cacheEntry
	stats    cacheStats
	stop     chan struct{}
	stopOnce sync.Once
}

type cacheEntry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

var errCacheMiss = fmt.Errorf("cache miss")

// NewManager creates the cache manager; returns nil when caching is
// disabled in config.
func NewManager(cfg *config.Config) *CacheManager {
	if !cfg.Cache.Enabled {
		common.LogInfo("response cache disabled")
		return nil
	}

	m := &CacheManager{
		config: cfg,
		store:  make(map[string]cacheEntry),
		stats:  cacheStats{},
		stop:   make(chan struct{}),
	}

	go m.startCleanup()

	common.LogInfo("response cache initialized",
		zap.Int("max_size", cfg.Cache.MaxSize),
		zap.Duration("ttl", cfg.Cache.TTL),
		zap.Duration("cleanup_interval", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get returns the cached response for a prompt, or an error on miss or
// expiry.
func (m *CacheManager) Get(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.generateKey(prompt)

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("prompt", key)
		return "", errCacheMiss
	}

	if time.Now().After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogDebug("cache entry expired", zap.String("key", key))
		return "", errCacheMiss
	}

	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++

	common.LogCacheHit("prompt", key)
	return entry.value, nil
}

// Set stores the response for a prompt, evicting expired and LRU
// entries when the cache is full.
func (m *CacheManager) Set(ctx context.Context, prompt, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.config.Cache.MaxSize {
		evicted := m.cleanup()
		common.LogDebug("cache cleanup ran", zap.Int("evicted", evicted))

		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRU()
		}

		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			common.LogWarn("cache full", zap.Int("size", len(m.store)))
			return fmt.Errorf("cache full")
		}
	}

	now := time.Now()
	m.store[m.generateKey(prompt)] = cacheEntry{
		value:       value,
		expiresAt:   now.Add(m.config.Cache.TTL),
		createdAt:   now,
		lastAccess:  now,
		accessCount: 0,
	}

	return nil
}

func (m *CacheManager) generateKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "prompt:" + hex.EncodeToString(hash[:])
}

func (m *CacheManager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// cleanup removes expired entries. Caller must hold the lock.
func (m *CacheManager) cleanup() int {
	now := time.Now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRU drops the least-used entry. Caller must hold the lock.
func (m *CacheManager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("cache entry evicted (LRU)", zap.String("key", oldestKey))
	}
}

// GetStats reports cache statistics.
func (m *CacheManager) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}

	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"errors":    m.stats.errors,
		"hit_ratio": hitRatio,
	}
}

// Close stops the cleanup goroutine and empties the cache. Safe to
// call on a nil manager (caching disabled).
func (m *CacheManager) Close() error {
	if m == nil {
		return nil
	}

	m.stopOnce.Do(func() {
		close(m.stop)
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("response cache closed",
		zap.Int64("hits", m.stats.hits),
		zap.Int64("misses", m.stats.misses),
		zap.Int64("evictions", m.stats.evictions),
	)
	return nil
}
