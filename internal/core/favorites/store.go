// Package favorites is the durable favorites store. Recipes are
// toggled by id; the full list is persisted on every mutation under a
// single namespaced Redis key. Without Redis (disabled or unreachable)
// the store degrades to process memory.
package favorites

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"chef-finokio/internal/core/recipe"
	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store holds the favorites list.
type Store struct {
	mu     sync.Mutex
	client *redis.Client
	key    string
	memory []recipe.Recipe
}

// NewStore creates the store. A Redis connection failure is logged and
// degrades to the in-memory backend, never an error.
func NewStore(cfg *config.Config) *Store {
	s := &Store{
		key:    cfg.Favorites.Namespace + ":favorites",
		memory: []recipe.Recipe{},
	}

	if !cfg.Favorites.RedisEnabled {
		common.LogInfo("favorites store using in-memory backend")
		return s
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Favorites.RedisAddr,
		Password: cfg.Favorites.RedisPass,
		DB:       cfg.Favorites.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		common.LogWarn("redis unreachable, favorites fall back to memory",
			zap.String("addr", cfg.Favorites.RedisAddr),
			zap.Error(err),
		)
		return s
	}

	s.client = client
	common.LogInfo("favorites store connected to redis",
		zap.String("addr", cfg.Favorites.RedisAddr),
		zap.String("key", s.key),
	)
	return s
}

// Load returns the current favorites. Missing or corrupt data yields an
// empty list.
func (s *Store) Load(ctx context.Context) []recipe.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Toggle adds the recipe when no favorite with its id exists, removes
// it otherwise. Returns the new list and whether the recipe was added.
func (s *Store) Toggle(ctx context.Context, r recipe.Recipe) ([]recipe.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx)

	filtered := make([]recipe.Recipe, 0, len(list)+1)
	removed := false
	for _, fav := range list {
		if fav.ID == r.ID {
			removed = true
			continue
		}
		filtered = append(filtered, fav)
	}

	added := false
	if !removed {
		filtered = append(filtered, r.Clone())
		added = true
	}

	s.persist(ctx, filtered)
	return filtered, added
}

// IsFavorite reports whether a recipe id is currently a favorite.
func (s *Store) IsFavorite(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fav := range s.load(ctx) {
		if fav.ID == id {
			return true
		}
	}
	return false
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// load reads the list. Caller must hold the lock.
func (s *Store) load(ctx context.Context) []recipe.Recipe {
	if s.client == nil {
		out := make([]recipe.Recipe, len(s.memory))
		copy(out, s.memory)
		return out
	}

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return []recipe.Recipe{}
	}
	if err != nil {
		common.LogWarn("failed to read favorites from redis", zap.Error(err))
		return []recipe.Recipe{}
	}

	var list []recipe.Recipe
	if err := json.Unmarshal(data, &list); err != nil {
		common.LogWarn("corrupt favorites payload, starting empty", zap.Error(err))
		return []recipe.Recipe{}
	}
	return list
}

// persist writes the full list. Caller must hold the lock.
func (s *Store) persist(ctx context.Context, list []recipe.Recipe) {
	if s.client == nil {
		s.memory = list
		return
	}

	data, err := json.Marshal(list)
	if err != nil {
		common.LogError("failed to encode favorites", zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		common.LogError("failed to persist favorites", zap.Error(err))
	}
}
