package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dashmart/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Cache that has no value for a key.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores raw answers for a bounded time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache adapts a go-redis client to Cache.
type RedisCache struct {
	Client *redis.Client
	Prefix string
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client, Prefix: "suggestions:recipe:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, c.Prefix+key, value, ttl).Err()
}

// CachedService remembers recipe answers per normalized query. Forecasts
// depend on live inventory and are always forwarded.
type CachedService struct {
	next  Service
	cache Cache
	ttl   time.Duration
}

func NewCachedService(next Service, cache Cache, ttl time.Duration) *CachedService {
	return &CachedService{next: next, cache: cache, ttl: ttl}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (s *CachedService) Recipe(ctx context.Context, query string) (*models.RecipeSuggestion, error) {
	key := cacheKey(query)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached models.RecipeSuggestion
		if err := json.Unmarshal(raw, &cached); err == nil && cached.RecipeName != "" {
			return &cached, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("suggestions: cache read failed: %v", err)
	}

	rec, err := s.next.Recipe(ctx, query)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: empty answer", ErrExternalService)
	}

	if raw, err := json.Marshal(rec); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			log.Printf("suggestions: cache write failed: %v", err)
		}
	}
	return rec, nil
}

func (s *CachedService) Forecast(ctx context.Context, inventory []models.Product, orders []models.Order) (*models.SupplyForecast, error) {
	return s.next.Forecast(ctx, inventory, orders)
}
