package services

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/AnshRaj112/feedbackhub-backend/internal/metrics"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix  = "cache:"
	DefaultCacheTTL = 8 * time.Hour
	MinCacheTTL     = time.Minute
	MaxCacheTTL     = 24 * time.Hour
)

// Cache stores JSON-encodable values. A miss is (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// RedisCache keeps values as JSON strings under CacheKeyPrefix.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value from cache
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, CacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false, err
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true, nil
}

// Set stores a value with ttl clamped to [MinCacheTTL, MaxCacheTTL].
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKeyPrefix+key, data, clampTTL(ttl)).Err()
}

func clampTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultCacheTTL
	}
	if ttl < MinCacheTTL {
		return MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		return MaxCacheTTL
	}
	return ttl
}

// NoopCache never stores anything. Used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (NoopCache) Set(context.Context, string, any, time.Duration) error { return nil }

// CacheKey builds "<resource>:<hash>" where hash is a BLAKE2b-256 digest of
// the parts. Parts are separated by a NUL byte so ("ab","c") != ("a","bc").
func CacheKey(resource string, parts ...string) string {
	sum := blake2b.Sum256([]byte(strings.Join(parts, "\x00")))
	return resource + ":" + hex.EncodeToString(sum[:])
}
