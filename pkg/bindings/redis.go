package bindings

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces binding keys so a shared Redis can host other data.
const keyPrefix = "janus:binding:"

// RedisStore implements Store on top of Redis.
// This is the backend for multi-replica deployments: all router instances
// share one eventually consistent view of the bindings, with last-write-wins
// semantics on concurrent updates.
type RedisStore struct {
	client *redis.Client
}

// RedisStoreConfig configures the Redis backend.
type RedisStoreConfig struct {
	// Addr is the Redis server address ("host:port").
	Addr string

	// Password is the optional Redis AUTH password.
	Password string

	// DB is the Redis logical database number.
	DB int

	// DialTimeout bounds connection establishment.
	// Default: 5 seconds
	DialTimeout time.Duration
}

// NewRedisStore creates a Redis-backed binding store and verifies
// connectivity with a ping.
func NewRedisStore(ctx context.Context, cfg RedisStoreConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis store: addr cannot be empty")
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis store: ping %s: %w", cfg.Addr, err)
	}

	return &RedisStore{client: client}, nil
}

// Get returns the bound environment for a tenant, if any.
func (s *RedisStore) Get(ctx context.Context, tenantID string) (Environment, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+tenantID).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis store: get %q: %w", tenantID, err)
	}

	env := Environment(raw)
	if !env.Valid() {
		return "", false, fmt.Errorf("redis store: corrupt binding for %q: %q", tenantID, raw)
	}
	return env, true, nil
}

// Put creates or overwrites the binding for a tenant. Bindings have no TTL.
func (s *RedisStore) Put(ctx context.Context, tenantID string, env Environment) error {
	if err := s.client.Set(ctx, keyPrefix+tenantID, string(env), 0).Err(); err != nil {
		return fmt.Errorf("redis store: put %q: %w", tenantID, err)
	}
	return nil
}

// Delete removes the binding for a tenant. Idempotent.
func (s *RedisStore) Delete(ctx context.Context, tenantID string) error {
	if err := s.client.Del(ctx, keyPrefix+tenantID).Err(); err != nil {
		return fmt.Errorf("redis store: delete %q: %w", tenantID, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
