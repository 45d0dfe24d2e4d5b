package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore caches short-lived portal access tokens so every portal
// call does not pay a token-refresh round trip.
type TokenStore interface {
	// Get returns the cached token for key, or "" when absent or
	// expired.
	Get(ctx context.Context, key string) (string, error)
	// Set caches a token with a TTL.
	Set(ctx context.Context, key, token string, ttl time.Duration) error
	// Delete drops a cached token, forcing the next refresh.
	Delete(ctx context.Context, key string) error
}

// --- In-memory implementation ---

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// InMemoryTokenStore is a process-local token cache, the default when
// no Redis is configured
type InMemoryTokenStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewInMemoryTokenStore creates an empty in-memory token store
func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{entries: make(map[string]memoryEntry)}
}

// Get returns the cached token, expiring lazily
func (s *InMemoryTokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", nil
	}
	return entry.token, nil
}

// Set caches a token with a TTL
func (s *InMemoryTokenStore) Set(_ context.Context, key, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete drops a cached token
func (s *InMemoryTokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var _ TokenStore = (*InMemoryTokenStore)(nil)

// --- Redis implementation ---

// RedisTokenStore shares cached tokens across instances
type RedisTokenStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenStore creates a store against a Redis address
func NewRedisTokenStore(addr, password string, db int) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenStore{client: client, keyPrefix: "portal:token:"}, nil
}

// NewRedisTokenStoreWithClient creates a store with an existing
// client. Useful for testing or when sharing a client across
// components.
func NewRedisTokenStoreWithClient(client *redis.Client, keyPrefix string) *RedisTokenStore {
	if keyPrefix == "" {
		keyPrefix = "portal:token:"
	}
	return &RedisTokenStore{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached token, "" when absent
func (s *RedisTokenStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read cached token: %w", err)
	}
	return val, nil
}

// Set caches a token with a TTL
func (s *RedisTokenStore) Set(ctx context.Context, key, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache token: %w", err)
	}
	return nil
}

// Delete drops a cached token
func (s *RedisTokenStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to drop cached token: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}

var _ TokenStore = (*RedisTokenStore)(nil)
