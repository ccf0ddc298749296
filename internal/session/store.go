package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/jon4hz/workoutlog/internal/database"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by a Store when the key has no value.
var ErrNotFound = errors.New("session value not found")

// Store is the durable key-value backend of the session slot.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewStore returns the store selected by cfg.
// It returns a nil Store for the "none" backend.
func NewStore(cfg *config.SessionConfig, db database.DB) (Store, error) {
	backend := cfg.GetBackend()
	switch backend {
	case config.SessionBackendDatabase:
		if db == nil {
			return nil, fmt.Errorf("database session backend requires a database")
		}
		return NewDatabaseStore(db), nil
	case config.SessionBackendMemory:
		return NewMemoryStore(), nil
	case config.SessionBackendRedis:
		return NewRedisStore(cfg.RedisURL)
	case config.SessionBackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", backend)
	}
}

// DatabaseStore keeps the slot in the kv table of the workout database.
type DatabaseStore struct {
	db database.DB
}

// NewDatabaseStore creates a store backed by db.
func NewDatabaseStore(db database.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.db.GetValue(ctx, key)
	if errors.Is(err, database.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *DatabaseStore) Set(ctx context.Context, key, value string) error {
	return s.db.SetValue(ctx, key, value)
}

func (s *DatabaseStore) Delete(ctx context.Context, key string) error {
	return s.db.DeleteValue(ctx, key)
}

// Close is a no-op, the database is owned by the caller.
func (s *DatabaseStore) Close() error {
	return nil
}

// CacheStore keeps the slot in a gocache backend.
type CacheStore struct {
	cache  *cache.Cache[string]
	closer func() error
}

// NewMemoryStore returns a process local store. Values do not survive a restart.
func NewMemoryStore() *CacheStore {
	gocacheClient := gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	gocacheStore := go_store.NewGoCache(gocacheClient)
	return &CacheStore{cache: cache.New[string](gocacheStore)}
}

// NewRedisStore returns a store backed by redis. addr is either host:port
// or a redis:// URL.
func NewRedisStore(addr string) (*CacheStore, error) {
	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		opts = parsed
	}
	redisClient := redis.NewClient(opts)
	redisStore := redis_store.NewRedis(redisClient)
	return &CacheStore{
		cache:  cache.New[string](redisStore),
		closer: redisClient.Close,
	}, nil
}

func (s *CacheStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *CacheStore) Set(ctx context.Context, key, value string) error {
	return s.cache.Set(ctx, key, value)
}

func (s *CacheStore) Delete(ctx context.Context, key string) error {
	err := s.cache.Delete(ctx, key)
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

func (s *CacheStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func isNotFound(err error) bool {
	var notFound *store.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	return strings.Contains(err.Error(), "value not found")
}
