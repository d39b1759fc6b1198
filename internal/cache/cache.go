// Package cache memoizes generated answers keyed by the raw question string.
// Keys are compared by exact string equality; the cache is deliberately
// unbounded and holds at most one answer per question, last write wins.
package cache

import (
	"context"
	"fmt"
)

// Store is the interface answer caches must satisfy.
type Store interface {
	Get(ctx context.Context, question string) (string, bool, error)
	Set(ctx context.Context, question, answer string) error
}

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)

// RedisOptions carries connection settings for the redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// New creates a Store of the requested type. The in-memory store is the
// default; redis is available when several replicas should share answers.
func New(storeType StoreType, redisOpts RedisOptions) (Store, error) {
	switch storeType {
	case InMemoryStore, "":
		return NewInMemoryStore(), nil
	case RedisStore:
		return NewRedisStore(redisOpts.Addr, redisOpts.Password, redisOpts.DB), nil
	default:
		return nil, fmt.Errorf("unsupported cache store type: %s", storeType)
	}
}
