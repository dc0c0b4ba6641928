// Package cache wraps the Redis client behind a small interface so the
// search cache can be faked in tests.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the part of *redis.Client the search cache uses.
// A ttl <= 0 stores the value without expiry.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	Close() error
}

// IsMiss reports whether err means the key was absent.
func IsMiss(err error) bool {
	return err == redis.Nil
}

// FakeCache implements Cache with per-method hooks for tests.
type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	CloseFn func() error
}

// Get calls GetFn, or panics when it is unset.
func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

// Set calls SetFn, or panics when it is unset.
func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, ttl)
	}
	panic("unexpected Set")
}

// Close is a no-op unless CloseFn is set.
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
