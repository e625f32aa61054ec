package ratelimiter

import (
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// GetterSetter is where the limiter keeps its bucket state. The in-memory
// implementation below is the default; anything keyed int storage with TTL
// (a redis client, say) satisfies it.
type GetterSetter interface {
	Get(key string) (int, error)
	Set(key string, value int) error
	SetWithExpiration(key string, value int, expiration time.Duration) error
	Close() error
}
