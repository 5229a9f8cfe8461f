package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type expiring[V any] struct {
	value   V
	expires time.Time
}

// TTLCache is a size-bounded LRU whose entries expire after a fixed TTL.
// A nil *TTLCache is valid and never holds anything.
type TTLCache[V any] struct {
	entries *lru.Cache[string, expiring[V]]
	ttl     time.Duration
	now     func() time.Time
}

func NewTTLCache[V any](size int, ttl time.Duration) (*TTLCache[V], error) {
	entries, err := lru.New[string, expiring[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache[V]{entries: entries, ttl: ttl, now: time.Now}, nil
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	e, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(e.expires) {
		c.entries.Remove(key)
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V) {
	if c == nil {
		return
	}
	c.entries.Add(key, expiring[V]{value: value, expires: c.now().Add(c.ttl)})
}

func (c *TTLCache[V]) Delete(key string) {
	if c == nil {
		return
	}
	c.entries.Remove(key)
}
