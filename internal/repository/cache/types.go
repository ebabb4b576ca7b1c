package cache

import "time"

// Entry wraps a cached value with a logical expiry. The redis key itself
// lives longer than ExpireAt so a stale value can be served while it is
// rebuilt.
type Entry[T any] struct {
	Data      T         `json:"data"`
	ExpireAt  time.Time `json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`
}

// PhysicalTTLFactor is how much longer the redis key outlives ExpireAt.
const PhysicalTTLFactor = 3

func (e *Entry[T]) IsLogicalExpired(now time.Time) bool {
	return now.After(e.ExpireAt)
}

func NewEntry[T any](data T, ttl time.Duration, now time.Time) *Entry[T] {
	return &Entry[T]{
		Data:      data,
		ExpireAt:  now.Add(ttl),
		CreatedAt: now,
	}
}
