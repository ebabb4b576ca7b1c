package domain

import "context"

type BloomRepository interface {
	// Add puts the key into the filter
	Add(ctx context.Context, key string) error

	// Exists reports whether the key may be present.
	// true: may exist, confirm against the store
	// false: definitely absent
	Exists(ctx context.Context, key string) (bool, error)

	// BulkAdd adds many keys in one round trip
	BulkAdd(ctx context.Context, keys []string) error
}
