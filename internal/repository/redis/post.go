package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/repository/cache"
)

const (
	KeyPostAuthor = "post:author:%s"
)

type postCache struct {
	client *redis.Client
	now    func() time.Time
}

var _ domain.PostCache = (*postCache)(nil)

func NewPostCache(client *redis.Client) *postCache {
	return &postCache{client: client, now: time.Now}
}

func (c *postCache) GetAuthorName(ctx context.Context, slug string) (string, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyPostAuthor, slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, domain.ErrCacheMiss
	} else if err != nil {
		return "", false, err
	}

	var entry cache.Entry[string]
	if err := json.Unmarshal(data, &entry); err != nil {
		// unreadable entries are treated as absent and get overwritten
		return "", false, domain.ErrCacheMiss
	}
	return entry.Data, entry.IsLogicalExpired(c.now()), nil
}

func (c *postCache) SetAuthorName(ctx context.Context, slug, name string, ttl time.Duration) error {
	data, err := json.Marshal(cache.NewEntry(name, ttl, c.now()))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyPostAuthor, slug), string(data), ttl*cache.PhysicalTTLFactor).Err()
}
