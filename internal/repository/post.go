package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/layers-blog/domain"
)

// AuthorCacheTTL is the logical lifetime of a cached post author name.
const AuthorCacheTTL = 10 * time.Minute

// postRepository 协调层，协调缓存和数据库
type postRepository struct {
	db           domain.PostDBRepository
	cache        domain.PostCache
	rebuildGroup singleflight.Group
}

var _ domain.PostRepository = (*postRepository)(nil)

func NewPostRepository(db domain.PostDBRepository, cache domain.PostCache) *postRepository {
	return &postRepository{
		db:    db,
		cache: cache,
	}
}

// GetAuthorDisplayName serves from cache with a logical expiry. A stale hit
// is returned immediately and refreshed in the background; a miss loads
// from the database once per slug no matter how many callers are waiting.
func (r *postRepository) GetAuthorDisplayName(ctx context.Context, slug string) (string, error) {
	name, expired, err := r.cache.GetAuthorName(ctx, slug)
	if err == nil {
		if expired {
			go r.rebuildAuthorCache(context.Background(), slug)
		}
		return name, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("post author cache unavailable for %q: %v", slug, err)
	}

	// the load is shared by every waiter, so one caller going away must not
	// fail the others
	loadCtx := context.WithoutCancel(ctx)
	result, err, _ := r.rebuildGroup.Do("author:"+slug, func() (any, error) {
		post, err := r.db.GetBySlug(loadCtx, slug)
		if err != nil {
			return nil, err
		}
		go func(name string) {
			if err := r.cache.SetAuthorName(context.Background(), slug, name, AuthorCacheTTL); err != nil {
				logrus.Warnf("failed to cache post author for %q: %v", slug, err)
			}
		}(post.AuthorName)
		return post.AuthorName, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (r *postRepository) Exists(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetAuthorDisplayName(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *postRepository) FetchSlugs(ctx context.Context, cursor, limit int64) ([]string, int64, error) {
	return r.db.FetchSlugs(ctx, cursor, limit)
}

func (r *postRepository) rebuildAuthorCache(ctx context.Context, slug string) {
	_, err, _ := r.rebuildGroup.Do("rebuild:"+slug, func() (any, error) {
		post, err := r.db.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		return nil, r.cache.SetAuthorName(ctx, slug, post.AuthorName, AuthorCacheTTL)
	})
	if err != nil {
		logrus.Errorf("rebuildAuthorCache failed for %q: %v", slug, err)
	}
}
