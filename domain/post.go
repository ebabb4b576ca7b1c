package domain

import (
	"context"
	"time"
)

// Layer is the topical category of a post.
type Layer string

const (
	LayerFrontend     Layer = "frontend"
	LayerBackend      Layer = "backend"
	LayerDevops       Layer = "devops"
	LayerArchitecture Layer = "architecture"
	LayerPeopleware   Layer = "peopleware"
)

// Post is the article comments hang off. Only what the comment core needs is
// modelled here.
type Post struct {
	ID         int64     // Unique identifier
	Slug       string    // URL key, unique
	Title      string    // Post title
	Layer      Layer     // Topical category
	AuthorName string    // Display name of the post author
	CreatedAt  time.Time // Creation timestamp
	UpdatedAt  time.Time // Last update timestamp
}

// PostDBRepository is the persistence side of the post store.
type PostDBRepository interface {
	// GetBySlug returns ErrNotFound if the post doesn't exist.
	GetBySlug(ctx context.Context, slug string) (Post, error)

	// FetchSlugs pages through slugs ordered by id, starting after cursor.
	FetchSlugs(ctx context.Context, cursor int64, limit int64) (slugs []string, next int64, err error)
}

// PostCache caches post author names by slug with a logical expiry.
type PostCache interface {
	// GetAuthorName returns ErrCacheMiss when nothing is cached. An expired
	// entry is still returned, with expired set.
	GetAuthorName(ctx context.Context, slug string) (name string, expired bool, err error)
	SetAuthorName(ctx context.Context, slug, name string, ttl time.Duration) error
}

// PostRepository is what the comment core consumes from the post store.
type PostRepository interface {
	// GetAuthorDisplayName returns ErrNotFound if the post doesn't exist.
	GetAuthorDisplayName(ctx context.Context, slug string) (string, error)

	// Exists reports whether a post with the slug exists.
	Exists(ctx context.Context, slug string) (bool, error)

	FetchSlugs(ctx context.Context, cursor int64, limit int64) ([]string, int64, error)
}
