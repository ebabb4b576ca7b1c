package domain

import (
	"context"
	"time"
)

const (
	CommentMaxLength = 2000
	ReplyMaxLength   = 1000
	AuthorNameMax    = 50

	// EditedThreshold is how far contentUpdatedAt must trail createdAt before
	// a comment or reply is shown as edited.
	EditedThreshold = time.Second
)

// Author identifies who wrote a comment or reply. Email is the ownership key,
// Name is display only.
type Author struct {
	Email string `json:"email" bson:"email"`
	Name  string `json:"name" bson:"name"`
}

// Reply is embedded in exactly one Comment and has no life of its own.
type Reply struct {
	ID               string    `json:"id" bson:"id"`
	Content          string    `json:"content" bson:"content"`
	Author           Author    `json:"author" bson:"author"`
	CreatedAt        time.Time `json:"created_at" bson:"createdAt"`
	ContentUpdatedAt time.Time `json:"content_updated_at" bson:"contentUpdatedAt"`
}

// Edited reports whether the reply content was changed after creation.
func (r *Reply) Edited() bool {
	return r.ContentUpdatedAt.Sub(r.CreatedAt) > EditedThreshold
}

// Comment is the aggregate root: one document per top-level comment, owning
// its replies in insertion order.
type Comment struct {
	ID               string    `json:"id" bson:"_id"`
	PostSlug         string    `json:"post_slug" bson:"postSlug"`
	Content          string    `json:"content" bson:"content"`
	Author           Author    `json:"author" bson:"author"`
	Replies          []Reply   `json:"replies" bson:"replies"`
	CreatedAt        time.Time `json:"created_at" bson:"createdAt"`
	ContentUpdatedAt time.Time `json:"content_updated_at" bson:"contentUpdatedAt"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updatedAt"`
}

// Edited reports whether the comment content was changed after creation.
func (c *Comment) Edited() bool {
	return c.ContentUpdatedAt.Sub(c.CreatedAt) > EditedThreshold
}

// FindReply returns the index of the reply with the given id, or -1.
func (c *Comment) FindReply(replyID string) int {
	for i := range c.Replies {
		if c.Replies[i].ID == replyID {
			return i
		}
	}
	return -1
}

// CommentStats is the comment volume of one post or of the whole site.
type CommentStats struct {
	TotalComments     int64 `json:"total_comments"`
	TotalReplies      int64 `json:"total_replies"`
	TotalInteractions int64 `json:"total_interactions"`
}

// PostCommentVolume is one row of the "most discussed posts" view.
type PostCommentVolume struct {
	PostSlug     string `json:"post_slug"`
	CommentCount int64  `json:"comment_count"`
	ReplyCount   int64  `json:"reply_count"`
}

// CommentSummary is one row of the recent activity view.
type CommentSummary struct {
	ID        string    `json:"id"`
	PostSlug  string    `json:"post_slug"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminOverview is what the moderation dashboard shows.
type AdminOverview struct {
	Stats          CommentStats        `json:"stats"`
	CommentsByPost []PostCommentVolume `json:"comments_by_post"`
	RecentComments []CommentSummary    `json:"recent_comments"`
}

// CommentDraft carries what the caller submitted for a new comment or reply.
// DisplayName is optional; ActingAsAdmin asks to post as the post author.
type CommentDraft struct {
	Content       string
	DisplayName   string
	ActingAsAdmin bool
}

// CommentRepository stores Comment documents. Every method works on a single
// document; there are no cross-document transactions.
type CommentRepository interface {
	// Store inserts a new comment document.
	Store(ctx context.Context, c *Comment) error

	// GetByID returns ErrNotFound if the comment doesn't exist.
	GetByID(ctx context.Context, id string) (Comment, error)

	// FetchByPost returns the comments of a post, newest first.
	FetchByPost(ctx context.Context, postSlug string) ([]Comment, error)

	// FetchRecent returns at most limit comments across all posts, newest first.
	FetchRecent(ctx context.Context, limit int64) ([]Comment, error)

	// FetchAll returns every comment document.
	FetchAll(ctx context.Context) ([]Comment, error)

	// Mutate loads the comment, applies fn and writes the result back as one
	// unit. If fn returns an error nothing is written and that error is returned.
	Mutate(ctx context.Context, id string, fn func(*Comment) error) (Comment, error)

	// Delete removes the comment together with its replies.
	// Returns ErrNotFound if the comment doesn't exist.
	Delete(ctx context.Context, id string) error
}

// CommentUsecase is the comment core exposed to transports.
type CommentUsecase interface {
	ListByPost(ctx context.Context, postSlug string) ([]Comment, CommentStats, error)
	Create(ctx context.Context, postSlug string, draft CommentDraft, caller Caller) (Comment, error)
	UpdateContent(ctx context.Context, commentID, content string, caller Caller) (Comment, error)
	Delete(ctx context.Context, commentID string, caller Caller) error
	ComposeReply(ctx context.Context, commentID string, draft CommentDraft, caller Caller) (Reply, error)
	UpdateReply(ctx context.Context, commentID, replyID, content string, caller Caller) (Reply, error)
	DeleteReply(ctx context.Context, commentID, replyID string, caller Caller) error

	StatsForPost(ctx context.Context, postSlug string) (CommentStats, error)
	GlobalStats(ctx context.Context) (CommentStats, error)
	TopPostsByCommentVolume(ctx context.Context, limit int64) ([]PostCommentVolume, error)
	RecentComments(ctx context.Context, limit int64) ([]CommentSummary, error)
	AdminOverview(ctx context.Context, postSlug string, limit int64, caller Caller) (AdminOverview, error)
}
