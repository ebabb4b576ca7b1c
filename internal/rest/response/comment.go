package response

import (
	"time"

	"github.com/Guyuepp/layers-blog/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

// Reply never carries the author email; ownership is checked server side.
type Reply struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
	Edited     bool   `json:"edited"`
}

type Comment struct {
	ID         string  `json:"id"`
	PostSlug   string  `json:"post_slug"`
	Content    string  `json:"content"`
	AuthorName string  `json:"author_name"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	Edited     bool    `json:"edited"`
	Replies    []Reply `json:"replies"`
}

type CommentList struct {
	Comments []Comment           `json:"comments"`
	Stats    domain.CommentStats `json:"stats"`
}

func NewReplyFromDomain(r *domain.Reply) Reply {
	return Reply{
		ID:         r.ID,
		Content:    r.Content,
		AuthorName: r.Author.Name,
		CreatedAt:  formatTime(r.CreatedAt),
		Edited:     r.Edited(),
	}
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) Comment {
	replies := make([]Reply, len(c.Replies))
	for i := range c.Replies {
		replies[i] = NewReplyFromDomain(&c.Replies[i])
	}
	return Comment{
		ID:         c.ID,
		PostSlug:   c.PostSlug,
		Content:    c.Content,
		AuthorName: c.Author.Name,
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
		Edited:     c.Edited(),
		Replies:    replies,
	}
}

func NewCommentList(comments []domain.Comment, stats domain.CommentStats) CommentList {
	res := CommentList{Comments: make([]Comment, len(comments)), Stats: stats}
	for i := range comments {
		res.Comments[i] = NewCommentFromDomain(&comments[i])
	}
	return res
}
