package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Guyuepp/layers-blog/domain"
)

// Reply is stored inside the replies json column of its comment row.
type Reply struct {
	ID               string    `json:"id"`
	Content          string    `json:"content"`
	AuthorEmail      string    `json:"author_email"`
	AuthorName       string    `json:"author_name"`
	CreatedAt        time.Time `json:"created_at"`
	ContentUpdatedAt time.Time `json:"content_updated_at"`
}

// Replies maps to a json column holding the ordered replies of one comment.
type Replies []Reply

func (r Replies) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Replies) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = Replies{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for replies", src)
	}
	if len(data) == 0 {
		*r = Replies{}
		return nil
	}
	return json.Unmarshal(data, r)
}

// Comment is one row per comment document; replies live in the same row so a
// delete of the row takes them along.
type Comment struct {
	ID               string    `gorm:"primaryKey;type:char(36)"`
	PostSlug         string    `gorm:"column:post_slug;type:varchar(191);not null;index:idx_comments_post_slug"`
	Content          string    `gorm:"type:text;not null"`
	AuthorEmail      string    `gorm:"column:author_email;type:varchar(191);not null;index:idx_comments_author_email"`
	AuthorName       string    `gorm:"column:author_name;type:varchar(64);not null"`
	Replies          Replies   `gorm:"type:json;not null"`
	CreatedAt        time.Time `gorm:"type:datetime(6);autoCreateTime:false"`
	ContentUpdatedAt time.Time `gorm:"column:content_updated_at;type:datetime(6)"`
	UpdatedAt        time.Time `gorm:"type:datetime(6);autoUpdateTime:false"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	replies := make(Replies, len(c.Replies))
	for i, r := range c.Replies {
		replies[i] = Reply{
			ID:               r.ID,
			Content:          r.Content,
			AuthorEmail:      r.Author.Email,
			AuthorName:       r.Author.Name,
			CreatedAt:        r.CreatedAt,
			ContentUpdatedAt: r.ContentUpdatedAt,
		}
	}
	return &Comment{
		ID:               c.ID,
		PostSlug:         c.PostSlug,
		Content:          c.Content,
		AuthorEmail:      c.Author.Email,
		AuthorName:       c.Author.Name,
		Replies:          replies,
		CreatedAt:        c.CreatedAt,
		ContentUpdatedAt: c.ContentUpdatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	replies := make([]domain.Reply, len(m.Replies))
	for i, r := range m.Replies {
		replies[i] = domain.Reply{
			ID:      r.ID,
			Content: r.Content,
			Author: domain.Author{
				Email: r.AuthorEmail,
				Name:  r.AuthorName,
			},
			CreatedAt:        r.CreatedAt,
			ContentUpdatedAt: r.ContentUpdatedAt,
		}
	}
	return domain.Comment{
		ID:       m.ID,
		PostSlug: m.PostSlug,
		Content:  m.Content,
		Author: domain.Author{
			Email: m.AuthorEmail,
			Name:  m.AuthorName,
		},
		Replies:          replies,
		CreatedAt:        m.CreatedAt,
		ContentUpdatedAt: m.ContentUpdatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
