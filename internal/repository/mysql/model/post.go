package model

import (
	"time"

	"github.com/Guyuepp/layers-blog/domain"
)

type Post struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Slug       string    `gorm:"type:varchar(191);not null;uniqueIndex"`
	Title      string    `gorm:"type:varchar(255);not null"`
	Layer      string    `gorm:"type:varchar(32);not null"`
	AuthorName string    `gorm:"column:author_name;type:varchar(64);not null"`
	CreatedAt  time.Time `gorm:"type:datetime"`
	UpdatedAt  time.Time `gorm:"type:datetime"`
}

func (Post) TableName() string {
	return "posts"
}

func (m *Post) ToDomain() domain.Post {
	return domain.Post{
		ID:         m.ID,
		Slug:       m.Slug,
		Title:      m.Title,
		Layer:      domain.Layer(m.Layer),
		AuthorName: m.AuthorName,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
