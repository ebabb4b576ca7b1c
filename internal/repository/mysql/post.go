package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/repository/mysql/model"
)

type postRepository struct {
	DB *gorm.DB
}

// mysql层只负责数据库操作
var _ domain.PostDBRepository = (*postRepository)(nil)

func NewPostDBRepository(db *gorm.DB) *postRepository {
	return &postRepository{db}
}

func (m *postRepository) GetBySlug(ctx context.Context, slug string) (domain.Post, error) {
	var post model.Post
	err := m.DB.WithContext(ctx).First(&post, "slug = ?", slug).Error
	if err != nil {
		return domain.Post{}, translateError(err)
	}
	return post.ToDomain(), nil
}

func (m *postRepository) FetchSlugs(ctx context.Context, cursor int64, limit int64) ([]string, int64, error) {
	var posts []model.Post
	err := m.DB.WithContext(ctx).
		Select("id, slug").
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Find(&posts).Error
	if err != nil {
		return nil, cursor, translateError(err)
	}
	if len(posts) == 0 {
		return []string{}, cursor, nil
	}
	slugs := make([]string, len(posts))
	for i := range posts {
		slugs[i] = posts[i].Slug
	}
	return slugs, posts[len(posts)-1].ID, nil
}
