package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func toDomainList(comments []model.Comment) []domain.Comment {
	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	err := c.DB.WithContext(ctx).Create(model.NewCommentFromDomain(comment)).Error
	return translateError(err)
}

func (c *commentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return domain.Comment{}, translateError(err)
	}
	return comment.ToDomain(), nil
}

func (c *commentRepository) FetchByPost(ctx context.Context, postSlug string) ([]domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("post_slug = ?", postSlug).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainList(comments), nil
}

func (c *commentRepository) FetchRecent(ctx context.Context, limit int64) ([]domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(int(limit)).
		Find(&comments).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainList(comments), nil
}

func (c *commentRepository) FetchAll(ctx context.Context) ([]domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainList(comments), nil
}

// errAborted marks errors returned by the caller's mutation, which must reach
// the caller untranslated.
type errAborted struct {
	err error
}

func (e errAborted) Error() string { return e.err.Error() }
func (e errAborted) Unwrap() error { return e.err }

// Mutate locks the row for the duration of the transaction, so concurrent
// reply additions to the same comment are applied one after the other.
func (c *commentRepository) Mutate(ctx context.Context, id string, fn func(*domain.Comment) error) (domain.Comment, error) {
	var res domain.Comment
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error
		if err != nil {
			return err
		}

		res = row.ToDomain()
		if err := fn(&res); err != nil {
			return errAborted{err}
		}

		upd := model.NewCommentFromDomain(&res)
		return tx.Model(&model.Comment{}).Where("id = ?", id).Updates(map[string]any{
			"content":            upd.Content,
			"author_email":       upd.AuthorEmail,
			"author_name":        upd.AuthorName,
			"replies":            upd.Replies,
			"content_updated_at": upd.ContentUpdatedAt,
			"updated_at":         upd.UpdatedAt,
		}).Error
	})
	if err != nil {
		var aborted errAborted
		if errors.As(err, &aborted) {
			return domain.Comment{}, aborted.err
		}
		return domain.Comment{}, translateError(err)
	}
	return res, nil
}

func (c *commentRepository) Delete(ctx context.Context, id string) error {
	result := c.DB.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
