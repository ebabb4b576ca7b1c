package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/sanitize"
)

const (
	defaultAdminReplyName   = "Post Author"
	defaultAdminCommentName = "Post Author (Admin)"
	adminNameSuffix         = " (Admin)"
)

// Config carries the settings the comment core needs from the outside.
type Config struct {
	// AdminEmail is written as author email on everything the admin creates.
	AdminEmail string
	// RequireExistingPost rejects comments on slugs the post store doesn't know.
	RequireExistingPost bool
}

type Service struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostRepository
	bloomRepo   domain.BloomRepository
	cfg         Config
	validate    *validator.Validate
	now         func() time.Time
}

var _ domain.CommentUsecase = (*Service)(nil)

// NewService will create a new comment service object
func NewService(cr domain.CommentRepository, pr domain.PostRepository, br domain.BloomRepository, cfg Config) *Service {
	cfg.AdminEmail = domain.NormalizeEmail(cfg.AdminEmail)
	return &Service{
		commentRepo: cr,
		postRepo:    pr,
		bloomRepo:   br,
		cfg:         cfg,
		validate:    validator.New(),
		now:         time.Now,
	}
}

// mustExist asks the post store whenever the bloom filter can't vouch for
// the slug. Posts created after the filter was warmed are reported absent by
// it, so a store hit on an "absent" answer is written back into the filter.
func (s *Service) mustExist(ctx context.Context, slug string) error {
	maybe, err := s.bloomRepo.Exists(ctx, slug)
	if err != nil {
		logrus.Warnf("bloom filter lookup for post %q failed: %v", slug, err)
	}

	exists, err := s.postRepo.Exists(ctx, slug)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	if !maybe {
		if err := s.bloomRepo.Add(ctx, slug); err != nil {
			logrus.Warnf("failed to add post %q to bloom filter: %v", slug, err)
		}
	}
	return nil
}

// cleanText validates the raw length, sanitizes, and makes sure something is
// left afterwards.
func (s *Service) cleanText(field, raw string, max int, clean func(string) string) (string, error) {
	if err := s.validate.Var(strings.TrimSpace(raw), fmt.Sprintf("min=1,max=%d", max)); err != nil {
		return "", toValidationError(field, max, err)
	}
	res := clean(raw)
	if res == "" {
		return "", domain.NewValidationError(field, "must contain text")
	}
	return res, nil
}

func toValidationError(field string, max int, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "max" {
		return domain.NewValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return domain.NewValidationError(field, "must not be empty")
}

func (s *Service) cleanContent(raw string, max int) (string, error) {
	return s.cleanText("content", raw, max, sanitize.Content)
}

func (s *Service) cleanName(raw string) (string, error) {
	return s.cleanText("name", raw, domain.AuthorNameMax, sanitize.Name)
}

// timePrecision is the coarsest resolution any comment store keeps (Mongo
// dates are milliseconds), so a returned timestamp survives the round trip.
const timePrecision = time.Millisecond

// tick returns the current time, strictly after prev.
func (s *Service) tick(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(timePrecision)
	prev = prev.Truncate(timePrecision)
	if !now.After(prev) {
		now = prev.Add(timePrecision)
	}
	return now
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > domain.AuthorNameMax {
		return strings.TrimSpace(string(r[:domain.AuthorNameMax]))
	}
	return name
}

// commentAuthor resolves who a new top-level comment is written as.
func (s *Service) commentAuthor(ctx context.Context, postSlug, displayName string, caller domain.Caller) (domain.Author, error) {
	name := strings.TrimSpace(displayName)
	if caller.IsAdmin() {
		if name == "" {
			name = defaultAdminCommentName
			postAuthor, err := s.postRepo.GetAuthorDisplayName(ctx, postSlug)
			if err != nil {
				logrus.Warnf("failed to get author of post %q: %v", postSlug, err)
			} else if postAuthor != "" {
				name = truncateName(postAuthor + adminNameSuffix)
			}
		}
		return s.author(s.cfg.AdminEmail, name)
	}
	if name == "" {
		name = truncateName(domain.LocalPart(caller.Email))
	}
	return s.author(caller.Email, name)
}

func (s *Service) author(email, name string) (domain.Author, error) {
	if email == "" {
		return domain.Author{}, domain.ErrAuthenticationRequired
	}
	clean, err := s.cleanName(name)
	if err != nil {
		return domain.Author{}, err
	}
	return domain.Author{Email: domain.NormalizeEmail(email), Name: clean}, nil
}

func (s *Service) ListByPost(ctx context.Context, postSlug string) ([]domain.Comment, domain.CommentStats, error) {
	comments, err := s.commentRepo.FetchByPost(ctx, postSlug)
	if err != nil {
		return nil, domain.CommentStats{}, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, statsOf(comments), nil
}

func (s *Service) Create(ctx context.Context, postSlug string, draft domain.CommentDraft, caller domain.Caller) (domain.Comment, error) {
	if err := Authorize(ActionCreate, nil, caller).Err(); err != nil {
		return domain.Comment{}, err
	}
	postSlug = strings.TrimSpace(postSlug)
	if postSlug == "" {
		return domain.Comment{}, domain.NewValidationError("post_slug", "must not be empty")
	}
	content, err := s.cleanContent(draft.Content, domain.CommentMaxLength)
	if err != nil {
		return domain.Comment{}, err
	}
	author, err := s.commentAuthor(ctx, postSlug, draft.DisplayName, caller)
	if err != nil {
		return domain.Comment{}, err
	}
	if s.cfg.RequireExistingPost {
		if err := s.mustExist(ctx, postSlug); err != nil {
			return domain.Comment{}, err
		}
	}

	now := s.tick(time.Time{})
	c := domain.Comment{
		ID:               uuid.NewString(),
		PostSlug:         postSlug,
		Content:          content,
		Author:           author,
		Replies:          []domain.Reply{},
		CreatedAt:        now,
		ContentUpdatedAt: now,
		UpdatedAt:        now,
	}
	if err := s.commentRepo.Store(ctx, &c); err != nil {
		return domain.Comment{}, err
	}
	logrus.WithFields(logrus.Fields{
		"comment_id": c.ID,
		"post_slug":  c.PostSlug,
		"caller":     caller.Kind.String(),
	}).Info("comment created")
	return c, nil
}

func (s *Service) UpdateContent(ctx context.Context, commentID, content string, caller domain.Caller) (domain.Comment, error) {
	if !caller.IsAuthenticated() {
		return domain.Comment{}, domain.ErrAuthenticationRequired
	}
	clean, err := s.cleanContent(content, domain.CommentMaxLength)
	if err != nil {
		return domain.Comment{}, err
	}
	return s.commentRepo.Mutate(ctx, commentID, func(c *domain.Comment) error {
		if err := Authorize(ActionEdit, &c.Author, caller).Err(); err != nil {
			return err
		}
		now := s.tick(c.ContentUpdatedAt)
		c.Content = clean
		c.ContentUpdatedAt = now
		c.UpdatedAt = now
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, commentID string, caller domain.Caller) error {
	if !caller.IsAuthenticated() {
		return domain.ErrAuthenticationRequired
	}
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := Authorize(ActionDelete, &c.Author, caller).Err(); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"comment_id": commentID,
		"replies":    len(c.Replies),
		"caller":     caller.Kind.String(),
	}).Info("comment deleted")
	return nil
}

func (s *Service) UpdateReply(ctx context.Context, commentID, replyID, content string, caller domain.Caller) (domain.Reply, error) {
	if !caller.IsAuthenticated() {
		return domain.Reply{}, domain.ErrAuthenticationRequired
	}
	clean, err := s.cleanContent(content, domain.ReplyMaxLength)
	if err != nil {
		return domain.Reply{}, err
	}
	var res domain.Reply
	_, err = s.commentRepo.Mutate(ctx, commentID, func(c *domain.Comment) error {
		i := c.FindReply(replyID)
		if i < 0 {
			return domain.ErrNotFound
		}
		r := &c.Replies[i]
		if err := Authorize(ActionEdit, &r.Author, caller).Err(); err != nil {
			return err
		}
		now := s.tick(r.ContentUpdatedAt)
		r.Content = clean
		r.ContentUpdatedAt = now
		c.UpdatedAt = s.tick(c.UpdatedAt)
		res = *r
		return nil
	})
	if err != nil {
		return domain.Reply{}, err
	}
	return res, nil
}

func (s *Service) DeleteReply(ctx context.Context, commentID, replyID string, caller domain.Caller) error {
	if !caller.IsAuthenticated() {
		return domain.ErrAuthenticationRequired
	}
	_, err := s.commentRepo.Mutate(ctx, commentID, func(c *domain.Comment) error {
		i := c.FindReply(replyID)
		if i < 0 {
			return domain.ErrNotFound
		}
		if err := Authorize(ActionDelete, &c.Replies[i].Author, caller).Err(); err != nil {
			return err
		}
		replies := make([]domain.Reply, 0, len(c.Replies)-1)
		replies = append(replies, c.Replies[:i]...)
		c.Replies = append(replies, c.Replies[i+1:]...)
		c.UpdatedAt = s.tick(c.UpdatedAt)
		return nil
	})
	return err
}
