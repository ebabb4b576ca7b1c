package comment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/layers-blog/domain"
)

// replyAuthor substitutes the admin sentinel address when the admin answers
// in character as the post author.
func (s *Service) replyAuthor(displayName string, caller domain.Caller) (domain.Author, error) {
	name := strings.TrimSpace(displayName)
	if caller.IsAdmin() {
		if name == "" {
			name = defaultAdminReplyName
		}
		return s.author(s.cfg.AdminEmail, name)
	}
	if name == "" {
		name = truncateName(domain.LocalPart(caller.Email))
	}
	return s.author(caller.Email, name)
}

// ComposeReply appends a reply to an existing comment.
func (s *Service) ComposeReply(ctx context.Context, commentID string, draft domain.CommentDraft, caller domain.Caller) (domain.Reply, error) {
	if err := Authorize(ActionCreate, nil, caller).Err(); err != nil {
		return domain.Reply{}, err
	}
	content, err := s.cleanContent(draft.Content, domain.ReplyMaxLength)
	if err != nil {
		return domain.Reply{}, err
	}
	author, err := s.replyAuthor(draft.DisplayName, caller)
	if err != nil {
		return domain.Reply{}, err
	}

	var reply domain.Reply
	_, err = s.commentRepo.Mutate(ctx, commentID, func(c *domain.Comment) error {
		now := s.tick(c.UpdatedAt)
		reply = domain.Reply{
			ID:               uuid.NewString(),
			Content:          content,
			Author:           author,
			CreatedAt:        now,
			ContentUpdatedAt: now,
		}
		c.Replies = append(c.Replies, reply)
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Reply{}, err
	}
	logrus.WithFields(logrus.Fields{
		"comment_id": commentID,
		"reply_id":   reply.ID,
		"caller":     caller.Kind.String(),
	}).Info("reply added")
	return reply, nil
}
