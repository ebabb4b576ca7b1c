package response

import "github.com/Guyuepp/layers-blog/domain"

// CommentSummary is shown to the admin only, so it keeps the author email.
type CommentSummary struct {
	ID          string `json:"id"`
	PostSlug    string `json:"post_slug"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at"`
}

type AdminOverview struct {
	Stats          domain.CommentStats        `json:"stats"`
	CommentsByPost []domain.PostCommentVolume `json:"comments_by_post"`
	RecentComments []CommentSummary           `json:"recent_comments"`
}

func NewAdminOverview(o *domain.AdminOverview) AdminOverview {
	res := AdminOverview{
		Stats:          o.Stats,
		CommentsByPost: o.CommentsByPost,
		RecentComments: make([]CommentSummary, len(o.RecentComments)),
	}
	if res.CommentsByPost == nil {
		res.CommentsByPost = []domain.PostCommentVolume{}
	}
	for i, s := range o.RecentComments {
		res.RecentComments[i] = CommentSummary{
			ID:          s.ID,
			PostSlug:    s.PostSlug,
			AuthorName:  s.Author.Name,
			AuthorEmail: s.Author.Email,
			Content:     s.Content,
			CreatedAt:   formatTime(s.CreatedAt),
		}
	}
	return res
}
