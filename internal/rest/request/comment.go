package request

import "github.com/Guyuepp/layers-blog/domain"

// Comment is the body of a new comment or reply. Lengths are checked by the
// comment service so the client gets field-level errors.
type Comment struct {
	Content string `json:"content"`
	Name    string `json:"name"`     // optional display name
	AsAdmin bool   `json:"as_admin"` // post as the post author when holding the admin cookie
}

// ToDraft: Request -> Domain
func (r *Comment) ToDraft() domain.CommentDraft {
	return domain.CommentDraft{
		Content:       r.Content,
		DisplayName:   r.Name,
		ActingAsAdmin: r.AsAdmin,
	}
}

// Content is the body of an edit.
type Content struct {
	Content string `json:"content"`
}
