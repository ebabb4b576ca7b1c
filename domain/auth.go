package domain

import (
	"context"
	"time"
)

// Session is a signed-in reader.
type Session struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// SessionRepository keeps magic-link tokens and reader sessions.
type SessionRepository interface {
	// SaveMagicToken stores a one-time sign-in token for the email.
	SaveMagicToken(ctx context.Context, token, email string, ttl time.Duration) error

	// ConsumeMagicToken returns the email for the token and deletes it.
	// Returns ErrNotFound if the token is unknown or expired.
	ConsumeMagicToken(ctx context.Context, token string) (string, error)

	SaveSession(ctx context.Context, s Session, ttl time.Duration) error

	// GetSessionEmail returns ErrNotFound if the session is unknown or expired.
	GetSessionEmail(ctx context.Context, token string) (string, error)

	DeleteSession(ctx context.Context, token string) error
}

// MagicLinkMail is handed to the mail delivery mechanism.
type MagicLinkMail struct {
	Email     string    `json:"email"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Mailer delivers magic-link mails.
type Mailer interface {
	SendMagicLink(ctx context.Context, mail MagicLinkMail) error
}

// AuthUsecase covers reader magic-link sign-in and admin sign-in.
type AuthUsecase interface {
	RequestMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, token string) (Session, error)
	SignOut(ctx context.Context, sessionToken string) error

	// AdminLogin returns a signed admin cookie value.
	AdminLogin(ctx context.Context, password string) (string, error)
}
