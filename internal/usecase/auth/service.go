package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/identity"
)

const verifyPath = "/auth/verify"

type Config struct {
	SiteURL           string
	MagicLinkTTL      time.Duration
	SessionTTL        time.Duration
	AdminPasswordHash []byte
}

type Service struct {
	sessions domain.SessionRepository
	mailer   domain.Mailer
	cookie   *identity.AdminCookie
	cfg      Config
	validate *validator.Validate
	now      func() time.Time
	newToken func() string
}

var _ domain.AuthUsecase = (*Service)(nil)

func NewService(sessions domain.SessionRepository, mailer domain.Mailer, cookie *identity.AdminCookie, cfg Config) *Service {
	return &Service{
		sessions: sessions,
		mailer:   mailer,
		cookie:   cookie,
		cfg:      cfg,
		validate: validator.New(),
		now:      time.Now,
		newToken: randomToken,
	}
}

// randomToken joins two v4 uuids, 244 random bits in total.
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (s *Service) RequestMagicLink(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email,max=254"); err != nil {
		return domain.NewValidationError("email", "must be a valid email address")
	}

	token := s.newToken()
	if err := s.sessions.SaveMagicToken(ctx, token, email, s.cfg.MagicLinkTTL); err != nil {
		return fmt.Errorf("save magic token: %w", err)
	}

	mail := domain.MagicLinkMail{
		Email:     email,
		Link:      strings.TrimRight(s.cfg.SiteURL, "/") + verifyPath + "?token=" + url.QueryEscape(token),
		ExpiresAt: s.now().Add(s.cfg.MagicLinkTTL),
	}
	if err := s.mailer.SendMagicLink(ctx, mail); err != nil {
		logrus.WithField("email", email).Errorf("failed to hand off magic link: %v", err)
		return fmt.Errorf("%w: magic link delivery failed", domain.ErrInternalServerError)
	}
	logrus.WithField("email", email).Info("magic link requested")
	return nil
}

func (s *Service) VerifyMagicLink(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrAuthenticationRequired
	}
	email, err := s.sessions.ConsumeMagicToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, domain.ErrAuthenticationRequired
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("consume magic token: %w", err)
	}

	session := domain.Session{
		Token:     s.newToken(),
		Email:     email,
		ExpiresAt: s.now().Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.SaveSession(ctx, session, s.cfg.SessionTTL); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *Service) SignOut(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, sessionToken)
}

// AdminLogin checks the password against the configured bcrypt hash. With
// no hash configured admin sign-in is disabled.
func (s *Service) AdminLogin(_ context.Context, password string) (string, error) {
	if len(s.cfg.AdminPasswordHash) == 0 {
		logrus.Warn("admin login attempted but no password hash is configured")
		return "", domain.ErrAuthenticationRequired
	}
	if err := bcrypt.CompareHashAndPassword(s.cfg.AdminPasswordHash, []byte(password)); err != nil {
		logrus.Warn("admin login failed")
		return "", domain.ErrAuthenticationRequired
	}
	value, err := s.cookie.Issue(s.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInternalServerError, err)
	}
	return value, nil
}
