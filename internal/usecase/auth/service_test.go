package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/identity"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) SaveMagicToken(ctx context.Context, token, email string, ttl time.Duration) error {
	return m.Called(ctx, token, email, ttl).Error(0)
}

func (m *mockSessions) ConsumeMagicToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *mockSessions) SaveSession(ctx context.Context, s domain.Session, ttl time.Duration) error {
	return m.Called(ctx, s, ttl).Error(0)
}

func (m *mockSessions) GetSessionEmail(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *mockSessions) DeleteSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendMagicLink(ctx context.Context, mail domain.MagicLinkMail) error {
	return m.Called(ctx, mail).Error(0)
}

var fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, sessions *mockSessions, mailer *mockMailer, hash []byte) *Service {
	t.Helper()
	cookie := identity.NewAdminCookie([]byte("secret"), "logged-in", time.Hour)
	s := NewService(sessions, mailer, cookie, Config{
		SiteURL:           "https://layers.blog/",
		MagicLinkTTL:      15 * time.Minute,
		SessionTTL:        720 * time.Hour,
		AdminPasswordHash: hash,
	})
	s.now = func() time.Time { return fixedNow }
	tokens := []string{"tok-1", "tok-2"}
	s.newToken = func() string {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok
	}
	return s
}

func TestRequestMagicLink(t *testing.T) {
	ctx := context.Background()

	t.Run("stores token and mails link", func(t *testing.T) {
		sessions, mailer := new(mockSessions), new(mockMailer)
		s := newTestService(t, sessions, mailer, nil)

		sessions.On("SaveMagicToken", ctx, "tok-1", "reader@example.com", 15*time.Minute).Return(nil)
		mailer.On("SendMagicLink", ctx, domain.MagicLinkMail{
			Email:     "reader@example.com",
			Link:      "https://layers.blog/auth/verify?token=tok-1",
			ExpiresAt: fixedNow.Add(15 * time.Minute),
		}).Return(nil)

		require.NoError(t, s.RequestMagicLink(ctx, "  Reader@Example.com "))
		sessions.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		sessions, mailer := new(mockSessions), new(mockMailer)
		s := newTestService(t, sessions, mailer, nil)

		err := s.RequestMagicLink(ctx, "not-an-email")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Field)
		sessions.AssertNotCalled(t, "SaveMagicToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mailer failure", func(t *testing.T) {
		sessions, mailer := new(mockSessions), new(mockMailer)
		s := newTestService(t, sessions, mailer, nil)
		email := faker.Email()

		sessions.On("SaveMagicToken", ctx, "tok-1", domain.NormalizeEmail(email), 15*time.Minute).Return(nil)
		mailer.On("SendMagicLink", ctx, mock.Anything).Return(errors.New("broker down"))

		assert.ErrorIs(t, s.RequestMagicLink(ctx, email), domain.ErrInternalServerError)
	})
}

func TestVerifyMagicLink(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges token for session", func(t *testing.T) {
		sessions, mailer := new(mockSessions), new(mockMailer)
		s := newTestService(t, sessions, mailer, nil)

		want := domain.Session{Token: "tok-1", Email: "reader@example.com", ExpiresAt: fixedNow.Add(720 * time.Hour)}
		sessions.On("ConsumeMagicToken", ctx, "magic").Return("reader@example.com", nil)
		sessions.On("SaveSession", ctx, want, 720*time.Hour).Return(nil)

		got, err := s.VerifyMagicLink(ctx, "magic")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		sessions.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		sessions, mailer := new(mockSessions), new(mockMailer)
		s := newTestService(t, sessions, mailer, nil)
		sessions.On("ConsumeMagicToken", ctx, "used").Return("", domain.ErrNotFound)

		_, err := s.VerifyMagicLink(ctx, "used")
		assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
	})

	t.Run("empty token", func(t *testing.T) {
		s := newTestService(t, new(mockSessions), new(mockMailer), nil)
		_, err := s.VerifyMagicLink(ctx, "")
		assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
	})
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	sessions := new(mockSessions)
	s := newTestService(t, sessions, new(mockMailer), nil)

	sessions.On("DeleteSession", ctx, "s1").Return(nil)
	require.NoError(t, s.SignOut(ctx, "s1"))
	require.NoError(t, s.SignOut(ctx, ""))
	sessions.AssertNumberOfCalls(t, "DeleteSession", 1)
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	s := newTestService(t, new(mockSessions), new(mockMailer), hash)
	s.now = time.Now
	cookie := identity.NewAdminCookie([]byte("secret"), "logged-in", time.Hour)

	value, err := s.AdminLogin(ctx, "hunter2")
	require.NoError(t, err)
	assert.True(t, cookie.Valid(value))

	_, err = s.AdminLogin(ctx, "wrong")
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)

	disabled := newTestService(t, new(mockSessions), new(mockMailer), nil)
	_, err = disabled.AdminLogin(ctx, "hunter2")
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
}
