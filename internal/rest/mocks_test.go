package rest_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/layers-blog/domain"
)

type mockCommentUsecase struct {
	mock.Mock
}

func (m *mockCommentUsecase) ListByPost(ctx context.Context, postSlug string) ([]domain.Comment, domain.CommentStats, error) {
	args := m.Called(ctx, postSlug)
	return args.Get(0).([]domain.Comment), args.Get(1).(domain.CommentStats), args.Error(2)
}

func (m *mockCommentUsecase) Create(ctx context.Context, postSlug string, draft domain.CommentDraft, caller domain.Caller) (domain.Comment, error) {
	args := m.Called(ctx, postSlug, draft, caller)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentUsecase) UpdateContent(ctx context.Context, commentID, content string, caller domain.Caller) (domain.Comment, error) {
	args := m.Called(ctx, commentID, content, caller)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentUsecase) Delete(ctx context.Context, commentID string, caller domain.Caller) error {
	return m.Called(ctx, commentID, caller).Error(0)
}

func (m *mockCommentUsecase) ComposeReply(ctx context.Context, commentID string, draft domain.CommentDraft, caller domain.Caller) (domain.Reply, error) {
	args := m.Called(ctx, commentID, draft, caller)
	return args.Get(0).(domain.Reply), args.Error(1)
}

func (m *mockCommentUsecase) UpdateReply(ctx context.Context, commentID, replyID, content string, caller domain.Caller) (domain.Reply, error) {
	args := m.Called(ctx, commentID, replyID, content, caller)
	return args.Get(0).(domain.Reply), args.Error(1)
}

func (m *mockCommentUsecase) DeleteReply(ctx context.Context, commentID, replyID string, caller domain.Caller) error {
	return m.Called(ctx, commentID, replyID, caller).Error(0)
}

func (m *mockCommentUsecase) StatsForPost(ctx context.Context, postSlug string) (domain.CommentStats, error) {
	args := m.Called(ctx, postSlug)
	return args.Get(0).(domain.CommentStats), args.Error(1)
}

func (m *mockCommentUsecase) GlobalStats(ctx context.Context) (domain.CommentStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CommentStats), args.Error(1)
}

func (m *mockCommentUsecase) TopPostsByCommentVolume(ctx context.Context, limit int64) ([]domain.PostCommentVolume, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.PostCommentVolume), args.Error(1)
}

func (m *mockCommentUsecase) RecentComments(ctx context.Context, limit int64) ([]domain.CommentSummary, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.CommentSummary), args.Error(1)
}

func (m *mockCommentUsecase) AdminOverview(ctx context.Context, postSlug string, limit int64, caller domain.Caller) (domain.AdminOverview, error) {
	args := m.Called(ctx, postSlug, limit, caller)
	return args.Get(0).(domain.AdminOverview), args.Error(1)
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) RequestMagicLink(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthUsecase) VerifyMagicLink(ctx context.Context, token string) (domain.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *mockAuthUsecase) SignOut(ctx context.Context, sessionToken string) error {
	return m.Called(ctx, sessionToken).Error(0)
}

func (m *mockAuthUsecase) AdminLogin(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}
