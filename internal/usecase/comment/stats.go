package comment

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/layers-blog/domain"
)

const (
	DefaultStatsLimit = 10
	MaxStatsLimit     = 100
)

func clampLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultStatsLimit
	}
	if limit > MaxStatsLimit {
		return MaxStatsLimit
	}
	return limit
}

func statsOf(comments []domain.Comment) domain.CommentStats {
	var st domain.CommentStats
	st.TotalComments = int64(len(comments))
	for i := range comments {
		st.TotalReplies += int64(len(comments[i].Replies))
	}
	st.TotalInteractions = st.TotalComments + st.TotalReplies
	return st
}

// volumeOf groups comments by post in the order posts are first seen and
// sorts by comment count, keeping that order for ties.
func volumeOf(comments []domain.Comment, limit int64) []domain.PostCommentVolume {
	index := make(map[string]int)
	res := make([]domain.PostCommentVolume, 0)
	for i := range comments {
		c := &comments[i]
		j, ok := index[c.PostSlug]
		if !ok {
			j = len(res)
			index[c.PostSlug] = j
			res = append(res, domain.PostCommentVolume{PostSlug: c.PostSlug})
		}
		res[j].CommentCount++
		res[j].ReplyCount += int64(len(c.Replies))
	}
	sort.SliceStable(res, func(a, b int) bool {
		return res[a].CommentCount > res[b].CommentCount
	})
	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res
}

func summariesOf(comments []domain.Comment, limit int64) []domain.CommentSummary {
	if int64(len(comments)) > limit {
		comments = comments[:limit]
	}
	res := make([]domain.CommentSummary, len(comments))
	for i := range comments {
		res[i] = domain.CommentSummary{
			ID:        comments[i].ID,
			PostSlug:  comments[i].PostSlug,
			Author:    comments[i].Author,
			Content:   comments[i].Content,
			CreatedAt: comments[i].CreatedAt,
		}
	}
	return res
}

func (s *Service) StatsForPost(ctx context.Context, postSlug string) (domain.CommentStats, error) {
	comments, err := s.commentRepo.FetchByPost(ctx, postSlug)
	if err != nil {
		return domain.CommentStats{}, err
	}
	return statsOf(comments), nil
}

func (s *Service) GlobalStats(ctx context.Context) (domain.CommentStats, error) {
	comments, err := s.commentRepo.FetchAll(ctx)
	if err != nil {
		return domain.CommentStats{}, err
	}
	return statsOf(comments), nil
}

func (s *Service) TopPostsByCommentVolume(ctx context.Context, limit int64) ([]domain.PostCommentVolume, error) {
	comments, err := s.commentRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return volumeOf(comments, clampLimit(limit)), nil
}

func (s *Service) RecentComments(ctx context.Context, limit int64) ([]domain.CommentSummary, error) {
	limit = clampLimit(limit)
	comments, err := s.commentRepo.FetchRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return summariesOf(comments, limit), nil
}

// AdminOverview builds the moderation dashboard. With a post slug everything
// is scoped to that post, otherwise the three views are computed side by side.
func (s *Service) AdminOverview(ctx context.Context, postSlug string, limit int64, caller domain.Caller) (domain.AdminOverview, error) {
	if !caller.IsAuthenticated() {
		return domain.AdminOverview{}, domain.ErrAuthenticationRequired
	}
	if !caller.IsAdmin() {
		return domain.AdminOverview{}, domain.ErrNotOwner
	}
	limit = clampLimit(limit)

	if postSlug != "" {
		comments, err := s.commentRepo.FetchByPost(ctx, postSlug)
		if err != nil {
			return domain.AdminOverview{}, err
		}
		return domain.AdminOverview{
			Stats:          statsOf(comments),
			CommentsByPost: volumeOf(comments, limit),
			RecentComments: summariesOf(comments, limit),
		}, nil
	}

	var res domain.AdminOverview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Stats, err = s.GlobalStats(ctx)
		return
	})
	g.Go(func() (err error) {
		res.CommentsByPost, err = s.TopPostsByCommentVolume(ctx, limit)
		return
	})
	g.Go(func() (err error) {
		res.RecentComments, err = s.RecentComments(ctx, limit)
		return
	})
	if err := g.Wait(); err != nil {
		return domain.AdminOverview{}, err
	}
	return res, nil
}
