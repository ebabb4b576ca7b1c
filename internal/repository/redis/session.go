package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/layers-blog/domain"
)

const (
	KeyMagicToken = "auth:magic:%s"
	KeySession    = "auth:session:%s"
)

type sessionRepository struct {
	client *redis.Client
}

var _ domain.SessionRepository = (*sessionRepository)(nil)

func NewSessionRepository(client *redis.Client) *sessionRepository {
	return &sessionRepository{client}
}

func (r *sessionRepository) SaveMagicToken(ctx context.Context, token, email string, ttl time.Duration) error {
	return r.client.Set(ctx, fmt.Sprintf(KeyMagicToken, token), email, ttl).Err()
}

// ConsumeMagicToken uses GETDEL so a link can only be redeemed once even
// when two requests race.
func (r *sessionRepository) ConsumeMagicToken(ctx context.Context, token string) (string, error) {
	email, err := r.client.GetDel(ctx, fmt.Sprintf(KeyMagicToken, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	return email, err
}

func (r *sessionRepository) SaveSession(ctx context.Context, s domain.Session, ttl time.Duration) error {
	return r.client.Set(ctx, fmt.Sprintf(KeySession, s.Token), s.Email, ttl).Err()
}

func (r *sessionRepository) GetSessionEmail(ctx context.Context, token string) (string, error) {
	email, err := r.client.Get(ctx, fmt.Sprintf(KeySession, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	return email, err
}

func (r *sessionRepository) DeleteSession(ctx context.Context, token string) error {
	return r.client.Del(ctx, fmt.Sprintf(KeySession, token)).Err()
}
