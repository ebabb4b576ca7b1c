package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/layers-blog/domain"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaMailer(t *testing.T) {
	w := &recordingWriter{}
	m := &KafkaMailer{w: w}
	mail := domain.MagicLinkMail{
		Email:     "reader@example.com",
		Link:      "https://layers.blog/auth/verify?token=abc",
		ExpiresAt: time.Date(2026, 5, 1, 9, 15, 0, 0, time.UTC),
	}

	require.NoError(t, m.SendMagicLink(context.Background(), mail))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "reader@example.com", string(w.msgs[0].Key))

	var got domain.MagicLinkMail
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, mail.Link, got.Link)
	assert.True(t, mail.ExpiresAt.Equal(got.ExpiresAt))

	w.err = errors.New("leader not available")
	assert.Error(t, m.SendMagicLink(context.Background(), mail))
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, LogMailer{}.SendMagicLink(context.Background(), domain.MagicLinkMail{Email: "a@b.c"}))
}
