// Package notify hands magic-link mails to whatever delivers them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/layers-blog/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaMailer publishes mail jobs for an external mail sender. Messages are
// keyed by recipient so one reader's links stay ordered.
type KafkaMailer struct {
	w messageWriter
}

var _ domain.Mailer = (*KafkaMailer)(nil)

func NewKafkaMailer(brokers []string, topic string) *KafkaMailer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaMailer{w: w}
}

func (m *KafkaMailer) SendMagicLink(ctx context.Context, mail domain.MagicLinkMail) error {
	value, err := json.Marshal(mail)
	if err != nil {
		return err
	}
	err = m.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(mail.Email),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (m *KafkaMailer) Close() error { return m.w.Close() }

// LogMailer writes the link to the log. Used when no broker is configured.
type LogMailer struct{}

var _ domain.Mailer = LogMailer{}

func (LogMailer) SendMagicLink(_ context.Context, mail domain.MagicLinkMail) error {
	logrus.WithFields(logrus.Fields{
		"email":      mail.Email,
		"expires_at": mail.ExpiresAt,
	}).Infof("magic link: %s", mail.Link)
	return nil
}
