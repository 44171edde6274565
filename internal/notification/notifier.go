// Package notification delivers booking and account notices by email.
package notification

import (
	"context"

	"auditorium-booking/internal/lifecycle"
	"auditorium-booking/pkg/utils"

	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

func FromLifecycle(n lifecycle.Notification) Message {
	return Message{To: n.Recipient, Subject: n.Subject, Body: n.Body}
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP notifier, or a log-only one when SMTP is disabled.
func New(cfg utils.EmailConfig, log *zap.Logger) Notifier {
	if !cfg.Enabled || cfg.Host == "" {
		log.Warn("SMTP disabled, notifications will only be logged")
		return NewLogNotifier(log)
	}
	return NewSMTPNotifier(cfg, log)
}

type logNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *logNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		n.log.Debug("notification skipped (context cancelled)", zap.String("to", msg.To))
		return nil
	}
	n.log.Info("notification",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
