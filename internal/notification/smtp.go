package notification

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/pkg/utils"

	"go.uber.org/zap"
)

type smtpNotifier struct {
	cfg  utils.EmailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	log  *zap.Logger
}

func NewSMTPNotifier(cfg utils.EmailConfig, log *zap.Logger) Notifier {
	return &smtpNotifier{
		cfg:  cfg,
		send: smtp.SendMail,
		log:  log.With(zap.String("notifier", "smtp")),
	}
}

func (n *smtpNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrDelivery, err)
	}
	if msg.To == "" {
		return fmt.Errorf("%w: empty recipient", apperror.ErrDelivery)
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	if err := n.send(addr, auth, n.cfg.From, []string{msg.To}, buildMessage(n.cfg.From, msg)); err != nil {
		n.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return fmt.Errorf("%w: send mail to %s: %w", apperror.ErrDelivery, msg.To, err)
	}

	n.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
