// Package mail provides the out-of-band delivery channel for one-time
// secrets. Delivery is fire-and-forget: the credential flow never rolls
// back a stored secret because a mail bounced.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// Config captures the settings for the SMTP relay.
type Config struct {
	Host string
	Port int
	From string
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
	}
}

func (m *SMTPMailer) Send(_ context.Context, mail ports.Mail) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, mail.To, mail.Subject, mail.Body)

	if err := smtp.SendMail(m.addr, nil, m.from, []string{mail.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer writes outbound mail to the log instead of delivering it.
// Intended for development environments without an SMTP relay.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, mail ports.Mail) error {
	m.logger.Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Str("body", mail.Body).
		Msg("mail (log delivery)")
	return nil
}
