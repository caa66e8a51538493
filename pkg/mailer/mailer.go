package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/shopworks/storefront-backend/config"
)

// Mailer sends outbound notification emails. Implementations must be safe
// for concurrent use by request handlers.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
}

// NewSMTPMailer builds a Mailer backed by a plain-auth SMTP relay.
func NewSMTPMailer(cfg *config.SMTPConfig) Mailer {
	return &smtpMailer{
		addr:     cfg.Addr(),
		host:     cfg.Host,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s",
		m.from, to, subject, body,
	)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
