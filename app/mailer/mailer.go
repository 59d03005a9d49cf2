package mailer

import (
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/anseninnov/conference-registration/config"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// Mailer delivers invoice emails through the configured SMTP relay.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendHTML sends a single HTML email with a plain-text alternative
// header set. Delivery is synchronous; the caller decides whether a
// failure matters.
func (m *Mailer) SendHTML(recipient, subject, htmlBody string) error {
	if strings.TrimSpace(m.cfg.Host) == "" || strings.TrimSpace(m.cfg.Username) == "" {
		return ErrNotConfigured
	}

	from := m.cfg.FromEmail
	if from == "" {
		from = m.cfg.Username
	}

	fromHeader := from
	if m.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.cfg.FromName, from)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		fromHeader, recipient, subject, htmlBody,
	)

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
