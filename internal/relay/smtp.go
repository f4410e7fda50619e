package relay

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Saicharan2707l/portfolio/internal/page"
)

// SMTPConfig holds mail server credentials and the owner's inbox.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	To       string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP sends messages straight through a mail server.
type SMTP struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTP validates cfg and returns a relay for it.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("smtp: credentials not configured")
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.To == "" {
		cfg.To = cfg.Username
	}
	return &SMTP{cfg: cfg, sendMail: smtp.SendMail}, nil
}

// Send delivers msg with PLAIN auth. net/smtp has no context support, so
// ctx is only checked before dialing.
func (s *SMTP) Send(ctx context.Context, msg page.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := s.sendMail(addr, auth, s.cfg.Username, []string{s.cfg.To}, s.compose(msg)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func (s *SMTP) compose(msg page.ContactMessage) []byte {
	name := headerSafe(msg.Name)
	email := headerSafe(msg.Email)

	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, msg.Body)

	var b strings.Builder
	b.WriteString("To: " + s.cfg.To + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + name + "\r\n")
	b.WriteString("From: " + s.cfg.Username + "\r\n")
	b.WriteString("Reply-To: " + email + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe drops line breaks so visitor input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}
